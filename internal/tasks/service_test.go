package tasks

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/meridian-ca/meridian/internal/compliance"
)

type fakeRepo struct {
	byID map[uuid.UUID]Task
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[uuid.UUID]Task{}}
}

func (f *fakeRepo) Insert(_ context.Context, t Task) (Task, error) {
	f.byID[t.ID] = t
	return t, nil
}

func (f *fakeRepo) Get(_ context.Context, id uuid.UUID) (Task, error) {
	t, ok := f.byID[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return t, nil
}

func (f *fakeRepo) List(_ context.Context, filter ListFilter) ([]Task, int, error) {
	var out []Task
	for _, t := range f.byID {
		if filter.Category != nil && t.Category != *filter.Category {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, t)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, t Task) (Task, error) {
	if _, ok := f.byID[t.ID]; !ok {
		return Task{}, ErrTaskNotFound
	}
	f.byID[t.ID] = t
	return t, nil
}

func (f *fakeRepo) ListOpenDueBefore(_ context.Context, asOf time.Time) ([]Task, error) {
	var out []Task
	for _, t := range f.byID {
		if t.Status == StatusOpen && t.DueDate.Before(asOf) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListOpenQueries(_ context.Context) ([]Task, error) {
	var out []Task
	for _, t := range f.byID {
		if t.Status == StatusOpen && t.QueryRaisedAt != nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func openTask(t *testing.T, svc *Service, category string, due time.Time) Task {
	t.Helper()
	task, err := svc.Create(context.Background(), CreateInput{
		ClientID: uuid.New(),
		Title:    "GSTR-3B filing",
		Category: category,
		DueDate:  due,
	})
	require.NoError(t, err)
	return task
}

func TestCreateDerivesFiscalPeriod(t *testing.T) {
	svc := newTestService(newFakeRepo())

	due := time.Date(2024, time.July, 20, 0, 0, 0, 0, time.UTC)
	task := openTask(t, svc, "GST", due)

	require.Equal(t, "FY2024-25", task.FYCode)
	require.Equal(t, 2, task.Quarter)
	require.Equal(t, compliance.StageDataCollection, task.Stage)
	require.Equal(t, StatusOpen, task.Status)
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	svc := newTestService(newFakeRepo())
	_, err := svc.Create(context.Background(), CreateInput{
		ClientID: uuid.New(),
		Title:    "VAT return",
		Category: "VAT",
		DueDate:  time.Now(),
	})
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestAdvanceStageWalksWorkflow(t *testing.T) {
	svc := newTestService(newFakeRepo())
	task := openTask(t, svc, "ITR", time.Date(2024, time.July, 31, 0, 0, 0, 0, time.UTC))

	want := []compliance.Stage{
		compliance.StagePreparation,
		compliance.StageReview,
		compliance.StageClientApproval,
		compliance.StageFiling,
		compliance.StageAcknowledgment,
		compliance.StageCompleted,
	}
	for _, stage := range want {
		advanced, err := svc.AdvanceStage(context.Background(), task.ID)
		require.NoError(t, err)
		require.Equal(t, stage, advanced.Stage)
	}

	final, err := svc.Get(context.Background(), task.ID)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, final.Status)

	_, err = svc.AdvanceStage(context.Background(), task.ID)
	require.ErrorIs(t, err, ErrTaskClosed)
}

func TestOverdueReportAccruesPenalties(t *testing.T) {
	svc := newTestService(newFakeRepo())
	asOf := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

	// 51 days late: GST accrues ₹50/day.
	gst := openTask(t, svc, "GST", time.Date(2024, time.November, 20, 0, 0, 0, 0, time.UTC))
	// Not yet due.
	openTask(t, svc, "ITR", time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC))

	report, err := svc.Overdue(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	require.Equal(t, gst.ID, report.Entries[0].Task.ID)
	require.Equal(t, 51, report.Entries[0].Penalty.DaysOverdue)
	require.Equal(t, 2550.0, report.Entries[0].Penalty.LateFee)
	require.Equal(t, report.Entries[0].Penalty.TotalPenalty, report.TotalPenalty)
}

func TestQueryReminderFlow(t *testing.T) {
	svc := newTestService(newFakeRepo())
	start := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	svc.WithNow(func() time.Time { return start })

	task := openTask(t, svc, "AUDIT", start.AddDate(0, 2, 0))

	raised, err := svc.RaiseQuery(context.Background(), task.ID)
	require.NoError(t, err)
	require.NotNil(t, raised.QueryRaisedAt)
	require.Zero(t, raised.RemindersSent)

	// Two days in: below the first threshold, nothing due.
	due, err := svc.DueReminders(context.Background(), start.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Empty(t, due)

	// Day three crosses the first threshold.
	due, err = svc.DueReminders(context.Background(), start.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, 3, due[0].DaysPending)

	_, err = svc.MarkReminderSent(context.Background(), task.ID)
	require.NoError(t, err)

	// Still day three: first reminder already sent, second waits for day seven.
	due, err = svc.DueReminders(context.Background(), start.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Empty(t, due)

	due, err = svc.DueReminders(context.Background(), start.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, due, 1)

	resolved, err := svc.ResolveQuery(context.Background(), task.ID)
	require.NoError(t, err)
	require.Nil(t, resolved.QueryRaisedAt)

	due, err = svc.DueReminders(context.Background(), start.AddDate(0, 0, 14))
	require.NoError(t, err)
	require.Empty(t, due)
}
