package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-ca/meridian/internal/compliance"
	"github.com/meridian-ca/meridian/internal/fiscal"
)

// Service tracks filing tasks through the engagement workflow.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires a task Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// WithNow overrides the service clock, for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create opens a task at the start of the workflow. The fiscal year
// and quarter come from the due date.
func (s *Service) Create(ctx context.Context, in CreateInput) (Task, error) {
	category, err := ParseCategory(in.Category)
	if err != nil {
		return Task{}, err
	}
	period := fiscal.Resolve(in.DueDate)
	t := Task{
		ID:          uuid.New(),
		ClientID:    in.ClientID,
		Title:       in.Title,
		Category:    category,
		ServiceType: in.ServiceType,
		FYCode:      period.FYCode,
		Quarter:     period.Quarter,
		DueDate:     in.DueDate,
		Stage:       compliance.StageDataCollection,
		Status:      StatusOpen,
	}
	created, err := s.repo.Insert(ctx, t)
	if err != nil {
		return Task{}, err
	}
	s.logger.Info("task opened",
		slog.String("task_id", created.ID.String()),
		slog.String("category", string(created.Category)),
		slog.String("fy_code", created.FYCode))
	return created, nil
}

// Get returns a single task.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Task, error) {
	return s.repo.Get(ctx, id)
}

// List returns a filtered page of tasks plus the total count.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Task, int, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repo.List(ctx, f)
}

// AdvanceStage moves an open task to the next workflow stage. Reaching
// COMPLETED also closes the task.
func (s *Service) AdvanceStage(ctx context.Context, id uuid.UUID) (Task, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if t.Status != StatusOpen {
		return Task{}, ErrTaskClosed
	}
	next, err := compliance.NextStage(t.Stage)
	if err != nil {
		return Task{}, err
	}
	t.Stage = next
	if next == compliance.StageCompleted {
		t.Status = StatusCompleted
	}
	return s.repo.Update(ctx, t)
}

// RaiseQuery marks a client query as pending on an open task and
// resets the reminder counter.
func (s *Service) RaiseQuery(ctx context.Context, id uuid.UUID) (Task, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if t.Status != StatusOpen {
		return Task{}, ErrTaskClosed
	}
	raised := s.now()
	t.QueryRaisedAt = &raised
	t.RemindersSent = 0
	return s.repo.Update(ctx, t)
}

// ResolveQuery clears a pending client query.
func (s *Service) ResolveQuery(ctx context.Context, id uuid.UUID) (Task, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return Task{}, err
	}
	t.QueryRaisedAt = nil
	t.RemindersSent = 0
	return s.repo.Update(ctx, t)
}

// Overdue builds the penalty report for every open task past its due
// date as of the reference date.
func (s *Service) Overdue(ctx context.Context, asOf time.Time) (OverdueReport, error) {
	open, err := s.repo.ListOpenDueBefore(ctx, asOf)
	if err != nil {
		return OverdueReport{}, err
	}
	report := OverdueReport{AsOf: asOf, Entries: make([]OverdueEntry, 0, len(open))}
	for _, t := range open {
		penalty := compliance.ComputeLateFee(t.Category, t.DueDate, asOf)
		if !penalty.Overdue {
			continue
		}
		report.Entries = append(report.Entries, OverdueEntry{Task: t, Penalty: penalty})
		report.TotalLateFee += penalty.LateFee
		report.TotalPenalty += penalty.TotalPenalty
	}
	return report, nil
}

// PendingReminder is a task whose open client query has crossed a
// reminder threshold.
type PendingReminder struct {
	Task        Task `json:"task"`
	DaysPending int  `json:"days_pending"`
}

// DueReminders lists open queries that have crossed the next reminder
// threshold as of the reference date.
func (s *Service) DueReminders(ctx context.Context, asOf time.Time) ([]PendingReminder, error) {
	open, err := s.repo.ListOpenQueries(ctx)
	if err != nil {
		return nil, err
	}
	var due []PendingReminder
	for _, t := range open {
		if t.QueryRaisedAt == nil {
			continue
		}
		days := compliance.QueryAge(*t.QueryRaisedAt, asOf)
		if compliance.ShouldRemind(days, t.RemindersSent) {
			due = append(due, PendingReminder{Task: t, DaysPending: days})
		}
	}
	return due, nil
}

// MarkReminderSent bumps the reminder counter after a notification
// goes out.
func (s *Service) MarkReminderSent(ctx context.Context, id uuid.UUID) (Task, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return Task{}, err
	}
	t.RemindersSent++
	return s.repo.Update(ctx, t)
}
