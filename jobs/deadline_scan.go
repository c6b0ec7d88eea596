package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-ca/meridian/internal/clients"
	jobmetrics "github.com/meridian-ca/meridian/internal/jobs"
	"github.com/meridian-ca/meridian/internal/tasks"
)

// Mailer enqueues outbound notification emails.
type Mailer interface {
	EnqueueSendEmail(ctx context.Context, payload SendEmailPayload) (*asynq.TaskInfo, error)
}

// DeadlineScanJob sweeps open filing tasks for overdue penalties and
// stale client queries, enqueueing reminder emails for both.
type DeadlineScanJob struct {
	Tasks   *tasks.Service
	Clients *clients.Service
	Mailer  Mailer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewDeadlineScanJob initialises the deadline sweep handler.
func NewDeadlineScanJob(taskSvc *tasks.Service, clientSvc *clients.Service, mailer Mailer, logger *slog.Logger, metrics *jobmetrics.Metrics) *DeadlineScanJob {
	return &DeadlineScanJob{
		Tasks:   taskSvc,
		Clients: clientSvc,
		Mailer:  mailer,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the deadline sweep.
func (j *DeadlineScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("deadline scan: handler not configured")
	}
	var payload DeadlineScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	asOf := j.now()
	if payload.AsOf != "" {
		parsed, err := time.Parse(time.RFC3339, payload.AsOf)
		if err != nil {
			return asynq.SkipRetry
		}
		asOf = parsed
	}

	tracker := j.metrics().Track(TaskTypeDeadlineScan)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.Time("as_of", asOf))
	logger.Info("starting deadline scan")

	overdueSent, err := j.sweepOverdue(ctx, asOf)
	if err != nil {
		resultErr = err
		logger.Error("overdue sweep failed", slog.Any("error", err))
		return resultErr
	}
	querySent, err := j.sweepQueries(ctx, asOf)
	if err != nil {
		resultErr = err
		logger.Error("query sweep failed", slog.Any("error", err))
		return resultErr
	}

	j.metrics().AddReminders("overdue", overdueSent)
	j.metrics().AddReminders("query", querySent)
	logger.Info("completed deadline scan",
		slog.Int("overdue_reminders", overdueSent),
		slog.Int("query_reminders", querySent),
	)
	return resultErr
}

func (j *DeadlineScanJob) sweepOverdue(ctx context.Context, asOf time.Time) (int, error) {
	if j.Tasks == nil {
		return 0, errors.New("deadline scan: task service not configured")
	}
	report, err := j.Tasks.Overdue(ctx, asOf)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, entry := range report.Entries {
		email, err := j.clientEmail(ctx, entry.Task)
		if err != nil {
			j.logger().Warn("skip overdue reminder",
				slog.String("task_id", entry.Task.ID.String()),
				slog.Any("error", err))
			continue
		}
		payload := SendEmailPayload{
			To:      email,
			Subject: fmt.Sprintf("Overdue: %s (%s)", entry.Task.Title, entry.Task.Category),
			Body: fmt.Sprintf(
				"%s is %d days overdue. Late fee %.2f plus interest %.2f accrued so far; total penalty %.2f.",
				entry.Task.Title, entry.Penalty.DaysOverdue,
				entry.Penalty.LateFee, entry.Penalty.Interest, entry.Penalty.TotalPenalty),
		}
		if err := j.enqueue(ctx, payload); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

func (j *DeadlineScanJob) sweepQueries(ctx context.Context, asOf time.Time) (int, error) {
	due, err := j.Tasks.DueReminders(ctx, asOf)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, reminder := range due {
		email, err := j.clientEmail(ctx, reminder.Task)
		if err != nil {
			j.logger().Warn("skip query reminder",
				slog.String("task_id", reminder.Task.ID.String()),
				slog.Any("error", err))
			continue
		}
		payload := SendEmailPayload{
			To:      email,
			Subject: fmt.Sprintf("Pending query: %s", reminder.Task.Title),
			Body: fmt.Sprintf(
				"Our query on %s has been pending for %d days. Please share the requested documents.",
				reminder.Task.Title, reminder.DaysPending),
		}
		if err := j.enqueue(ctx, payload); err != nil {
			return sent, err
		}
		if _, err := j.Tasks.MarkReminderSent(ctx, reminder.Task.ID); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

func (j *DeadlineScanJob) clientEmail(ctx context.Context, t tasks.Task) (string, error) {
	if j.Clients == nil {
		return "", errors.New("deadline scan: client service not configured")
	}
	c, err := j.Clients.Get(ctx, t.ClientID)
	if err != nil {
		return "", err
	}
	if c.Email == "" {
		return "", errors.New("deadline scan: client has no email")
	}
	return c.Email, nil
}

func (j *DeadlineScanJob) enqueue(ctx context.Context, payload SendEmailPayload) error {
	if j.Mailer == nil {
		return errors.New("deadline scan: mailer not configured")
	}
	_, err := j.Mailer.EnqueueSendEmail(ctx, payload)
	return err
}

func (j *DeadlineScanJob) now() time.Time {
	if j.clock == nil {
		return time.Now().UTC()
	}
	return j.clock()
}

func (j *DeadlineScanJob) logger() *slog.Logger {
	if j.Logger == nil {
		return slog.Default()
	}
	return j.Logger
}

func (j *DeadlineScanJob) metrics() *jobmetrics.Metrics {
	if j.Metrics == nil {
		return nil
	}
	return j.Metrics
}
