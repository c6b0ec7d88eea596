package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeDeadlineScan is the task type for the compliance deadline sweep.
	TaskTypeDeadlineScan = "deadline:scan"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// HandleSendEmailTask processes TaskTypeSendEmail tasks. Delivery is a
// boundary stub: the outgoing message is logged, not transmitted.
func HandleSendEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	slog.Default().Info("send email",
		slog.String("to", payload.To),
		slog.String("subject", payload.Subject))
	return nil
}

// DeadlineScanPayload parameterises a compliance deadline sweep. AsOf
// is RFC3339; empty means the handler's clock.
type DeadlineScanPayload struct {
	AsOf string `json:"as_of,omitempty"`
}

// NewDeadlineScanTask constructs an Asynq task for the deadline sweep.
func NewDeadlineScanTask(asOf string) (*asynq.Task, error) {
	data, err := json.Marshal(DeadlineScanPayload{AsOf: asOf})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDeadlineScan, data), nil
}
