package tasks

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-ca/meridian/internal/compliance"
)

// Status enumerates task lifecycle states.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Task is a filing obligation tracked against a client.
type Task struct {
	ID            uuid.UUID               `json:"id"`
	ClientID      uuid.UUID               `json:"client_id"`
	Title         string                  `json:"title"`
	Category      compliance.TaskCategory `json:"category"`
	ServiceType   string                  `json:"service_type,omitempty"`
	FYCode        string                  `json:"fy_code"`
	Quarter       int                     `json:"quarter"`
	DueDate       time.Time               `json:"due_date"`
	Stage         compliance.Stage        `json:"stage"`
	Status        Status                  `json:"status"`
	QueryRaisedAt *time.Time              `json:"query_raised_at,omitempty"`
	RemindersSent int                     `json:"reminders_sent"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// CreateInput groups the fields accepted when opening a task. The
// fiscal year and quarter are derived from the due date when omitted.
type CreateInput struct {
	ClientID    uuid.UUID `json:"client_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	ServiceType string    `json:"service_type,omitempty"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

// ListFilter narrows task listings.
type ListFilter struct {
	ClientID *uuid.UUID
	Category *compliance.TaskCategory
	Status   *Status
	Limit    int
	Offset   int
}

// OverdueEntry pairs an overdue task with its accrued penalty.
type OverdueEntry struct {
	Task    Task                     `json:"task"`
	Penalty compliance.PenaltyResult `json:"penalty"`
}

// OverdueReport summarises every open task past its due date as of a
// reference date.
type OverdueReport struct {
	AsOf         time.Time      `json:"as_of"`
	Entries      []OverdueEntry `json:"entries"`
	TotalLateFee float64        `json:"total_late_fee"`
	TotalPenalty float64        `json:"total_penalty"`
}

var (
	// ErrTaskNotFound indicates a missing task id.
	ErrTaskNotFound = errors.New("tasks: task not found")
	// ErrTaskClosed indicates a stage change on a finished task.
	ErrTaskClosed = errors.New("tasks: task is not open")
	// ErrUnknownCategory indicates a category outside the filing set.
	ErrUnknownCategory = errors.New("tasks: unknown task category")
)

var knownCategories = map[compliance.TaskCategory]struct{}{
	compliance.CategoryITR:   {},
	compliance.CategoryGST:   {},
	compliance.CategoryTDS:   {},
	compliance.CategoryROC:   {},
	compliance.CategoryAudit: {},
}

// ParseCategory validates a filing category string.
func ParseCategory(s string) (compliance.TaskCategory, error) {
	c := compliance.TaskCategory(s)
	if _, ok := knownCategories[c]; !ok {
		return "", ErrUnknownCategory
	}
	return c, nil
}
