package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a generation task.
type TaskStatus string

// Generation task statuses.
const (
	TaskPending        TaskStatus = "pending"
	TaskProcessing     TaskStatus = "processing"
	TaskCompleted      TaskStatus = "completed"
	TaskFailed         TaskStatus = "failed"
	TaskFailedRefunded TaskStatus = "failed_refunded"
)

// transitions lists the statuses a task may move to from a given status.
// In-flight tasks may be refunded directly by an admin or by stale recovery
// without passing through failed.
var transitions = map[TaskStatus][]TaskStatus{
	TaskPending:    {TaskProcessing, TaskFailed, TaskFailedRefunded},
	TaskProcessing: {TaskCompleted, TaskFailed, TaskFailedRefunded},
	TaskFailed:     {TaskFailedRefunded},
}

// CanTransition reports whether a task in status from may move to status to.
// Transitions only move forward; terminal statuses have no successors.
func CanTransition(from, to TaskStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Predecessors returns every status from which to is reachable in one step.
func Predecessors(to TaskStatus) []string {
	var out []string
	for from, next := range transitions {
		for _, s := range next {
			if s == to {
				out = append(out, string(from))
			}
		}
	}
	return out
}

// IsInFlight reports whether credits of a task in this status are still reserved.
func (s TaskStatus) IsInFlight() bool {
	return s == TaskPending || s == TaskProcessing
}

// IsTerminal reports whether no further transition is possible.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskCompleted || s == TaskFailedRefunded
}

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskProcessing, TaskCompleted, TaskFailed, TaskFailedRefunded:
		return true
	}
	return false
}

// StepKind names a milestone in a task's step log.
type StepKind string

// Well-known step kinds. Workers may report other kinds as well.
const (
	StepCreated          StepKind = "created"
	StepProcessing       StepKind = "processing"
	StepCompleted        StepKind = "completed"
	StepFailed           StepKind = "failed"
	StepRefunded         StepKind = "refunded"
	StepStaleAutoStopped StepKind = "stale_auto_stopped"
)

// Step is one immutable entry of a task's step log.
type Step struct {
	Kind      StepKind        `json:"step"`
	Timestamp time.Time       `json:"ts"`
	Reason    string          `json:"reason,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// Steps is the ordered step log stored as a jsonb array.
type Steps []Step

// Scan implements sql.Scanner for jsonb columns.
func (s *Steps) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = Steps{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported steps type %T", src)
	}
	var out Steps
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	if out == nil {
		out = Steps{}
	}
	*s = out
	return nil
}

// GenerationTaskDB represents a generation_tasks row.
type GenerationTaskDB struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	Prompt         string     `json:"prompt" db:"prompt"`
	Status         TaskStatus `json:"status" db:"status"`
	CreditsSpent   int64      `json:"credits_spent" db:"credits_spent"`
	Steps          Steps      `json:"steps" db:"steps"`
	ErrorMessage   *string    `json:"error_message" db:"error_message"`
	IdempotencyKey *string    `json:"-" db:"idempotency_key"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// TaskSnapshot is the task view pushed to event stream clients.
type TaskSnapshot struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Status       TaskStatus `json:"status" db:"status"`
	Steps        Steps      `json:"steps" db:"steps"`
	ErrorMessage *string    `json:"error_message" db:"error_message"`
}
