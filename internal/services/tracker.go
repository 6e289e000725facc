package services

//go:generate mockgen -source=tracker.go -destination=tracker_mock_test.go -package=services
//go:generate mockgen -destination=publisher_mock_test.go -package=services github.com/sbilibin2017/gw-wrap-credits/internal/notify Publisher

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
	"github.com/sbilibin2017/gw-wrap-credits/internal/notify"
)

// StepAppender appends a step to a task and optionally moves its status.
type StepAppender interface {
	AppendStep(ctx context.Context, taskID uuid.UUID, step models.Step, status *models.TaskStatus) (bool, error)
}

// StepOptions are the optional parts of a logged step.
type StepOptions struct {
	Status   *models.TaskStatus
	Reason   string
	Metadata json.RawMessage
}

// Tracker records task milestones. Recording is best-effort: storage errors are
// retried a few times with backoff, then logged and dropped.
type Tracker struct {
	tasks       StepAppender
	publisher   notify.Publisher
	maxRetries  uint64
	initialWait time.Duration
	now         func() time.Time
}

// NewTracker creates a Tracker that retries a failed append twice.
func NewTracker(tasks StepAppender, publisher notify.Publisher) *Tracker {
	return &Tracker{
		tasks:       tasks,
		publisher:   publisher,
		maxRetries:  2,
		initialWait: 50 * time.Millisecond,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

var errTransitionRefused = errors.New("transition refused")

// LogStep appends a step to the task log and, when opts.Status is set, moves the
// task to that status if the lifecycle allows it. Subscribers are notified after
// the step is stored. It reports whether the step was stored and never fails the caller.
func (t *Tracker) LogStep(ctx context.Context, taskID uuid.UUID, kind models.StepKind, opts StepOptions) bool {
	if taskID == uuid.Nil {
		logger.Log.Warnw("no task id provided for step", "step", kind)
		return false
	}

	step := models.Step{
		Kind:      kind,
		Timestamp: t.now(),
		Reason:    opts.Reason,
		Metadata:  opts.Metadata,
	}
	logger.Log.Infow("task step", "task_id", taskID, "step", kind, "status", opts.Status)

	op := func() error {
		ok, err := t.tasks.AppendStep(ctx, taskID, step, opts.Status)
		if err != nil {
			return err
		}
		if !ok {
			return backoff.Permanent(errTransitionRefused)
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = t.initialWait
	err := backoff.RetryNotify(op,
		backoff.WithContext(backoff.WithMaxRetries(policy, t.maxRetries), ctx),
		func(err error, wait time.Duration) {
			logger.Log.Warnw("retrying task step", "task_id", taskID, "step", kind, "wait", wait, "error", err)
		},
	)
	if errors.Is(err, errTransitionRefused) {
		logger.Log.Warnw("task step not applied: task missing or transition refused",
			"task_id", taskID, "step", kind, "status", opts.Status)
		return false
	}
	if err != nil {
		logger.Log.Errorw("failed to log task step", "task_id", taskID, "step", kind, "error", err)
		return false
	}

	if t.publisher != nil {
		if err := t.publisher.Publish(ctx, taskID); err != nil {
			logger.Log.Errorw("failed to publish task update", "task_id", taskID, "error", err)
		}
	}
	return true
}
