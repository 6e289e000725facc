package services

//go:generate mockgen -source=tasks.go -destination=tasks_mock_test.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
	"github.com/sbilibin2017/gw-wrap-credits/internal/notify"
	"github.com/sbilibin2017/gw-wrap-credits/internal/repositories"
)

const (
	// DefaultRefundReason is recorded when an admin refund gives no reason.
	DefaultRefundReason = "Manual admin refund"
	// CategoryAIGenerated is the wrap category backed by generation tasks.
	CategoryAIGenerated = "ai_generated"

	// DefaultSweepBatch and MaxSweepBatch bound the tasks claimed by one sweep.
	DefaultSweepBatch = 50
	MaxSweepBatch     = 200

	staleBatchSize = 50
	bulkBatchSize  = 50
	minStaleAfter  = time.Minute

	sweepReason        = "Stale generation task auto-stopped by sweeper"
	defaultStatsWindow = 24 * time.Hour
	maxStatsWindow     = 30 * 24 * time.Hour
)

// TaskStore reads and writes generation tasks.
type TaskStore interface {
	StepAppender
	GetForUpdate(ctx context.Context, taskID uuid.UUID) (*models.GenerationTaskDB, error)
	GetByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*models.GenerationTaskDB, error)
	GetOwner(ctx context.Context, taskID uuid.UUID) (uuid.UUID, error)
	GetSnapshot(ctx context.Context, taskID uuid.UUID) (*models.TaskSnapshot, error)
	Create(ctx context.Context, task *models.GenerationTaskDB) error
	ListRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]models.GenerationTaskDB, error)
	List(ctx context.Context, status *models.TaskStatus, limit int) ([]models.GenerationTaskDB, error)
	ListStaleIDs(ctx context.Context, userID uuid.UUID, staleAfter time.Duration, limit int) ([]uuid.UUID, error)
	ClaimStaleIDs(ctx context.Context, staleAfter time.Duration, limit int, step models.Step) ([]uuid.UUID, error)
	Stats(ctx context.Context, window, staleAfter time.Duration) (*models.TaskStatsDB, error)
}

// WrapReader lists saved wraps.
type WrapReader interface {
	ListByUserID(ctx context.Context, userID uuid.UUID, category string, limit int) ([]models.WrapDB, error)
}

// CreateTaskResult describes a created (or replayed) generation task.
type CreateTaskResult struct {
	TaskID           uuid.UUID
	RemainingBalance int64
	Idempotent       bool
}

// RefundResult describes the outcome of a refund.
type RefundResult struct {
	AlreadyRefunded bool
	CreditsRefunded int64
}

// BulkRefundItem is the per-task outcome of RefundFailedTasks.
type BulkRefundItem struct {
	TaskID          uuid.UUID `json:"taskId"`
	Success         bool      `json:"success"`
	AlreadyRefunded bool      `json:"alreadyRefunded,omitempty"`
	CreditsRefunded int64     `json:"creditsRefunded"`
	Error           string    `json:"error,omitempty"`
}

// SweepResult reports one sweep over the stale tasks of every user.
type SweepResult struct {
	Claimed         int `json:"claimed"`
	Refunded        int `json:"refunded"`
	AlreadyRefunded int `json:"alreadyRefunded"`
	FailedRefunds   int `json:"failedRefunds"`
	Uncharged       int `json:"uncharged"`
}

// TaskService owns the generation task lifecycle: creation with debit,
// refunds, stale task recovery and history.
type TaskService struct {
	tx          TxRunner
	tasks       TaskStore
	credits     CreditWriter
	reader      BalanceReader
	ledger      LedgerStore
	wraps       WrapReader
	publisher   notify.Publisher
	kafkaWriter KafkaWriter
	staleAfter  time.Duration
	now         func() time.Time
}

// NewTaskService creates a new TaskService. staleAfter below one minute is raised to one minute.
func NewTaskService(
	tx TxRunner,
	tasks TaskStore,
	credits CreditWriter,
	reader BalanceReader,
	ledger LedgerStore,
	wraps WrapReader,
	publisher notify.Publisher,
	kafkaWriter KafkaWriter,
	staleAfter time.Duration,
) *TaskService {
	if staleAfter < minStaleAfter {
		staleAfter = minStaleAfter
	}
	return &TaskService{
		tx:          tx,
		tasks:       tasks,
		credits:     credits,
		reader:      reader,
		ledger:      ledger,
		wraps:       wraps,
		publisher:   publisher,
		kafkaWriter: kafkaWriter,
		staleAfter:  staleAfter,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateTask debits credits and creates a pending task in one transaction.
// The available balance must cover credits. A repeated idempotency key returns
// the task created the first time without charging again.
func (s *TaskService) CreateTask(ctx context.Context, userID uuid.UUID, prompt string, credits int64, idempotencyKey string) (*CreateTaskResult, error) {
	if credits <= 0 {
		return nil, ErrInvalidAmount
	}

	var key *string
	if k := strings.TrimSpace(idempotencyKey); k != "" {
		key = &k
	}

	result := &CreateTaskResult{}
	var entry models.LedgerEntryDB
	var debited int64

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// The row lock comes first: it serialises the user's requests, so a
		// repeated key sees the task committed by the first one.
		current, err := s.credits.LockByUserID(ctx, userID)
		if err != nil {
			return err
		}

		if key != nil {
			existing, err := s.tasks.GetByIdempotencyKey(ctx, userID, *key)
			if err != nil {
				return err
			}
			if existing != nil {
				result.TaskID = existing.ID
				result.Idempotent = true
				if current != nil {
					_, reserved, err := s.reader.GetBalanceAndReserved(ctx, userID)
					if err != nil {
						return err
					}
					result.RemainingBalance = Available(current.Balance, reserved)
				}
				return nil
			}
		}

		if current == nil {
			return ErrInsufficientCredits
		}
		_, reserved, err := s.reader.GetBalanceAndReserved(ctx, userID)
		if err != nil {
			return err
		}
		if Available(current.Balance, reserved) < credits {
			return ErrInsufficientCredits
		}

		balance, err := s.credits.Debit(ctx, userID, credits)
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return ErrInsufficientCredits
		}
		if err != nil {
			return err
		}
		debited = balance

		task := &models.GenerationTaskDB{
			UserID:         userID,
			Prompt:         prompt,
			Status:         models.TaskPending,
			CreditsSpent:   credits,
			Steps:          models.Steps{{Kind: models.StepCreated, Timestamp: s.now()}},
			IdempotencyKey: key,
		}
		if err := s.tasks.Create(ctx, task); err != nil {
			return err
		}

		entry = models.LedgerEntryDB{
			UserID:      userID,
			TaskID:      &task.ID,
			Amount:      -credits,
			Type:        models.LedgerSpend,
			Description: "AI generation",
		}
		if err := s.ledger.Append(ctx, &entry); err != nil {
			return err
		}

		result.TaskID = task.ID
		result.RemainingBalance = Available(balance, reserved)
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientCredits) {
			logger.Log.Errorw("failed to create task", "userID", userID, "credits", credits, "error", err)
		}
		return nil, err
	}

	if !result.Idempotent {
		publishLedgerEvent(ctx, s.kafkaWriter, entry, debited)
	}
	return result, nil
}

// Refund credits a task's spent credits back to its owner and marks it
// failed_refunded, all in one transaction. Refunding an already refunded task
// is a no-op reported through AlreadyRefunded.
func (s *TaskService) Refund(ctx context.Context, taskID uuid.UUID, reason string) (*RefundResult, error) {
	if strings.TrimSpace(reason) == "" {
		reason = DefaultRefundReason
	}

	result := &RefundResult{}
	var entry models.LedgerEntryDB
	var balance int64

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		task, err := s.tasks.GetForUpdate(ctx, taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return ErrTaskNotFound
		}
		if task.Status == models.TaskFailedRefunded {
			result.AlreadyRefunded = true
			return nil
		}
		if !models.CanTransition(task.Status, models.TaskFailedRefunded) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, task.Status, models.TaskFailedRefunded)
		}

		if balance, err = s.restoreCredits(ctx, task.UserID, task.CreditsSpent); err != nil {
			return err
		}

		entry = models.LedgerEntryDB{
			UserID:      task.UserID,
			TaskID:      &task.ID,
			Amount:      task.CreditsSpent,
			Type:        models.LedgerRefund,
			Description: reason,
		}
		if err := s.ledger.Append(ctx, &entry); err != nil {
			return err
		}

		if err := s.moveTask(ctx, task.ID, models.StepRefunded, reason, models.TaskFailedRefunded); err != nil {
			return err
		}
		result.CreditsRefunded = task.CreditsSpent
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrTaskNotFound) {
			logger.Log.Errorw("failed to refund task", "task_id", taskID, "error", err)
		}
		return nil, err
	}

	if !result.AlreadyRefunded {
		logger.Log.Infow("task refunded", "task_id", taskID, "credits", result.CreditsRefunded, "reason", reason)
		publishLedgerEvent(ctx, s.kafkaWriter, entry, balance)
		s.publish(ctx, taskID)
	}
	return result, nil
}

// RefundFailedTasks refunds the given tasks, or the latest failed tasks when
// taskIDs is empty. Each task is settled in its own transaction.
func (s *TaskService) RefundFailedTasks(ctx context.Context, taskIDs []uuid.UUID, reason string) ([]BulkRefundItem, error) {
	if len(taskIDs) == 0 {
		failed := models.TaskFailed
		tasks, err := s.tasks.List(ctx, &failed, bulkBatchSize)
		if err != nil {
			logger.Log.Errorw("failed to list failed tasks", "error", err)
			return nil, err
		}
		for _, t := range tasks {
			taskIDs = append(taskIDs, t.ID)
		}
	}

	items := make([]BulkRefundItem, 0, len(taskIDs))
	for _, id := range taskIDs {
		item := BulkRefundItem{TaskID: id}
		res, err := s.Refund(ctx, id, reason)
		if err != nil {
			item.Error = err.Error()
		} else {
			item.Success = true
			item.AlreadyRefunded = res.AlreadyRefunded
			item.CreditsRefunded = res.CreditsRefunded
		}
		items = append(items, item)
	}
	return items, nil
}

// RecoverStaleTasks stops the user's tasks that have been in flight for longer
// than the stale threshold. Charged tasks without a refund are refunded; the
// others are marked failed. Errors are logged per task and do not stop the sweep.
func (s *TaskService) RecoverStaleTasks(ctx context.Context, userID uuid.UUID) {
	ids, err := s.tasks.ListStaleIDs(ctx, userID, s.staleAfter, staleBatchSize)
	if err != nil {
		logger.Log.Errorw("failed to list stale tasks", "userID", userID, "error", err)
		return
	}

	for _, id := range ids {
		moved, err := s.recoverStaleTask(ctx, userID, id)
		if err != nil {
			logger.Log.Errorw("stale task recovery failed", "task_id", id, "error", err)
			continue
		}
		if moved {
			s.publish(ctx, id)
		}
	}
}

func (s *TaskService) recoverStaleTask(ctx context.Context, userID, taskID uuid.UUID) (bool, error) {
	var entry *models.LedgerEntryDB
	var balance int64
	var moved bool

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		task, err := s.tasks.GetForUpdate(ctx, taskID)
		if err != nil {
			return err
		}
		if task == nil || task.UserID != userID || !task.Status.IsInFlight() {
			return nil
		}

		charged, ok, err := s.ledger.ChargedAmount(ctx, taskID)
		if err != nil {
			return err
		}
		refunded, err := s.ledger.HasRefund(ctx, taskID)
		if err != nil {
			return err
		}

		next, reason := models.TaskFailed, "Stale generation task auto-stopped"
		if ok && charged > 0 && !refunded {
			if balance, err = s.restoreCredits(ctx, userID, charged); err != nil {
				return err
			}
			entry = &models.LedgerEntryDB{
				UserID:      userID,
				TaskID:      &task.ID,
				Amount:      charged,
				Type:        models.LedgerRefund,
				Description: "Auto refund: stale generation task",
			}
			if err := s.ledger.Append(ctx, entry); err != nil {
				return err
			}
			next, reason = models.TaskFailedRefunded, "Stale generation task auto-stopped and refunded"
		}

		if err := s.moveTask(ctx, taskID, models.StepStaleAutoStopped, reason, next); err != nil {
			return err
		}
		moved = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if entry != nil {
		publishLedgerEvent(ctx, s.kafkaWriter, *entry, balance)
	}
	return moved, nil
}

// ClampSweepBatch bounds a requested sweep batch size to [1, MaxSweepBatch].
// Zero or negative sizes select DefaultSweepBatch.
func ClampSweepBatch(n int) int {
	if n <= 0 {
		return DefaultSweepBatch
	}
	if n > MaxSweepBatch {
		return MaxSweepBatch
	}
	return n
}

// SweepStaleTasks claims up to batchSize stale tasks of any user and marks them
// failed, then refunds those that were charged. Each refund runs in its own
// transaction; a failed refund leaves the task failed and refundable later.
func (s *TaskService) SweepStaleTasks(ctx context.Context, batchSize int) (*SweepResult, error) {
	step := models.Step{Kind: models.StepStaleAutoStopped, Timestamp: s.now(), Reason: sweepReason}
	ids, err := s.tasks.ClaimStaleIDs(ctx, s.staleAfter, ClampSweepBatch(batchSize), step)
	if err != nil {
		logger.Log.Errorw("failed to claim stale tasks", "error", err)
		return nil, err
	}

	result := &SweepResult{Claimed: len(ids)}
	for _, id := range ids {
		charged, ok, err := s.ledger.ChargedAmount(ctx, id)
		if err != nil {
			logger.Log.Errorw("failed to read task charge", "task_id", id, "error", err)
			result.FailedRefunds++
			s.publish(ctx, id)
			continue
		}
		if !ok || charged <= 0 {
			result.Uncharged++
			s.publish(ctx, id)
			continue
		}

		refund, err := s.Refund(ctx, id, "Auto refund: "+sweepReason)
		switch {
		case err != nil:
			result.FailedRefunds++
			s.publish(ctx, id)
		case refund.AlreadyRefunded:
			result.AlreadyRefunded++
			s.publish(ctx, id)
		default:
			result.Refunded++
		}
	}

	if result.Claimed > 0 {
		logger.Log.Infow("stale task sweep finished",
			"claimed", result.Claimed,
			"refunded", result.Refunded,
			"already_refunded", result.AlreadyRefunded,
			"failed_refunds", result.FailedRefunds,
			"uncharged", result.Uncharged,
		)
	}
	return result, nil
}

// restoreCredits returns amount to the user, creating the credit row when the user has none.
func (s *TaskService) restoreCredits(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	current, err := s.credits.LockByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if current == nil {
		if err := s.credits.Create(ctx, userID, amount, amount); err != nil {
			return 0, err
		}
		return amount, nil
	}
	return s.credits.Restore(ctx, userID, amount)
}

// moveTask appends a step and moves the task status inside the caller's transaction.
func (s *TaskService) moveTask(ctx context.Context, taskID uuid.UUID, kind models.StepKind, reason string, status models.TaskStatus) error {
	step := models.Step{Kind: kind, Timestamp: s.now(), Reason: reason}
	ok, err := s.tasks.AppendStep(ctx, taskID, step, &status)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: task %s -> %s", ErrInvalidTransition, taskID, status)
	}
	return nil
}

func (s *TaskService) publish(ctx context.Context, taskID uuid.UUID) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, taskID); err != nil {
		logger.Log.Errorw("failed to publish task update", "task_id", taskID, "error", err)
	}
}

// TaskOwner returns the owner of a task or ErrTaskNotFound.
func (s *TaskService) TaskOwner(ctx context.Context, taskID uuid.UUID) (uuid.UUID, error) {
	owner, err := s.tasks.GetOwner(ctx, taskID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrTaskNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to get task owner", "task_id", taskID, "error", err)
		return uuid.Nil, err
	}
	return owner, nil
}

// AuthorizeTask checks that the task exists and belongs to userID.
func (s *TaskService) AuthorizeTask(ctx context.Context, taskID, userID uuid.UUID) error {
	owner, err := s.TaskOwner(ctx, taskID)
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrForbidden
	}
	return nil
}

// Snapshot returns the streamed view of a task or ErrTaskNotFound.
func (s *TaskService) Snapshot(ctx context.Context, taskID uuid.UUID) (*models.TaskSnapshot, error) {
	snap, err := s.tasks.GetSnapshot(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrTaskNotFound
	}
	return snap, nil
}

// History returns the user's wraps of a category and, for AI generated wraps,
// the user's recent tasks after stale tasks have been recovered.
func (s *TaskService) History(ctx context.Context, userID uuid.UUID, category string, limit int) ([]models.WrapDB, []models.GenerationTaskDB, error) {
	if category == CategoryAIGenerated {
		s.RecoverStaleTasks(ctx, userID)
	}

	wraps, err := s.wraps.ListByUserID(ctx, userID, category, limit)
	if err != nil {
		logger.Log.Errorw("failed to list wraps", "userID", userID, "error", err)
		return nil, nil, err
	}

	tasks := []models.GenerationTaskDB{}
	if category == CategoryAIGenerated {
		if tasks, err = s.tasks.ListRecentByUserID(ctx, userID, limit); err != nil {
			logger.Log.Errorw("failed to list tasks", "userID", userID, "error", err)
			return nil, nil, err
		}
	}
	return wraps, tasks, nil
}

// ListTasks returns the latest tasks of every user, optionally filtered by status.
func (s *TaskService) ListTasks(ctx context.Context, status *models.TaskStatus, limit int) ([]models.GenerationTaskDB, error) {
	tasks, err := s.tasks.List(ctx, status, limit)
	if err != nil {
		logger.Log.Errorw("failed to list tasks", "error", err)
		return nil, err
	}
	return tasks, nil
}

// Stats summarizes the tasks of the last hours (default 24, at most 30 days).
func (s *TaskService) Stats(ctx context.Context, hours int) (*models.TaskStats, error) {
	window := defaultStatsWindow
	if hours > 0 {
		window = time.Duration(hours) * time.Hour
	}
	if window > maxStatsWindow {
		window = maxStatsWindow
	}

	raw, err := s.tasks.Stats(ctx, window, s.staleAfter)
	if err != nil {
		logger.Log.Errorw("failed to read task stats", "error", err)
		return nil, err
	}

	terminal := raw.Completed + raw.Failed + raw.FailedRefunded
	return &models.TaskStats{
		WindowHours:  int(window / time.Hour),
		StaleSeconds: int(s.staleAfter / time.Second),
		Counts: models.TaskCounts{
			Total:          raw.Total,
			Completed:      raw.Completed,
			Failed:         raw.Failed,
			FailedRefunded: raw.FailedRefunded,
			Pending:        raw.Pending,
			Processing:     raw.Processing,
			Terminal:       terminal,
			InFlight:       raw.InFlight,
			Stuck:          raw.Stuck,
		},
		Rates: models.TaskRates{
			SuccessRate: rate(raw.Completed, terminal),
			RefundRate:  rate(raw.FailedRefunded, terminal),
			StuckRate:   rate(raw.Stuck, raw.InFlight),
		},
		Latency: models.TaskLatency{
			P95Seconds: raw.P95Seconds,
			AvgSeconds: raw.AvgSeconds,
		},
	}, nil
}

func rate(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return math.Round(float64(n)/float64(d)*10000) / 10000
}
