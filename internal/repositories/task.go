package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
)

const taskColumns = `id, user_id, prompt, status, credits_spent, steps, error_message, idempotency_key, created_at, updated_at`

// TaskRepository reads and writes generation_tasks rows.
type TaskRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewTaskRepository(db *sqlx.DB, txGetter TxGetter) *TaskRepository {
	return &TaskRepository{db: db, txGetter: txGetter}
}

// GetForUpdate locks and returns the task. Returns nil when it does not exist.
func (r *TaskRepository) GetForUpdate(ctx context.Context, taskID uuid.UUID) (*models.GenerationTaskDB, error) {
	query := `SELECT ` + taskColumns + ` FROM generation_tasks WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, taskID)
}

// GetByID returns the task without locking. Returns nil when it does not exist.
func (r *TaskRepository) GetByID(ctx context.Context, taskID uuid.UUID) (*models.GenerationTaskDB, error) {
	query := `SELECT ` + taskColumns + ` FROM generation_tasks WHERE id = $1`
	return r.getOne(ctx, query, taskID)
}

// GetByIdempotencyKey returns the user's task created with key, or nil.
func (r *TaskRepository) GetByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*models.GenerationTaskDB, error) {
	query := `SELECT ` + taskColumns + ` FROM generation_tasks WHERE user_id = $1 AND idempotency_key = $2 LIMIT 1`
	return r.getOne(ctx, query, userID, key)
}

func (r *TaskRepository) getOne(ctx context.Context, query string, args ...any) (*models.GenerationTaskDB, error) {
	var task models.GenerationTaskDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &task, query, args...)
	logger.Query(query, args, task.Status, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetOwner returns the owner of a task. Returns sql.ErrNoRows when it does not exist.
func (r *TaskRepository) GetOwner(ctx context.Context, taskID uuid.UUID) (uuid.UUID, error) {
	const query = `SELECT user_id FROM generation_tasks WHERE id = $1`

	var userID uuid.UUID
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &userID, query, taskID)
	logger.Query(query, []any{taskID}, userID, err)
	return userID, err
}

// GetSnapshot returns the fields streamed to clients. Returns nil when the task does not exist.
func (r *TaskRepository) GetSnapshot(ctx context.Context, taskID uuid.UUID) (*models.TaskSnapshot, error) {
	const query = `SELECT id, status, steps, error_message FROM generation_tasks WHERE id = $1`

	var snap models.TaskSnapshot
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &snap, query, taskID)
	logger.Query(query, []any{taskID}, snap.Status, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Create inserts task with its initial step log and fills ID and timestamps.
func (r *TaskRepository) Create(ctx context.Context, task *models.GenerationTaskDB) error {
	const query = `
		INSERT INTO generation_tasks (id, user_id, prompt, status, credits_spent, steps, idempotency_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.Steps == nil {
		task.Steps = models.Steps{}
	}
	steps, err := json.Marshal(task.Steps)
	if err != nil {
		return err
	}
	args := []any{task.ID, task.UserID, task.Prompt, task.Status, task.CreditsSpent, string(steps), task.IdempotencyKey}

	var ts struct {
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	err = sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &ts, query, args...)
	logger.Query(query, args, task.ID, err)
	if err != nil {
		return err
	}
	task.CreatedAt, task.UpdatedAt = ts.CreatedAt, ts.UpdatedAt
	return nil
}

// AppendStep appends step to the task's step log. When status is set the task moves
// to it in the same statement, but only from a status allowed to precede it.
// Reason, when present, becomes the error message unless one is already recorded.
// Returns false when no row was updated: the task is missing or the transition was refused.
func (r *TaskRepository) AppendStep(ctx context.Context, taskID uuid.UUID, step models.Step, status *models.TaskStatus) (bool, error) {
	const query = `
		UPDATE generation_tasks
		SET steps = COALESCE(steps, '[]'::jsonb) || $2::jsonb,
		    status = COALESCE($3::text, status),
		    error_message = CASE WHEN $4::text IS NOT NULL THEN COALESCE(error_message, $4::text) ELSE error_message END,
		    updated_at = NOW()
		WHERE id = $1
		  AND ($3::text IS NULL OR status = ANY(string_to_array($5::text, ',')))
	`

	raw, err := json.Marshal(models.Steps{step})
	if err != nil {
		return false, err
	}

	var statusArg, reasonArg *string
	var predecessors string
	if status != nil {
		s := string(*status)
		statusArg = &s
		predecessors = strings.Join(models.Predecessors(*status), ",")
	}
	if step.Reason != "" {
		reasonArg = &step.Reason
	}
	args := []any{taskID, string(raw), statusArg, reasonArg, predecessors}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logger.Query(query, args, rowsAffected, err)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// ListRecentByUserID returns the user's unfinished and failed tasks, newest first.
func (r *TaskRepository) ListRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]models.GenerationTaskDB, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM generation_tasks
		WHERE user_id = $1
		  AND status IN ('pending', 'processing', 'failed', 'failed_refunded')
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.list(ctx, query, userID, limit)
}

// List returns tasks of every user, newest first, optionally filtered by status.
func (r *TaskRepository) List(ctx context.Context, status *models.TaskStatus, limit int) ([]models.GenerationTaskDB, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM generation_tasks
		WHERE ($1::text IS NULL OR status = $1::text)
		ORDER BY created_at DESC
		LIMIT $2
	`
	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}
	return r.list(ctx, query, statusArg, limit)
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]models.GenerationTaskDB, error) {
	tasks := []models.GenerationTaskDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &tasks, query, args...)
	logger.Query(query, args, len(tasks), err)
	return tasks, err
}

// ListStaleIDs returns ids of the user's in-flight tasks that have not been
// updated for at least staleAfter, oldest first. Rows locked by a concurrent
// settlement are skipped.
func (r *TaskRepository) ListStaleIDs(ctx context.Context, userID uuid.UUID, staleAfter time.Duration, limit int) ([]uuid.UUID, error) {
	const query = `
		SELECT id
		FROM generation_tasks
		WHERE user_id = $1
		  AND status IN ('pending', 'processing')
		  AND COALESCE(updated_at, created_at) < NOW() - ($2::int * INTERVAL '1 second')
		ORDER BY created_at ASC
		LIMIT $3
		FOR UPDATE SKIP LOCKED
	`
	seconds := int(staleAfter / time.Second)
	args := []any{userID, seconds, limit}

	ids := []uuid.UUID{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &ids, query, args...)
	logger.Query(query, args, len(ids), err)
	return ids, err
}

// ClaimStaleIDs moves up to limit in-flight tasks of any user that have not been
// updated for at least staleAfter to failed, appending step and recording its
// reason as the error message unless one is set. Rows locked elsewhere are
// skipped, so concurrent sweeps claim disjoint tasks. Returns the claimed ids.
func (r *TaskRepository) ClaimStaleIDs(ctx context.Context, staleAfter time.Duration, limit int, step models.Step) ([]uuid.UUID, error) {
	const query = `
		WITH candidates AS (
			SELECT id
			FROM generation_tasks
			WHERE status IN ('pending', 'processing')
			  AND COALESCE(updated_at, created_at) < NOW() - ($1::int * INTERVAL '1 second')
			ORDER BY created_at ASC
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		UPDATE generation_tasks t
		SET status = 'failed',
		    error_message = COALESCE(t.error_message, $3::text),
		    steps = COALESCE(t.steps, '[]'::jsonb) || $4::jsonb,
		    updated_at = NOW()
		FROM candidates c
		WHERE t.id = c.id
		RETURNING t.id
	`

	raw, err := json.Marshal(models.Steps{step})
	if err != nil {
		return nil, err
	}
	args := []any{int(staleAfter / time.Second), limit, step.Reason, string(raw)}

	ids := []uuid.UUID{}
	err = sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &ids, query, args...)
	logger.Query(query, args, len(ids), err)
	return ids, err
}

// Stats counts tasks created in the last window by status, the in-flight tasks
// older than staleAfter and the completion time of tasks completed in the window.
func (r *TaskRepository) Stats(ctx context.Context, window, staleAfter time.Duration) (*models.TaskStatsDB, error) {
	const query = `
		SELECT
			COUNT(*) FILTER (WHERE created_at >= NOW() - ($1::int * INTERVAL '1 second'))::int AS total,
			COUNT(*) FILTER (WHERE status = 'completed' AND created_at >= NOW() - ($1::int * INTERVAL '1 second'))::int AS completed,
			COUNT(*) FILTER (WHERE status = 'failed' AND created_at >= NOW() - ($1::int * INTERVAL '1 second'))::int AS failed,
			COUNT(*) FILTER (WHERE status = 'failed_refunded' AND created_at >= NOW() - ($1::int * INTERVAL '1 second'))::int AS failed_refunded,
			COUNT(*) FILTER (WHERE status = 'pending' AND created_at >= NOW() - ($1::int * INTERVAL '1 second'))::int AS pending,
			COUNT(*) FILTER (WHERE status = 'processing' AND created_at >= NOW() - ($1::int * INTERVAL '1 second'))::int AS processing,
			COUNT(*) FILTER (WHERE status IN ('pending', 'processing'))::int AS inflight,
			COUNT(*) FILTER (
				WHERE status IN ('pending', 'processing')
				  AND COALESCE(updated_at, created_at) < NOW() - ($2::int * INTERVAL '1 second')
			)::int AS stuck,
			COALESCE(PERCENTILE_CONT(0.95) WITHIN GROUP (ORDER BY EXTRACT(EPOCH FROM (updated_at - created_at))::float8)
				FILTER (WHERE status = 'completed' AND updated_at >= NOW() - ($1::int * INTERVAL '1 second')), 0)::float8 AS p95_seconds,
			COALESCE(AVG(EXTRACT(EPOCH FROM (updated_at - created_at)))
				FILTER (WHERE status = 'completed' AND updated_at >= NOW() - ($1::int * INTERVAL '1 second')), 0)::float8 AS avg_seconds
		FROM generation_tasks
	`
	args := []any{int(window / time.Second), int(staleAfter / time.Second)}

	var stats models.TaskStatsDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &stats, query, args...)
	logger.Query(query, args, stats, err)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
