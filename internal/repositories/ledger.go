package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
)

// LedgerRepository appends to and reads the credit_ledger table.
// It never updates or deletes rows.
type LedgerRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewLedgerRepository(db *sqlx.DB, txGetter TxGetter) *LedgerRepository {
	return &LedgerRepository{db: db, txGetter: txGetter}
}

// Append inserts entry and fills its ID and CreatedAt.
func (r *LedgerRepository) Append(ctx context.Context, entry *models.LedgerEntryDB) error {
	const query = `
		INSERT INTO credit_ledger (id, user_id, task_id, amount, type, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	args := []any{entry.ID, entry.UserID, entry.TaskID, entry.Amount, entry.Type, entry.Description}

	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &entry.CreatedAt, query, args...)
	logger.Query(query, args, entry.ID, err)
	return err
}

// ListByUserID returns the user's entries, newest first.
func (r *LedgerRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]models.LedgerEntryDB, error) {
	const query = `
		SELECT id, user_id, task_id, amount, type, description, created_at
		FROM credit_ledger
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`

	entries := []models.LedgerEntryDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &entries, query, userID, limit)
	logger.Query(query, []any{userID, limit}, len(entries), err)
	return entries, err
}

// List returns the most recent entries of all users.
func (r *LedgerRepository) List(ctx context.Context, limit int) ([]models.LedgerEntryDB, error) {
	const query = `
		SELECT id, user_id, task_id, amount, type, description, created_at
		FROM credit_ledger
		ORDER BY created_at DESC, id
		LIMIT $1
	`

	entries := []models.LedgerEntryDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &entries, query, limit)
	logger.Query(query, []any{limit}, len(entries), err)
	return entries, err
}

// ChargedAmount returns the absolute amount of the first spend entry of a task.
// ok is false when the task was never charged.
func (r *LedgerRepository) ChargedAmount(ctx context.Context, taskID uuid.UUID) (amount int64, ok bool, err error) {
	const query = `
		SELECT ABS(amount)
		FROM credit_ledger
		WHERE task_id = $1 AND type = 'spend'
		ORDER BY created_at ASC
		LIMIT 1
	`

	err = sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &amount, query, taskID)
	logger.Query(query, []any{taskID}, amount, err)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return amount, true, nil
}

// HasRefund reports whether a refund entry already exists for the task.
func (r *LedgerRepository) HasRefund(ctx context.Context, taskID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM credit_ledger WHERE task_id = $1 AND type = 'refund'
		)
	`

	var exists bool
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &exists, query, taskID)
	logger.Query(query, []any{taskID}, exists, err)
	return exists, err
}
