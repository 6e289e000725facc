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

// ErrInsufficientBalance is returned by Debit when the balance cannot cover the amount.
var ErrInsufficientBalance = errors.New("insufficient balance")

// CreditWriteRepository mutates user_credits rows. Every method expects to run
// inside the transaction that also writes the paired ledger entry.
type CreditWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewCreditWriteRepository(db *sqlx.DB, txGetter TxGetter) *CreditWriteRepository {
	return &CreditWriteRepository{db: db, txGetter: txGetter}
}

// LockByUserID reads the credit row with FOR UPDATE. Returns nil when the user has no row yet.
func (r *CreditWriteRepository) LockByUserID(ctx context.Context, userID uuid.UUID) (*models.UserCreditsDB, error) {
	const query = `
		SELECT user_id, balance, total_earned, total_spent, updated_at
		FROM user_credits
		WHERE user_id = $1
		FOR UPDATE
	`

	var credits models.UserCreditsDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &credits, query, userID)
	logger.Query(query, []any{userID}, credits.Balance, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &credits, nil
}

// Create inserts a credit row for a user that has none.
func (r *CreditWriteRepository) Create(ctx context.Context, userID uuid.UUID, balance, totalEarned int64) error {
	const query = `
		INSERT INTO user_credits (user_id, balance, total_earned, total_spent, updated_at)
		VALUES ($1, $2, $3, 0, NOW())
	`
	args := []any{userID, balance, totalEarned}

	_, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	logger.Query(query, args, nil, err)
	return err
}

// Earn adds amount to balance and total_earned. Returns the new balance.
func (r *CreditWriteRepository) Earn(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	const query = `
		UPDATE user_credits
		SET balance = balance + $2,
		    total_earned = total_earned + $2,
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING balance
	`
	return r.returningBalance(ctx, query, userID, amount)
}

// Restore credits amount back after a refund: balance grows and total_spent
// shrinks, floored at zero. Returns the new balance.
func (r *CreditWriteRepository) Restore(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	const query = `
		UPDATE user_credits
		SET balance = balance + $2,
		    total_spent = GREATEST(total_spent - $2, 0),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING balance
	`
	return r.returningBalance(ctx, query, userID, amount)
}

// Debit subtracts amount from balance and adds it to total_spent.
// Returns ErrInsufficientBalance when the balance is too low.
func (r *CreditWriteRepository) Debit(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	const query = `
		UPDATE user_credits
		SET balance = balance - $2,
		    total_spent = total_spent + $2,
		    updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
		RETURNING balance
	`
	balance, err := r.returningBalance(ctx, query, userID, amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrInsufficientBalance
	}
	return balance, err
}

func (r *CreditWriteRepository) returningBalance(ctx context.Context, query string, userID uuid.UUID, amount int64) (int64, error) {
	var balance int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &balance, query, userID, amount)
	logger.Query(query, []any{userID, amount}, balance, err)
	return balance, err
}

// CreditReadRepository handles non-locking credit reads.
type CreditReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewCreditReadRepository(db *sqlx.DB, txGetter TxGetter) *CreditReadRepository {
	return &CreditReadRepository{db: db, txGetter: txGetter}
}

// GetBalanceAndReserved returns the raw balance and the credits reserved by the
// user's pending and processing tasks, read in one statement. A task whose
// spend entry is already in the ledger is reflected in the balance and is not
// counted as reserved.
func (r *CreditReadRepository) GetBalanceAndReserved(ctx context.Context, userID uuid.UUID) (balance, reserved int64, err error) {
	const query = `
		SELECT
			COALESCE((SELECT balance FROM user_credits WHERE user_id = $1), 0)::BIGINT AS balance,
			COALESCE((
				SELECT SUM(t.credits_spent)
				FROM generation_tasks t
				WHERE t.user_id = $1
				  AND t.status IN ('pending', 'processing')
				  AND NOT EXISTS (
					SELECT 1 FROM credit_ledger l
					WHERE l.task_id = t.id AND l.type = 'spend'
				  )
			), 0)::BIGINT AS reserved
	`

	var row struct {
		Balance  int64 `db:"balance"`
		Reserved int64 `db:"reserved"`
	}
	err = sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &row, query, userID)
	logger.Query(query, []any{userID}, row, err)

	return row.Balance, row.Reserved, err
}
