package services

//go:generate mockgen -source=credits.go -destination=credits_mock_test.go -package=services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
)

// TxRunner runs fn inside one database transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// CreditWriter mutates user_credits rows under a row lock.
type CreditWriter interface {
	LockByUserID(ctx context.Context, userID uuid.UUID) (*models.UserCreditsDB, error)
	Create(ctx context.Context, userID uuid.UUID, balance, totalEarned int64) error
	Earn(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)
	Restore(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)
	Debit(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)
}

// BalanceReader reads balances without locking.
type BalanceReader interface {
	GetBalanceAndReserved(ctx context.Context, userID uuid.UUID) (balance, reserved int64, err error)
}

// LedgerStore appends and reads credit ledger entries.
type LedgerStore interface {
	Append(ctx context.Context, entry *models.LedgerEntryDB) error
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]models.LedgerEntryDB, error)
	List(ctx context.Context, limit int) ([]models.LedgerEntryDB, error)
	ChargedAmount(ctx context.Context, taskID uuid.UUID) (int64, bool, error)
	HasRefund(ctx context.Context, taskID uuid.UUID) (bool, error)
}

// CreditService exposes balances, top-ups and the ledger.
type CreditService struct {
	tx          TxRunner
	writer      CreditWriter
	reader      BalanceReader
	ledger      LedgerStore
	kafkaWriter KafkaWriter
}

// NewCreditService creates a new CreditService.
func NewCreditService(
	tx TxRunner,
	writer CreditWriter,
	reader BalanceReader,
	ledger LedgerStore,
	kafkaWriter KafkaWriter,
) *CreditService {
	return &CreditService{
		tx:          tx,
		writer:      writer,
		reader:      reader,
		ledger:      ledger,
		kafkaWriter: kafkaWriter,
	}
}

// AvailableBalance returns the balance minus credits reserved by in-flight tasks,
// floored at zero. It always reads committed state.
func (s *CreditService) AvailableBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	balance, reserved, err := s.reader.GetBalanceAndReserved(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get balance", "userID", userID, "error", err)
		return 0, err
	}
	return Available(balance, reserved), nil
}

// Available computes max(0, balance - reserved).
func Available(balance, reserved int64) int64 {
	if available := balance - reserved; available > 0 {
		return available
	}
	return 0
}

// TopUp grants amount credits to the user and records a top-up entry.
// Returns the new balance.
func (s *CreditService) TopUp(ctx context.Context, userID uuid.UUID, amount int64, description string) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if description == "" {
		description = "Credit top-up"
	}

	var balance int64
	entry := models.LedgerEntryDB{
		UserID:      userID,
		Amount:      amount,
		Type:        models.LedgerTopUp,
		Description: description,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.writer.LockByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if current == nil {
			if err := s.writer.Create(ctx, userID, amount, amount); err != nil {
				return err
			}
			balance = amount
		} else if balance, err = s.writer.Earn(ctx, userID, amount); err != nil {
			return err
		}
		return s.ledger.Append(ctx, &entry)
	})
	if err != nil {
		logger.Log.Errorw("failed to top up credits", "userID", userID, "amount", amount, "error", err)
		return 0, err
	}

	publishLedgerEvent(ctx, s.kafkaWriter, entry, balance)
	return balance, nil
}

// ListLedger returns the user's ledger entries, newest first.
func (s *CreditService) ListLedger(ctx context.Context, userID uuid.UUID, limit int) ([]models.LedgerEntryDB, error) {
	entries, err := s.ledger.ListByUserID(ctx, userID, limit)
	if err != nil {
		logger.Log.Errorw("failed to list ledger", "userID", userID, "error", err)
		return nil, err
	}
	return entries, nil
}

// ListAllLedger returns the latest ledger entries of every user.
func (s *CreditService) ListAllLedger(ctx context.Context, limit int) ([]models.LedgerEntryDB, error) {
	entries, err := s.ledger.List(ctx, limit)
	if err != nil {
		logger.Log.Errorw("failed to list ledger", "error", err)
		return nil, err
	}
	return entries, nil
}
