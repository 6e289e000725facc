package models

import (
	"time"

	"github.com/google/uuid"
)

// LedgerType is the reason code of a credit ledger entry.
type LedgerType string

// Ledger entry types. Spend entries carry a negative amount.
const (
	LedgerTopUp      LedgerType = "top-up"
	LedgerSpend      LedgerType = "spend"
	LedgerRefund     LedgerType = "refund"
	LedgerAdjustment LedgerType = "adjustment"
)

// UserCreditsDB represents a user_credits row.
type UserCreditsDB struct {
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Balance     int64     `json:"balance" db:"balance"`
	TotalEarned int64     `json:"total_earned" db:"total_earned"`
	TotalSpent  int64     `json:"total_spent" db:"total_spent"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// LedgerEntryDB represents an immutable credit_ledger row.
type LedgerEntryDB struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	TaskID      *uuid.UUID `json:"task_id,omitempty" db:"task_id"`
	Amount      int64      `json:"amount" db:"amount"`
	Type        LedgerType `json:"type" db:"type"`
	Description string     `json:"description" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// WrapDB represents a saved wrap shown in the user's history.
type WrapDB struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Category  string    `json:"category" db:"category"`
	Name      *string   `json:"name" db:"name"`
	ImageURL  *string   `json:"image_url" db:"image_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
