package models

// LedgerEvent is the message published to Kafka after a ledger entry commits.
type LedgerEvent struct {
	EntryID   string `json:"entry_id"`  // EntryID is the credit_ledger row id.
	Timestamp int64  `json:"timestamp"` // Timestamp is the Unix time (seconds) of the commit.
	Amount    int64  `json:"amount"`    // Amount is the signed credit delta.
	UserID    string `json:"user_id"`   // UserID is the owner of the credits.
	TaskID    string `json:"task_id"`   // TaskID is empty for entries not tied to a task.
	Type      string `json:"type"`      // Type is the ledger reason code, e.g. "spend" or "refund".
	Balance   int64  `json:"balance"`   // Balance is the user's balance after the entry.
}
