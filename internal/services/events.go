package services

//go:generate mockgen -source=events.go -destination=events_mock_test.go -package=services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// publishLedgerEvent publishes a committed ledger entry to Kafka.
// Failures are logged and never reach the caller.
func publishLedgerEvent(ctx context.Context, w KafkaWriter, entry models.LedgerEntryDB, balance int64) {
	if w == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "entry_id", entry.ID)
		return
	}

	event := models.LedgerEvent{
		EntryID:   entry.ID.String(),
		Timestamp: time.Now().Unix(),
		Amount:    entry.Amount,
		UserID:    entry.UserID.String(),
		Type:      string(entry.Type),
		Balance:   balance,
	}
	if entry.TaskID != nil {
		event.TaskID = entry.TaskID.String()
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal ledger event for Kafka", "entry_id", event.EntryID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish ledger event to Kafka", "entry_id", event.EntryID, "error", err)
	} else {
		logger.Log.Infow("Ledger event published to Kafka", "entry_id", event.EntryID, "amount", event.Amount, "type", event.Type)
	}
}
