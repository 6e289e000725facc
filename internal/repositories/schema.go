package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
)

// migrations create the tables used by the repositories. Every statement is idempotent.
var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT NOT NULL UNIQUE,
		display_name TEXT,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash TEXT NOT NULL UNIQUE,
		expires_at TIMESTAMPTZ NOT NULL,
		ip_address TEXT,
		user_agent TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS user_credits (
		user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
		total_earned BIGINT NOT NULL DEFAULT 0,
		total_spent BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS generation_tasks (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		prompt TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'processing', 'completed', 'failed', 'failed_refunded')),
		credits_spent BIGINT NOT NULL DEFAULT 0,
		steps JSONB NOT NULL DEFAULT '[]'::jsonb,
		error_message TEXT,
		idempotency_key TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, idempotency_key)
	);`,
	`CREATE INDEX IF NOT EXISTS generation_tasks_user_status_idx
		ON generation_tasks (user_id, status, updated_at);`,
	`CREATE TABLE IF NOT EXISTS credit_ledger (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		task_id UUID REFERENCES generation_tasks(id) ON DELETE SET NULL,
		amount BIGINT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('top-up', 'spend', 'refund', 'adjustment')),
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS credit_ledger_user_idx ON credit_ledger (user_id, created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS credit_ledger_task_idx ON credit_ledger (task_id, type);`,
	`CREATE TABLE IF NOT EXISTS wraps (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		category TEXT NOT NULL,
		name TEXT,
		image_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	);`,
}

// Migrate creates missing tables and indexes.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, m := range migrations {
		_, err := db.ExecContext(ctx, m)
		logger.Query(m, nil, nil, err)
		if err != nil {
			return err
		}
	}
	return nil
}
