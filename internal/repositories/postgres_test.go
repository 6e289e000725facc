package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// --- Setup Postgres ---
func setupPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Postgres integration test in short mode")
	}
	logger.Initialize("debug")
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "secret", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:secret@%s:%s/testdb?sslmode=disable", host, port.Port())
	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	require.NoError(t, Migrate(ctx, db))
	// A second run must be a no-op.
	require.NoError(t, Migrate(ctx, db))

	return db
}

// --- Helpers ---
func insertUser(t *testing.T, db *sqlx.DB, email, passwordHash, role string) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	_, err := db.Exec(`INSERT INTO users (id, email, password_hash, role) VALUES ($1, $2, $3, $4)`,
		userID, email, passwordHash, role)
	require.NoError(t, err)
	return userID
}

func getBalance(t *testing.T, db *sqlx.DB, userID uuid.UUID) int64 {
	t.Helper()
	var balance int64
	require.NoError(t, db.Get(&balance, `SELECT balance FROM user_credits WHERE user_id = $1`, userID))
	return balance
}

func ledgerSum(t *testing.T, db *sqlx.DB, userID uuid.UUID) int64 {
	t.Helper()
	var sum int64
	require.NoError(t, db.Get(&sum, `SELECT COALESCE(SUM(amount), 0)::BIGINT FROM credit_ledger WHERE user_id = $1`, userID))
	return sum
}
