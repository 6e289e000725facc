package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
)

// SessionRepository stores login sessions keyed by the hash of the cookie token.
type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// GetUserByTokenHash resolves an unexpired session to its user, or nil.
func (r *SessionRepository) GetUserByTokenHash(ctx context.Context, tokenHash string) (*models.SessionUser, error) {
	const query = `
		SELECT u.id, u.email, u.display_name, u.role
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token_hash = $1 AND s.expires_at > NOW()
		LIMIT 1
	`

	var user models.SessionUser
	err := r.db.GetContext(ctx, &user, query, tokenHash)
	logger.Query(query, []any{"<redacted>"}, user.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a session row.
func (r *SessionRepository) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time, ip, userAgent *string) error {
	const query = `
		INSERT INTO sessions (id, user_id, token_hash, expires_at, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), userID, tokenHash, expiresAt, ip, userAgent)
	logger.Query(query, []any{userID, "<redacted>", expiresAt}, nil, err)
	return err
}

// DeleteByTokenHash removes a session. Deleting an unknown session is not an error.
func (r *SessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	const query = `DELETE FROM sessions WHERE token_hash = $1`

	res, err := r.db.ExecContext(ctx, query, tokenHash)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logger.Query(query, []any{"<redacted>"}, rowsAffected, err)
	return err
}
