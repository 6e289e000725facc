package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
)

// WrapReadRepository reads saved wraps.
type WrapReadRepository struct {
	db *sqlx.DB
}

func NewWrapReadRepository(db *sqlx.DB) *WrapReadRepository {
	return &WrapReadRepository{db: db}
}

// ListByUserID returns the user's non-deleted wraps of a category, newest first.
func (r *WrapReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID, category string, limit int) ([]models.WrapDB, error) {
	const query = `
		SELECT id, user_id, category, name, image_url, created_at
		FROM wraps
		WHERE user_id = $1 AND deleted_at IS NULL AND category = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	wraps := []models.WrapDB{}
	err := r.db.SelectContext(ctx, &wraps, query, userID, category, limit)
	logger.Query(query, []any{userID, category, limit}, len(wraps), err)
	return wraps, err
}
