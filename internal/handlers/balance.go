package handlers

//go:generate mockgen -source=balance.go -destination=balance_mock_test.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/middlewares"
)

// AvailableBalancer defines the interface that the service must implement.
type AvailableBalancer interface {
	AvailableBalance(ctx context.Context, userID uuid.UUID) (int64, error)
}

// BalanceResponse carries the available balance, null for anonymous callers
// swagger:model BalanceResponse
type BalanceResponse struct {
	// Credits not held by in-flight tasks
	// default: 90
	Balance *int64 `json:"balance"`
}

// NewGetBalanceHandler returns an HTTP handler for the available credit balance.
// @Summary Get available balance
// @Description Returns balance minus credits held by pending and processing tasks, never negative. Anonymous callers get null, storage errors read as 0.
// @Tags credits
// @Produce json
// @Success 200 {object} handlers.BalanceResponse "Available balance"
// @Router /credits/balance [get]
func NewGetBalanceHandler(svc AvailableBalancer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeJSON(w, http.StatusOK, BalanceResponse{})
			return
		}

		balance, err := svc.AvailableBalance(r.Context(), user.UserID)
		if err != nil {
			logger.Log.Errorw("failed to get balance", "userID", user.UserID, "error", err)
			balance = 0
		}
		writeJSON(w, http.StatusOK, BalanceResponse{Balance: &balance})
	}
}
