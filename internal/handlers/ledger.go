package handlers

//go:generate mockgen -source=ledger.go -destination=ledger_mock_test.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wrap-credits/internal/middlewares"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
)

// LedgerLister lists a user's ledger entries.
type LedgerLister interface {
	ListLedger(ctx context.Context, userID uuid.UUID, limit int) ([]models.LedgerEntryDB, error)
}

// LedgerResponse is the user's credit history
// swagger:model LedgerResponse
type LedgerResponse struct {
	Success bool                   `json:"success"`
	Entries []models.LedgerEntryDB `json:"entries"`
}

// NewListLedgerHandler returns an HTTP handler for the caller's credit history.
// @Summary List credit history
// @Description Returns the caller's ledger entries, newest first
// @Tags credits
// @Produce json
// @Param limit query int false "Max entries (default 50, max 200)"
// @Success 200 {object} handlers.LedgerResponse "Ledger entries"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /credits/ledger [get]
func NewListLedgerHandler(svc LedgerLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		entries, err := svc.ListLedger(r.Context(), user.UserID, parseLimit(r, 50, 200))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, LedgerResponse{Success: true, Entries: entries})
	}
}
