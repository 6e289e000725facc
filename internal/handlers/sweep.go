package handlers

//go:generate mockgen -source=sweep.go -destination=sweep_mock_test.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-wrap-credits/internal/services"
)

// TaskSweeper stops stale tasks of every user.
type TaskSweeper interface {
	SweepStaleTasks(ctx context.Context, batchSize int) (*services.SweepResult, error)
}

// SweepRequest represents the optional JSON body of a sweep
// swagger:model SweepRequest
type SweepRequest struct {
	// Tasks to claim at most, clamped to [1, 200]
	// default: 50
	BatchSize int `json:"batchSize,omitempty"`
}

// SweepResponse reports one sweep
// swagger:model SweepResponse
type SweepResponse struct {
	Success bool `json:"success"`
	services.SweepResult
	DurationMs int64 `json:"durationMs"`
}

// NewSweepHandler returns an HTTP handler that claims stale in-flight tasks of
// every user, marks them failed and refunds the charged ones.
// @Summary Sweep stale tasks
// @Tags internal
// @Accept json
// @Produce json
// @Param request body handlers.SweepRequest false "Sweep request"
// @Success 200 {object} handlers.SweepResponse "Sweep result"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /internal/tasks/sweep [post]
// @Security BearerAuth
func NewSweepHandler(svc TaskSweeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SweepRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		started := time.Now()
		res, err := svc.SweepStaleTasks(r.Context(), req.BatchSize)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, SweepResponse{
			Success:     true,
			SweepResult: *res,
			DurationMs:  time.Since(started).Milliseconds(),
		})
	}
}
