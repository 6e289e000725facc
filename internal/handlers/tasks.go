package handlers

//go:generate mockgen -source=tasks.go -destination=tasks_mock_test.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/middlewares"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
	"github.com/sbilibin2017/gw-wrap-credits/internal/services"
)

// TaskCreator starts a generation task.
type TaskCreator interface {
	CreateTask(ctx context.Context, userID uuid.UUID, prompt string, credits int64, idempotencyKey string) (*services.CreateTaskResult, error)
}

// HistoryReader lists a user's wraps and generation tasks.
type HistoryReader interface {
	History(ctx context.Context, userID uuid.UUID, category string, limit int) ([]models.WrapDB, []models.GenerationTaskDB, error)
}

// CreateTaskRequest represents the JSON body for starting a generation
// swagger:model CreateTaskRequest
type CreateTaskRequest struct {
	// Generation prompt
	// required: true
	// default: matte black with orange racing stripes
	Prompt string `json:"prompt"`

	// Optional client key; repeating it returns the first task without charging again
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// CreateTaskResponse represents a started generation
// swagger:model CreateTaskResponse
type CreateTaskResponse struct {
	Success          bool      `json:"success"`
	TaskID           uuid.UUID `json:"taskId"`
	RemainingBalance int64     `json:"remainingBalance"`
	Idempotent       bool      `json:"idempotent,omitempty"`
}

// HistoryResponse lists wraps and, for AI generated wraps, recent tasks
// swagger:model HistoryResponse
type HistoryResponse struct {
	Success bool                      `json:"success"`
	Wraps   []models.WrapDB           `json:"wraps"`
	Tasks   []models.GenerationTaskDB `json:"tasks"`
}

// NewCreateTaskHandler returns an HTTP handler that charges credits and creates a generation task.
// @Summary Start a generation
// @Description Debits the generation cost and creates a pending task in one transaction
// @Tags wrap
// @Accept json
// @Produce json
// @Param request body handlers.CreateTaskRequest true "Create task request"
// @Param Idempotency-Key header string false "Idempotency key"
// @Success 200 {object} handlers.CreateTaskResponse "Task created"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 402 {object} models.ErrorResponse "Insufficient credits"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /wrap/tasks [post]
func NewCreateTaskHandler(svc TaskCreator, cost int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req CreateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Prompt = strings.TrimSpace(req.Prompt)
		if req.Prompt == "" {
			writeError(w, http.StatusBadRequest, "prompt is required")
			return
		}
		if req.IdempotencyKey == "" {
			req.IdempotencyKey = r.Header.Get("Idempotency-Key")
		}

		res, err := svc.CreateTask(r.Context(), user.UserID, req.Prompt, cost, req.IdempotencyKey)
		if err != nil {
			if errors.Is(err, services.ErrInsufficientCredits) {
				writeError(w, http.StatusPaymentRequired, "Insufficient credits")
				return
			}
			logger.Log.Errorw("failed to create task", "userID", user.UserID, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, CreateTaskResponse{
			Success:          true,
			TaskID:           res.TaskID,
			RemainingBalance: res.RemainingBalance,
			Idempotent:       res.Idempotent,
		})
	}
}

// NewHistoryHandler returns an HTTP handler for the caller's wrap history.
// @Summary Wrap history
// @Description Lists saved wraps of a category. For ai_generated the caller's stale tasks are stopped first and recent tasks are included.
// @Tags wrap
// @Produce json
// @Param category query string false "Wrap category (default ai_generated)"
// @Param limit query int false "Max items (default 20, max 100)"
// @Success 200 {object} handlers.HistoryResponse "History"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /wrap/history [get]
func NewHistoryHandler(svc HistoryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		category := r.URL.Query().Get("category")
		if category == "" {
			category = services.CategoryAIGenerated
		}

		wraps, tasks, err := svc.History(r.Context(), user.UserID, category, parseLimit(r, 20, 100))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, HistoryResponse{Success: true, Wraps: wraps, Tasks: tasks})
	}
}
