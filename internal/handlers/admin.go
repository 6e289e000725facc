package handlers

//go:generate mockgen -source=admin.go -destination=admin_mock_test.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
	"github.com/sbilibin2017/gw-wrap-credits/internal/services"
)

// Refunder settles a single task.
type Refunder interface {
	Refund(ctx context.Context, taskID uuid.UUID, reason string) (*services.RefundResult, error)
}

// BulkRefunder settles many failed tasks.
type BulkRefunder interface {
	RefundFailedTasks(ctx context.Context, taskIDs []uuid.UUID, reason string) ([]services.BulkRefundItem, error)
}

// TaskLister lists tasks of all users.
type TaskLister interface {
	ListTasks(ctx context.Context, status *models.TaskStatus, limit int) ([]models.GenerationTaskDB, error)
}

// TaskStatser summarizes tasks for the dashboard.
type TaskStatser interface {
	Stats(ctx context.Context, hours int) (*models.TaskStats, error)
}

// CreditAdmin reads the global ledger and grants credits.
type CreditAdmin interface {
	ListAllLedger(ctx context.Context, limit int) ([]models.LedgerEntryDB, error)
	TopUp(ctx context.Context, userID uuid.UUID, amount int64, description string) (int64, error)
}

// RefundRequest represents the JSON body of a manual refund
// swagger:model RefundRequest
type RefundRequest struct {
	// Task to refund
	// required: true
	TaskID string `json:"taskId"`

	// Recorded on the ledger entry and the task
	// default: Manual admin refund
	Reason string `json:"reason,omitempty"`
}

// RefundResponse reports a refund
// swagger:model RefundResponse
type RefundResponse struct {
	Success         bool  `json:"success"`
	AlreadyRefunded bool  `json:"alreadyRefunded,omitempty"`
	CreditsRefunded int64 `json:"creditsRefunded"`
}

// BulkRefundRequest represents the JSON body of a bulk refund
// swagger:model BulkRefundRequest
type BulkRefundRequest struct {
	// Tasks to refund; the latest failed tasks when empty
	TaskIDs []string `json:"taskIds,omitempty"`
	Reason  string   `json:"reason,omitempty"`
}

// BulkRefundResponse reports per-task outcomes
// swagger:model BulkRefundResponse
type BulkRefundResponse struct {
	Success  bool                      `json:"success"`
	Refunded int                       `json:"refunded"`
	Failed   int                       `json:"failed"`
	Results  []services.BulkRefundItem `json:"results"`
}

// TasksResponse lists tasks
// swagger:model TasksResponse
type TasksResponse struct {
	Success bool                      `json:"success"`
	Tasks   []models.GenerationTaskDB `json:"tasks"`
}

// TaskStatsResponse reports task counts and rates
// swagger:model TaskStatsResponse
type TaskStatsResponse struct {
	Success bool `json:"success"`
	models.TaskStats
}

// CreditLogsResponse lists ledger entries of all users
// swagger:model CreditLogsResponse
type CreditLogsResponse struct {
	Success bool                   `json:"success"`
	Logs    []models.LedgerEntryDB `json:"logs"`
}

// TopUpRequest represents the JSON body of a credit grant
// swagger:model TopUpRequest
type TopUpRequest struct {
	// required: true
	UserID string `json:"userId"`
	// required: true
	// default: 100
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
}

// TopUpResponse reports the new balance
// swagger:model TopUpResponse
type TopUpResponse struct {
	Success bool  `json:"success"`
	Balance int64 `json:"balance"`
}

// NewAdminRefundHandler returns an HTTP handler that refunds one task.
// @Summary Refund a task
// @Description Returns the task's credits, writes a refund ledger entry and marks the task failed_refunded in one transaction. Refunding twice is a no-op.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body handlers.RefundRequest true "Refund request"
// @Success 200 {object} handlers.RefundResponse "Refunded"
// @Failure 400 {object} models.ErrorResponse "Missing taskId"
// @Failure 404 {object} models.ErrorResponse "Task not found"
// @Failure 409 {object} models.ErrorResponse "Task cannot be refunded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /admin/tasks/refund [post]
// @Security BearerAuth
func NewAdminRefundHandler(svc Refunder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefundRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.TaskID == "" {
			writeError(w, http.StatusBadRequest, "taskId is required")
			return
		}
		taskID, err := uuid.Parse(req.TaskID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid taskId")
			return
		}

		res, err := svc.Refund(r.Context(), taskID, req.Reason)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTaskNotFound):
				writeError(w, http.StatusNotFound, "Task not found")
			case errors.Is(err, services.ErrInvalidTransition):
				writeError(w, http.StatusConflict, "Task cannot be refunded")
			default:
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, RefundResponse{
			Success:         true,
			AlreadyRefunded: res.AlreadyRefunded,
			CreditsRefunded: res.CreditsRefunded,
		})
	}
}

// NewAdminRefundFailedHandler returns an HTTP handler that refunds failed tasks in bulk.
// @Summary Refund failed tasks
// @Description Refunds the listed tasks, or the latest failed tasks when none are listed. Each task is settled in its own transaction.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body handlers.BulkRefundRequest false "Bulk refund request"
// @Success 200 {object} handlers.BulkRefundResponse "Per-task results"
// @Failure 400 {object} models.ErrorResponse "Invalid task id"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /admin/tasks/refund-failed [post]
// @Security BearerAuth
func NewAdminRefundFailedHandler(svc BulkRefunder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BulkRefundRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ids := make([]uuid.UUID, 0, len(req.TaskIDs))
		for _, raw := range req.TaskIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid task id: "+raw)
				return
			}
			ids = append(ids, id)
		}

		items, err := svc.RefundFailedTasks(r.Context(), ids, req.Reason)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		resp := BulkRefundResponse{Success: true, Results: items}
		for _, item := range items {
			if item.Success {
				resp.Refunded++
			} else {
				resp.Failed++
			}
		}
		logger.Log.Infow("bulk refund finished", "refunded", resp.Refunded, "failed", resp.Failed)
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewAdminListTasksHandler returns an HTTP handler listing tasks of all users.
// @Summary List tasks
// @Tags admin
// @Produce json
// @Param status query string false "Filter by status"
// @Param limit query int false "Max tasks (default 50, max 200)"
// @Success 200 {object} handlers.TasksResponse "Tasks"
// @Failure 400 {object} models.ErrorResponse "Unknown status"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /admin/tasks [get]
// @Security BearerAuth
func NewAdminListTasksHandler(svc TaskLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var status *models.TaskStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			s := models.TaskStatus(raw)
			if !s.Valid() {
				writeError(w, http.StatusBadRequest, "unknown status")
				return
			}
			status = &s
		}

		tasks, err := svc.ListTasks(r.Context(), status, parseLimit(r, 50, 200))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, TasksResponse{Success: true, Tasks: tasks})
	}
}

// NewAdminTaskStatsHandler returns an HTTP handler with task counts, rates and latency.
// @Summary Task statistics
// @Tags admin
// @Produce json
// @Param hours query int false "Window in hours (default 24, max 720)"
// @Success 200 {object} handlers.TaskStatsResponse "Statistics"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /admin/tasks/stats [get]
// @Security BearerAuth
func NewAdminTaskStatsHandler(svc TaskStatser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hours, _ := strconv.Atoi(r.URL.Query().Get("hours"))

		stats, err := svc.Stats(r.Context(), hours)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, TaskStatsResponse{Success: true, TaskStats: *stats})
	}
}

// NewAdminListCreditsHandler returns an HTTP handler listing ledger entries of all users.
// @Summary List credit logs
// @Tags admin
// @Produce json
// @Param limit query int false "Max entries (default 100, max 500)"
// @Success 200 {object} handlers.CreditLogsResponse "Ledger entries"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /admin/credits [get]
// @Security BearerAuth
func NewAdminListCreditsHandler(svc CreditAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logs, err := svc.ListAllLedger(r.Context(), parseLimit(r, 100, 500))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, CreditLogsResponse{Success: true, Logs: logs})
	}
}

// NewAdminTopUpHandler returns an HTTP handler granting credits to a user.
// @Summary Grant credits
// @Tags admin
// @Accept json
// @Produce json
// @Param request body handlers.TopUpRequest true "Top-up request"
// @Success 200 {object} handlers.TopUpResponse "New balance"
// @Failure 400 {object} models.ErrorResponse "Invalid user or amount"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /admin/credits [post]
// @Security BearerAuth
func NewAdminTopUpHandler(svc CreditAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TopUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid userId")
			return
		}

		balance, err := svc.TopUp(r.Context(), userID, req.Amount, req.Description)
		if err != nil {
			if errors.Is(err, services.ErrInvalidAmount) {
				writeError(w, http.StatusBadRequest, "amount must be positive")
				return
			}
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, TopUpResponse{Success: true, Balance: balance})
	}
}
