package handlers

//go:generate mockgen -source=steps.go -destination=steps_mock_test.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
	"github.com/sbilibin2017/gw-wrap-credits/internal/services"
)

// StepLogger records task milestones.
type StepLogger interface {
	LogStep(ctx context.Context, taskID uuid.UUID, kind models.StepKind, opts services.StepOptions) bool
}

// LogStepRequest represents a milestone reported by a generation worker
// swagger:model LogStepRequest
type LogStepRequest struct {
	// Step name
	// required: true
	// default: processing
	Step string `json:"step"`

	// Optional status to move the task to
	Status string `json:"status,omitempty"`

	// Optional reason, kept as the task error message when none is set
	Reason string `json:"reason,omitempty"`

	// Optional free-form metadata
	Metadata json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// LogStepResponse reports whether the step was stored
// swagger:model LogStepResponse
type LogStepResponse struct {
	Success  bool `json:"success"`
	Recorded bool `json:"recorded"`
}

// NewLogStepHandler returns an HTTP handler through which workers report task progress.
// Recording is best-effort: the request is accepted even when the step could not be stored.
// @Summary Report a task step
// @Tags internal
// @Accept json
// @Produce json
// @Param taskId path string true "Task ID"
// @Param request body handlers.LogStepRequest true "Step"
// @Success 202 {object} handlers.LogStepResponse "Accepted"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Router /internal/tasks/{taskId}/steps [post]
// @Security BearerAuth
func NewLogStepHandler(tracker StepLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID, err := uuid.Parse(chi.URLParam(r, "taskId"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid taskId")
			return
		}

		var req LogStepRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Step == "" {
			writeError(w, http.StatusBadRequest, "step is required")
			return
		}

		opts := services.StepOptions{Reason: req.Reason, Metadata: req.Metadata}
		if req.Status != "" {
			status := models.TaskStatus(req.Status)
			if !status.Valid() {
				writeError(w, http.StatusBadRequest, "unknown status")
				return
			}
			opts.Status = &status
		}

		recorded := tracker.LogStep(r.Context(), taskID, models.StepKind(req.Step), opts)
		writeJSON(w, http.StatusAccepted, LogStepResponse{Success: true, Recorded: recorded})
	}
}
