package handlers

//go:generate mockgen -source=events.go -destination=events_mock_test.go -package=handlers
//go:generate mockgen -destination=notify_mock_test.go -package=handlers github.com/sbilibin2017/gw-wrap-credits/internal/notify Subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/middlewares"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
	"github.com/sbilibin2017/gw-wrap-credits/internal/notify"
	"github.com/sbilibin2017/gw-wrap-credits/internal/services"
)

// DefaultHeartbeat is the interval of keep-alive comments on event streams.
const DefaultHeartbeat = 15 * time.Second

// TaskStreamer authorizes and reads the tasks streamed to clients.
type TaskStreamer interface {
	AuthorizeTask(ctx context.Context, taskID, userID uuid.UUID) error
	Snapshot(ctx context.Context, taskID uuid.UUID) (*models.TaskSnapshot, error)
}

type connectedEvent struct {
	Type   string    `json:"type"`
	TaskID uuid.UUID `json:"taskId"`
}

type updateEvent struct {
	Type string               `json:"type"`
	Task *models.TaskSnapshot `json:"task"`
}

// NewTaskEventsHandler returns an HTTP handler streaming updates of one task as Server-Sent Events.
// Ownership is checked before subscribing. The subscription is closed on every exit path.
// @Summary Task event stream
// @Description Server-Sent Events: a connected frame, one update frame per task change and a heartbeat comment
// @Tags wrap
// @Produce text/event-stream
// @Param taskId query string true "Task ID"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} models.ErrorResponse "Missing taskId"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Task belongs to another user"
// @Failure 404 {object} models.ErrorResponse "Task not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /wrap/events [get]
func NewTaskEventsHandler(tasks TaskStreamer, subscriber notify.Subscriber, heartbeat time.Duration) http.HandlerFunc {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user := middlewares.UserFromContext(ctx)
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		rawID := r.URL.Query().Get("taskId")
		if rawID == "" {
			writeError(w, http.StatusBadRequest, "taskId is required")
			return
		}
		taskID, err := uuid.Parse(rawID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid taskId")
			return
		}

		if err := tasks.AuthorizeTask(ctx, taskID, user.UserID); err != nil {
			switch {
			case errors.Is(err, services.ErrTaskNotFound):
				writeError(w, http.StatusNotFound, "Task not found")
			case errors.Is(err, services.ErrForbidden):
				logger.Log.Warnw("event stream denied", "task_id", taskID, "user_id", user.UserID)
				writeError(w, http.StatusForbidden, "Forbidden")
			default:
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		sub, err := subscriber.Subscribe(ctx, taskID)
		if err != nil {
			logger.Log.Errorw("failed to subscribe to task updates", "task_id", taskID, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		defer func() {
			if err := sub.Close(); err != nil {
				logger.Log.Warnw("failed to close task subscription", "task_id", taskID, "error", err)
			}
		}()

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache, no-transform")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		if err := writeEvent(w, connectedEvent{Type: "connected", TaskID: taskID}); err != nil {
			return
		}
		flusher.Flush()

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
					return
				}
				flusher.Flush()

			case _, ok := <-sub.Events():
				if !ok {
					return
				}
				snap, err := tasks.Snapshot(ctx, taskID)
				if errors.Is(err, services.ErrTaskNotFound) {
					return
				}
				if err != nil {
					logger.Log.Errorw("failed to read task for event", "task_id", taskID, "error", err)
					continue
				}
				if err := writeEvent(w, updateEvent{Type: "update", Task: snap}); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
