package handlers

//go:generate mockgen -source=auth.go -destination=auth_mock_test.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
	"github.com/sbilibin2017/gw-wrap-credits/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password, ip, userAgent string) (string, time.Time, error)
}

// Logouter ends a session.
type Logouter interface {
	Logout(ctx context.Context, token string) error
}

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// SuccessResponse is returned by endpoints that only report success
// swagger:model SuccessResponse
type SuccessResponse struct {
	// default: true
	Success bool `json:"success"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Checks email and password and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login Request"
// @Success 200 {object} handlers.SuccessResponse "Session cookie set"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Invalid email or password"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func NewLoginHandler(svc Loginer, cookie CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		token, expiresAt, err := svc.Login(r.Context(), req.Email, req.Password, clientIP(r), r.UserAgent())
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "Invalid email or password")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cookie.Name,
			Value:    token,
			Path:     "/",
			Expires:  expiresAt,
			HttpOnly: true,
			Secure:   cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}

// NewLogoutHandler returns an HTTP handler that ends the current session.
// @Summary User logout
// @Description Deletes the session and clears the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.SuccessResponse "Logged out"
// @Router /auth/logout [post]
func NewLogoutHandler(svc Logouter, cookie CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(cookie.Name); err == nil && c.Value != "" {
			if err := svc.Logout(r.Context(), c.Value); err != nil {
				logger.Log.Errorw("failed to logout", "err", err)
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cookie.Name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
