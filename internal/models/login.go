package models

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// example: driver@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// ErrorResponse is the body returned by every failing endpoint
// swagger:model ErrorResponse
type ErrorResponse struct {
	Success bool `json:"success"`
	// Error message
	// example: Unauthorized
	Error string `json:"error"`
}
