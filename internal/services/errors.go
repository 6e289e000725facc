package services

import "errors"

// Error variables
var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidTransition   = errors.New("task status does not allow this transition")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrForbidden           = errors.New("task belongs to another user")
)
