package model

import "github.com/google/uuid"

// NewRequestID creates a new UUID string used to correlate requests in logs.
func NewRequestID() string {
	return uuid.New().String()
}
