package models

import "eventhub-be/internal/entities"

// CreateEventResponse represents the response after creating an event
type CreateEventResponse struct {
	Message string          `json:"message"`
	Event   *entities.Event `json:"event"`
}

// MessageResponse is used by mutations that only report success
type MessageResponse struct {
	Message string `json:"message"`
}
