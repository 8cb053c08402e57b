package domain

import (
	"time"
)

// GestureBinding maps a recognized gesture name to the action it triggers.
type GestureBinding struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateGestureBindingRequest struct {
	Name   string `json:"name"`
	Action string `json:"action"`
}

// GestureEvent records one complex-gesture transition observed on the stream.
type GestureEvent struct {
	ID         int       `json:"id"`
	Gesture    string    `json:"gesture"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}
