package models

import "time"

type Prompt struct {
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Actions     []Action  `json:"actions"`
	PresentedAt time.Time `json:"presented_at"`
}
