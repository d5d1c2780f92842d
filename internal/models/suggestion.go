package models

import "time"

// Suggestion запись обратной связи. Только создаётся, жизненного цикла нет.
type Suggestion struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Suggestion string    `json:"suggestion"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DummySuggestion используется для приёма обратной связи из JSON-запроса.
type DummySuggestion struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
	Suggestion string `json:"suggestion" validate:"required"`
	Category   string `json:"category" validate:"required"`
}
