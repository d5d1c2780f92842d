package repository

import (
	"context"
	"fmt"

	"github.com/artechoes/artechoes/internal/models"
)

// CreateSuggestion сохраняет запись обратной связи и возвращает её идентификатор.
func (s *Storage) CreateSuggestion(ctx context.Context, suggestion models.Suggestion) (string, error) {
	const op = "storage.CreateSuggestion"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO suggestions (name, email, subject, suggestion, category)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		suggestion.Name, suggestion.Email, suggestion.Subject,
		suggestion.Suggestion, suggestion.Category).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}
