// Package suggestion содержит логику бизнес-уровня для обратной связи.
package suggestion

import (
	"context"
	"fmt"

	"github.com/artechoes/artechoes/internal/models"
)

// Repository описывает контракт для записей обратной связи.
type Repository interface {
	CreateSuggestion(ctx context.Context, suggestion models.Suggestion) (string, error)
}

// Service реализует приём предложений.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create сохраняет предложение и возвращает его идентификатор.
func (s *Service) Create(ctx context.Context, req models.DummySuggestion) (string, error) {
	const op = "suggestion.Create"

	id, err := s.repo.CreateSuggestion(ctx, models.Suggestion{
		Name:       req.Name,
		Email:      req.Email,
		Subject:    req.Subject,
		Suggestion: req.Suggestion,
		Category:   req.Category,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}
