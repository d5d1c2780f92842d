// Package listbyuser реализует HTTP-обработчик списка работ одного автора.
package listbyuser

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/artechoes/artechoes/internal/http/response"
	"github.com/artechoes/artechoes/internal/lib/sl"
	"github.com/artechoes/artechoes/internal/models"
)

// Handler обрабатывает HTTP-запросы списка работ автора.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Artwork, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Работы автора
// @Description Возвращает все работы пользователя, новые первыми.
// @Tags Artworks
// @Produce  json
// @Param userId path string true "Идентификатор пользователя"
// @Success 200 {object} map[string]any "Список работ"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/artworks/user/{userId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.artwork.listbyuser"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "userId")

	result, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		log.Error("failed to list user artworks", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch user's artworks"))
		return
	}

	render.JSON(w, r, response.OKWithData(result))
}
