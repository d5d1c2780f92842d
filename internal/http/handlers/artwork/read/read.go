// Package read реализует HTTP-обработчик чтения одной работы.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/artechoes/artechoes/internal/http/response"
	"github.com/artechoes/artechoes/internal/lib/sl"
	"github.com/artechoes/artechoes/internal/models"
	"github.com/artechoes/artechoes/internal/services/artwork"
)

// Handler обрабатывает HTTP-запросы чтения работы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	Read(ctx context.Context, id string) (*models.Artwork, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Одна работа
// @Description Возвращает работу по идентификатору.
// @Tags Artworks
// @Produce  json
// @Param id path string true "Идентификатор работы"
// @Success 200 {object} map[string]any "Работа"
// @Failure 404 {object} response.ErrorResponse "Работа не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/artworks/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.artwork.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	result, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, artwork.ErrArtworkNotFound) {
			log.Error("artwork not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Artwork not found"))
			return
		}
		log.Error("failed to read artwork", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch artwork"))
		return
	}

	render.JSON(w, r, response.OKWithData(result))
}
