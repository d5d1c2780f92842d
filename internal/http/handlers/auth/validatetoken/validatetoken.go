// Package validatetoken реализует HTTP-обработчик проверки JWT.
package validatetoken

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/artechoes/artechoes/internal/http/response"
	"github.com/artechoes/artechoes/internal/lib/sl"
)

// Request — структура входных данных проверки токена.
type Request struct {
	Token string `json:"token"`
}

// Handler обрабатывает HTTP-запросы проверки токена.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики проверки токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (string, bool, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверка JWT
// @Description Сообщает, действителен ли переданный токен.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Токен"
// @Success 200 {object} response.Response "Токен действителен"
// @Failure 400 {object} response.ErrorResponse "Токен не передан"
// @Failure 401 {object} response.ErrorResponse "Токен недействителен"
// @Router /api/validate-token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.validatetoken"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if req.Token == "" {
		log.Error("token missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Token is required"))
		return
	}

	_, valid, err := h.service.ValidateToken(r.Context(), req.Token)
	if err != nil || !valid {
		log.Error("token invalid", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Invalid token"))
		return
	}

	render.JSON(w, r, response.OKWithMessage("Token is valid"))
}
