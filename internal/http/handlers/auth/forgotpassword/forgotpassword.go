// Package forgotpassword реализует HTTP-обработчик запроса сброса пароля.
// Письмо со ссылкой уходит через очередь, ответ клиенту не ждет отправки.
package forgotpassword

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/artechoes/artechoes/internal/http/response"
	"github.com/artechoes/artechoes/internal/lib/sl"
	"github.com/artechoes/artechoes/internal/services/auth"
)

// Request — структура входных данных запроса сброса.
type Request struct {
	Email string `json:"email" validate:"required"`
}

// Handler обрабатывает HTTP-запросы на сброс пароля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики сброса пароля.
type Service interface {
	ForgotPassword(ctx context.Context, email string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Запрос сброса пароля
// @Description Публикует письмо со ссылкой восстановления в очередь отправки.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Почта учетной записи"
// @Success 200 {object} response.Response "Письмо поставлено в очередь"
// @Failure 400 {object} response.ErrorResponse "Неизвестная почта"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/forgot-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgotpassword"

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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			log.Error("unknown email")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("User with that email doesn't exist."))
			return
		}
		log.Error("failed to enqueue reset mail", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Server error."))
		return
	}

	log.Info("reset mail enqueued")
	render.JSON(w, r, response.OKWithMessage("Password reset email sent. Please check your inbox."))
}
