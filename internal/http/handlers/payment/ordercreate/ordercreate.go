// Package ordercreate реализует HTTP-обработчик создания платёжного заказа.
//
// Заказ создается в шлюзе Razorpay, локальная запись зеркалит его поля.
package ordercreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/artechoes/artechoes/internal/http/middlewarectx"
	"github.com/artechoes/artechoes/internal/http/response"
	"github.com/artechoes/artechoes/internal/lib/sl"
	"github.com/artechoes/artechoes/internal/models"
	"github.com/artechoes/artechoes/internal/razorpay"
)

// Handler управляет HTTP-запросами на создание заказов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики заказов.
type Service interface {
	CreateOrder(ctx context.Context, userID string, req models.DummyOrderCreate) (*razorpay.CreateOrderResponse, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать платёжный заказ
// @Description Создает заказ в Razorpay и локальное зеркало записи.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.DummyOrderCreate true "Параметры заказа"
// @Success 201 {object} map[string]any "Созданный заказ шлюза"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Отказ шлюза или базы"
// @Router /api/payments/orders [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.ordercreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyOrderCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userID, ok := middlewarectx.GetUserID(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Unauthorized"))
		return
	}

	order, err := h.service.CreateOrder(r.Context(), userID, req)
	if err != nil {
		log.Error("failed to create order", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Order creation failed"))
		return
	}

	log.Info("order created", slog.String("razorpay_order_id", order.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(order))
}
