// Package orderverify реализует HTTP-обработчик подтверждения оплаты.
//
// Подпись сверяется до поиска заказа; повторное подтверждение того же
// заказа также завершается успехом.
package orderverify

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
	"github.com/artechoes/artechoes/internal/models"
	"github.com/artechoes/artechoes/internal/services/payment"
)

// Handler управляет HTTP-запросами подтверждения оплаты.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики подтверждения оплаты.
type Service interface {
	Verify(ctx context.Context, req models.DummyOrderVerify) (*models.Order, error)
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
// @Summary Подтвердить оплату заказа
// @Description Сверяет подпись Razorpay и переводит заказ в статус paid.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.DummyOrderVerify true "Данные подтверждения"
// @Success 200 {object} map[string]any "Оплата подтверждена"
// @Failure 400 {object} response.ErrorResponse "Неверная подпись"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/payments/verify [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.orderverify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyOrderVerify
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
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

	order, err := h.service.Verify(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidSignature):
			log.Error("invalid payment signature", slog.String("razorpay_order_id", req.RazorpayOrderID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, map[string]any{
				"success": false,
				"message": "Invalid payment signature",
			})
		case errors.Is(err, payment.ErrOrderNotFound):
			log.Error("order not found", slog.String("razorpay_order_id", req.RazorpayOrderID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, map[string]any{
				"success": false,
				"message": "Order not found",
			})
		default:
			log.Error("verification failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, map[string]any{
				"success": false,
				"message": "Server error during verification",
			})
		}
		return
	}

	log.Info("payment verified", slog.String("razorpay_order_id", order.RazorpayOrderID))
	render.JSON(w, r, map[string]any{
		"success":  true,
		"message":  "Payment verified successfully",
		"order_id": order.RazorpayOrderID,
	})
}
