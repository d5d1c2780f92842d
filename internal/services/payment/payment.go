// Package payment содержит логику бизнес-уровня для заказов Razorpay:
// создание заказа в шлюзе с локальным зеркалом и проверку подписи оплаты.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/artechoes/artechoes/internal/models"
	"github.com/artechoes/artechoes/internal/razorpay"
)

// Ошибки бизнес-уровня, по которым хэндлеры выбирают статус ответа.
var (
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrOrderNotFound    = errors.New("order not found")
)

// Gateway описывает контракт удалённого платёжного шлюза.
type Gateway interface {
	CreateOrder(ctx context.Context, req razorpay.CreateOrderRequest) (*razorpay.CreateOrderResponse, error)
}

// Repository описывает контракт для работы с заказами в базе данных.
type Repository interface {
	CreateOrder(ctx context.Context, order *models.Order) (string, error)
	GetOrderByRazorpayID(ctx context.Context, razorpayOrderID string) (*models.Order, error)
	MarkOrderPaid(ctx context.Context, razorpayOrderID, paymentID, signature string, artworkID *string) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]*models.Order, error)
}

// Service реализует операции заказов.
type Service struct {
	gateway   Gateway
	repo      Repository
	keySecret string
	now       func() time.Time
}

// New создает новый экземпляр Service.
func New(gateway Gateway, repo Repository, keySecret string) *Service {
	return &Service{
		gateway:   gateway,
		repo:      repo,
		keySecret: keySecret,
		now:       time.Now,
	}
}

// CreateOrder создает заказ в шлюзе и зеркалит его в локальной базе.
// Пустой receipt заменяется на rcpt_<unix-ms>; итоговый receipt обрезается
// до 40 символов, лимита Razorpay.
func (s *Service) CreateOrder(ctx context.Context, userID string, req models.DummyOrderCreate) (*razorpay.CreateOrderResponse, error) {
	const op = "payment.CreateOrder"

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	receipt := req.Receipt
	if receipt == "" {
		receipt = fmt.Sprintf("rcpt_%d", s.now().UnixMilli())
	}
	if len(receipt) > models.ReceiptMaxLen {
		receipt = receipt[:models.ReceiptMaxLen]
	}

	gwOrder, err := s.gateway.CreateOrder(ctx, razorpay.CreateOrderRequest{
		Amount:   req.Amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	order := &models.Order{
		RazorpayOrderID: gwOrder.ID,
		Amount:          gwOrder.Amount,
		Currency:        gwOrder.Currency,
		Receipt:         receipt,
		Status:          models.OrderStatusCreated,
		UserID:          userID,
		ArtworkID:       req.ArtworkID,
	}
	if _, err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return gwOrder, nil
}

// Verify сверяет подпись оплаты и переводит заказ в статус paid.
// Подпись проверяется до поиска заказа; несовпадение не меняет состояние.
// Повторная валидная проверка того же заказа тоже завершается успехом.
func (s *Service) Verify(ctx context.Context, req models.DummyOrderVerify) (*models.Order, error) {
	const op = "payment.Verify"

	payload := req.RazorpayOrderID + "|" + req.RazorpayPaymentID
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(req.RazorpaySignature)) {
		return nil, ErrInvalidSignature
	}

	if _, err := s.repo.GetOrderByRazorpayID(ctx, req.RazorpayOrderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	order, err := s.repo.MarkOrderPaid(ctx, req.RazorpayOrderID, req.RazorpayPaymentID,
		req.RazorpaySignature, req.ArtworkID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// ListByUser возвращает заказы пользователя, новые первыми.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	const op = "payment.ListByUser"
	orders, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}
