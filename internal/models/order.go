package models

import "time"

// Статусы заказа. Статусы failed и refunded объявлены, но ни один
// существующий поток их не выставляет: они зарезервированы под
// обработку webhook-событий шлюза.
const (
	OrderStatusCreated  = "created"
	OrderStatusPaid     = "paid"
	OrderStatusFailed   = "failed"
	OrderStatusRefunded = "refunded"
)

// ReceiptMaxLen жёсткое ограничение платёжного шлюза на длину receipt.
const ReceiptMaxLen = 40

// Order запись об одной попытке оплаты. Строка зеркалит заказ,
// созданный на стороне шлюза, и обновляется ровно один раз — при
// успешной проверке подписи.
type Order struct {
	ID                string    `json:"id"`
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string    `json:"razorpay_signature,omitempty"`
	Amount            int64     `json:"amount"` // сумма в пайсах
	Currency          string    `json:"currency"`
	Receipt           string    `json:"receipt"`
	Status            string    `json:"status"`
	UserID            string    `json:"user_id"`
	ArtworkID         *string   `json:"artwork_id,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// DummyOrderCreate используется для приёма запроса на создание заказа.
type DummyOrderCreate struct {
	Amount    int64   `json:"amount" validate:"required,gt=0"` // сумма в пайсах
	Currency  string  `json:"currency,omitempty"`
	Receipt   string  `json:"receipt,omitempty"`
	ArtworkID *string `json:"artwork_id,omitempty"`
}

// DummyOrderVerify используется для приёма запроса на проверку подписи платежа.
type DummyOrderVerify struct {
	RazorpayOrderID   string  `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string  `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string  `json:"razorpay_signature" validate:"required"`
	ArtworkID         *string `json:"artwork_id,omitempty"`
}
