package razorpay

// CreateOrderRequest представляет запрос на создание заказа.
type CreateOrderRequest struct {
	Amount   int64  `json:"amount"`   // сумма в минимальных единицах валюты (пайсы)
	Currency string `json:"currency"` // валюта, например "INR"
	Receipt  string `json:"receipt"`  // не длиннее 40 символов
}

// CreateOrderResponse представляет ответ на создание заказа.
type CreateOrderResponse struct {
	ID        string `json:"id"`     // ID заказа в Razorpay
	Amount    int64  `json:"amount"` // сумма в пайсах
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`     // статус заказа, например "created"
	CreatedAt int64  `json:"created_at"` // unix-время создания
}
