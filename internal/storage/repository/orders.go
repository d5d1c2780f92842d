package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/artechoes/artechoes/internal/models"
)

// CreateOrder сохраняет локальную запись заказа, зеркалящую заказ на стороне шлюза.
func (s *Storage) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	const op = "storage.CreateOrder"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO orders (razorpay_order_id, amount, currency, receipt, status, user_id, artwork_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		order.RazorpayOrderID, order.Amount, order.Currency, order.Receipt,
		order.Status, order.UserID, order.ArtworkID).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetOrderByRazorpayID возвращает заказ по идентификатору, выданному шлюзом.
// При отсутствии записи возвращает обёрнутый sql.ErrNoRows.
func (s *Storage) GetOrderByRazorpayID(ctx context.Context, razorpayOrderID string) (*models.Order, error) {
	const op = "storage.GetOrderByRazorpayID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := orderSelect + ` WHERE razorpay_order_id = $1`
	row := s.DB.QueryRowContext(ctx, query, razorpayOrderID)
	order, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// MarkOrderPaid переводит заказ в статус paid, записывая идентификатор платежа
// и подпись. Переход не защищён от повторной проверки: два валидных запроса
// подряд оба завершатся успехом.
func (s *Storage) MarkOrderPaid(ctx context.Context, razorpayOrderID, paymentID, signature string, artworkID *string) (*models.Order, error) {
	const op = "storage.MarkOrderPaid"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE orders
			  SET razorpay_payment_id = $1,
			      razorpay_signature = $2,
			      status = 'paid',
			      artwork_id = COALESCE($3, artwork_id)
			  WHERE razorpay_order_id = $4
			  RETURNING id, razorpay_order_id, razorpay_payment_id, razorpay_signature,
			      amount, currency, receipt, status, user_id, artwork_id, created_at`
	row := s.DB.QueryRowContext(ctx, query, paymentID, signature, artworkID, razorpayOrderID)
	order, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// ListOrdersByUser возвращает заказы пользователя, новые первыми.
func (s *Storage) ListOrdersByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	const op = "storage.ListOrdersByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := orderSelect + ` WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

const orderSelect = `SELECT id, razorpay_order_id, razorpay_payment_id, razorpay_signature,
	      amount, currency, receipt, status, user_id, artwork_id, created_at
	  FROM orders`

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}
	var paymentID, signature, receipt, artworkID sql.NullString
	if err := row.Scan(&order.ID, &order.RazorpayOrderID, &paymentID, &signature,
		&order.Amount, &order.Currency, &receipt, &order.Status,
		&order.UserID, &artworkID, &order.CreatedAt); err != nil {
		return nil, err
	}
	if paymentID.Valid {
		order.RazorpayPaymentID = paymentID.String
	}
	if signature.Valid {
		order.RazorpaySignature = signature.String
	}
	if receipt.Valid {
		order.Receipt = receipt.String
	}
	if artworkID.Valid {
		order.ArtworkID = &artworkID.String
	}
	return order, nil
}
