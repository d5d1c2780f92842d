package ordercreate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/artechoes/artechoes/internal/http/middlewarectx"
	"github.com/artechoes/artechoes/internal/models"
	"github.com/artechoes/artechoes/internal/razorpay"
)

type PaymentServiceMock struct {
	mock.Mock
}

func (m *PaymentServiceMock) CreateOrder(ctx context.Context, userID string, req models.DummyOrderCreate) (*razorpay.CreateOrderResponse, error) {
	args := m.Called(ctx, userID, req)
	resp, _ := args.Get(0).(*razorpay.CreateOrderResponse)
	return resp, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestOrderCreateHandler_ServeHTTP(t *testing.T) {
	valid := models.DummyOrderCreate{Amount: 50000}
	gwOrder := &razorpay.CreateOrderResponse{ID: "order_1", Amount: 50000, Currency: "INR", Status: "created"}

	tests := []struct {
		name           string
		requestBody    interface{}
		withUser       bool
		mockOrder      *razorpay.CreateOrderResponse
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "valid order",
			requestBody:    valid,
			withUser:       true,
			mockOrder:      gwOrder,
			mockCalled:     true,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "unauthorized without user in context",
			requestBody:    valid,
			withUser:       false,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "Unauthorized",
		},
		{
			name:           "gateway failure",
			requestBody:    valid,
			withUser:       true,
			mockErr:        errors.New("unexpected status: 502"),
			mockCalled:     true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "Order creation failed",
		},
		{
			name:           "zero amount rejected",
			requestBody:    models.DummyOrderCreate{Amount: 0},
			withUser:       true,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(PaymentServiceMock)
			if tt.mockCalled {
				serviceMock.On("CreateOrder", mock.Anything, "uid-1", tt.requestBody.(models.DummyOrderCreate)).
					Return(tt.mockOrder, tt.mockErr).Once()
			}

			handler := New(newNoopLogger(), serviceMock)

			bodyBytes, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/payments/orders", bytes.NewReader(bodyBytes))
			if tt.withUser {
				ctx := context.WithValue(req.Context(), middlewarectx.UserID, "uid-1")
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp["error"])
			} else if tt.wantStatusCode == http.StatusCreated {
				data := resp["data"].(map[string]any)
				assert.Equal(t, "order_1", data["id"])
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
