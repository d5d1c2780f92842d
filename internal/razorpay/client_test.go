package razorpay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		response   string
		wantErr    bool
		wantID     string
	}{
		{
			name:       "успешное создание заказа",
			statusCode: http.StatusOK,
			response:   `{"id":"order_abc123","amount":50000,"currency":"INR","receipt":"rcpt_1","status":"created","created_at":1700000000}`,
			wantErr:    false,
			wantID:     "order_abc123",
		},
		{
			name:       "шлюз вернул ошибку авторизации",
			statusCode: http.StatusUnauthorized,
			response:   `{"error":{"code":"BAD_REQUEST_ERROR"}}`,
			wantErr:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/orders", r.URL.Path)

				wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("key_id:key_secret"))
				assert.Equal(t, wantAuth, r.Header.Get("Authorization"))

				var body CreateOrderRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, int64(50000), body.Amount)

				w.WriteHeader(tc.statusCode)
				_, _ = w.Write([]byte(tc.response))
			}))
			defer srv.Close()

			client := NewClient("key_id", "key_secret", srv.URL)
			resp, err := client.CreateOrder(context.Background(), CreateOrderRequest{
				Amount:   50000,
				Currency: "INR",
				Receipt:  "rcpt_1",
			})

			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, resp.ID)
			assert.Equal(t, int64(50000), resp.Amount)
		})
	}
}
