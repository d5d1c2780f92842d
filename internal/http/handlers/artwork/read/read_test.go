package read

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/artechoes/artechoes/internal/models"
	"github.com/artechoes/artechoes/internal/services/artwork"
)

type ArtworkServiceMock struct {
	mock.Mock
}

func (m *ArtworkServiceMock) Read(ctx context.Context, id string) (*models.Artwork, error) {
	args := m.Called(ctx, id)
	art, _ := args.Get(0).(*models.Artwork)
	return art, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestReadHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		mockArtwork    *models.Artwork
		mockErr        error
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "existing artwork",
			id:             "a1",
			mockArtwork:    &models.Artwork{ID: "a1", Title: "Sunset", FilePath: "uploads/Other/1.jpg"},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing artwork",
			id:             "ghost",
			mockErr:        artwork.ErrArtworkNotFound,
			wantStatusCode: http.StatusNotFound,
			wantError:      "Artwork not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ArtworkServiceMock)
			serviceMock.On("Read", mock.Anything, tt.id).Return(tt.mockArtwork, tt.mockErr).Once()

			handler := New(newNoopLogger(), serviceMock)

			req := httptest.NewRequest(http.MethodGet, "/api/artworks/"+tt.id, nil)
			req = withURLParam(req, "id", tt.id)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp["error"])
			} else {
				data := resp["data"].(map[string]any)
				assert.Equal(t, "a1", data["id"])
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
