package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/artechoes/artechoes/internal/models"
)

type UploadServiceMock struct {
	mock.Mock
}

func (m *UploadServiceMock) Upload(ctx context.Context, req models.UploadRequest) (*models.Artwork, string, error) {
	args := m.Called(ctx, req)
	art, _ := args.Get(0).(*models.Artwork)
	return art, args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

// buildForm собирает multipart-форму загрузки; file=nil опускает файл.
func buildForm(t *testing.T, file []byte, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if file != nil {
		part, err := writer.CreateFormFile("artwork", "sunset.jpg")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	for k, v := range values {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func doRequest(t *testing.T, handler *Handler, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/upload/classify", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestClassifyHandler_Validation(t *testing.T) {
	tests := []struct {
		name      string
		file      []byte
		values    map[string]string
		wantError string
	}{
		{
			name:      "missing file",
			file:      nil,
			values:    map[string]string{"title": "Sunset", "userId": "uid-1", "categories": `["Auto"]`},
			wantError: "No file uploaded",
		},
		{
			name:      "missing title",
			file:      []byte("jpeg"),
			values:    map[string]string{"userId": "uid-1", "categories": `["Auto"]`},
			wantError: "Title is required",
		},
		{
			name:      "missing userId",
			file:      []byte("jpeg"),
			values:    map[string]string{"title": "Sunset", "categories": `["Auto"]`},
			wantError: "userId is required",
		},
		{
			name:      "missing categories",
			file:      []byte("jpeg"),
			values:    map[string]string{"title": "Sunset", "userId": "uid-1"},
			wantError: "At least one category is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(UploadServiceMock)
			handler := New(newNoopLogger(), serviceMock, t.TempDir())

			body, contentType := buildForm(t, tt.file, tt.values)
			rec, resp := doRequest(t, handler, body, contentType)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantError, resp["error"])
			serviceMock.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
		})
	}
}

func TestClassifyHandler_Success(t *testing.T) {
	serviceMock := new(UploadServiceMock)
	serviceMock.On("Upload", mock.Anything, mock.MatchedBy(func(req models.UploadRequest) bool {
		return req.Title == "Sunset" && req.UserID == "uid-1" &&
			assert.ObjectsAreEqual([]string{"Auto"}, req.Categories) && req.TempPath != ""
	})).Return(&models.Artwork{ID: "a1", Title: "Sunset"}, "Impressionism", nil).Once()

	handler := New(newNoopLogger(), serviceMock, t.TempDir())

	body, contentType := buildForm(t, []byte("jpeg"), map[string]string{
		"title":      "Sunset",
		"userId":     "uid-1",
		"categories": `["Auto"]`,
		"price":      "149.99",
	})
	rec, resp := doRequest(t, handler, body, contentType)

	assert.Equal(t, http.StatusCreated, rec.Code)

	data := resp["data"].(map[string]any)
	assert.Equal(t, `Artwork uploaded successfully and categorized as "Impressionism"`, data["message"])
	assert.Equal(t, "Impressionism", data["categorizedAs"])
	serviceMock.AssertExpectations(t)
}

func TestClassifyHandler_NoAutoMessage(t *testing.T) {
	serviceMock := new(UploadServiceMock)
	serviceMock.On("Upload", mock.Anything, mock.Anything).
		Return(&models.Artwork{ID: "a2", Title: "Still Life"}, "", nil).Once()

	handler := New(newNoopLogger(), serviceMock, t.TempDir())

	body, contentType := buildForm(t, []byte("jpeg"), map[string]string{
		"title":      "Still Life",
		"userId":     "uid-1",
		"categories": `["Realism"]`,
	})
	rec, resp := doRequest(t, handler, body, contentType)

	assert.Equal(t, http.StatusCreated, rec.Code)

	data := resp["data"].(map[string]any)
	assert.Equal(t, "Artwork uploaded successfully", data["message"])
}
