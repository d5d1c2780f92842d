// Package classify реализует HTTP-обработчик загрузки работы
// с автоклассификацией.
//
// Файл принимается из multipart-поля "artwork" и сохраняется на диск
// под именем с отметкой времени; дальше конвейер сервиса решает,
// запускать ли классификатор, и в какой каталог переносить файл.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/artechoes/artechoes/internal/http/response"
	"github.com/artechoes/artechoes/internal/lib/sl"
	"github.com/artechoes/artechoes/internal/models"
)

// maxUploadSize предел размера файла работы.
const maxUploadSize = 50 << 20

// Handler обрабатывает HTTP-запросы загрузки работ.
type Handler struct {
	log        *slog.Logger
	service    Service
	uploadsDir string
}

// Service описывает интерфейс конвейера загрузки.
type Service interface {
	Upload(ctx context.Context, req models.UploadRequest) (*models.Artwork, string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, uploadsDir string) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		uploadsDir: uploadsDir,
	}
}

// ServeHTTP godoc
// @Summary Загрузка работы
// @Description Принимает изображение и метаданные; категория "Auto" делегируется классификатору.
// @Tags Upload
// @Accept  multipart/form-data
// @Produce  json
// @Param artwork formData file true "Файл изображения"
// @Param title formData string true "Название"
// @Param userId formData string true "Идентификатор автора"
// @Param categories formData string true "JSON-массив категорий"
// @Success 201 {object} map[string]any "Работа сохранена"
// @Failure 400 {object} response.ErrorResponse "Не хватает файла или обязательных полей"
// @Failure 500 {object} response.ErrorResponse "Ошибка обработки загрузки"
// @Router /api/upload/classify [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.upload.classify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("No file uploaded"))
		return
	}

	file, header, err := r.FormFile("artwork")
	if err != nil {
		log.Error("artwork file missing", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("No file uploaded"))
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	if title == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Title is required"))
		return
	}
	userID := r.FormValue("userId")
	if userID == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("userId is required"))
		return
	}
	categories := parseJSONList(r.FormValue("categories"))
	if len(categories) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("At least one category is required"))
		return
	}

	artist := r.FormValue("artist")
	if artist == "" {
		artist = "Unknown Artist"
	}
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	tags := parseJSONList(r.FormValue("tags"))

	tempPath, err := h.saveUpload(file, header.Filename)
	if err != nil {
		log.Error("failed to save uploaded file", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Server error while processing upload"))
		return
	}

	artwork, categorizedAs, err := h.service.Upload(r.Context(), models.UploadRequest{
		Title:       title,
		Artist:      artist,
		Categories:  categories,
		Description: r.FormValue("description"),
		Price:       price,
		Tags:        tags,
		UserID:      userID,
		TempPath:    tempPath,
	})
	if err != nil {
		log.Error("upload pipeline failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Server error while processing upload"))
		return
	}

	message := "Artwork uploaded successfully"
	if categorizedAs != "" {
		message = fmt.Sprintf("%s and categorized as %q", message, categorizedAs)
	}

	log.Info("artwork uploaded", slog.String("id", artwork.ID), slog.String("category", categorizedAs))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message":       message,
		"artwork":       artwork,
		"categorizedAs": categorizedAs,
	}))
}

func (h *Handler) saveUpload(file io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(filename))
	path := filepath.Join(h.uploadsDir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return path, nil
}

// parseJSONList разбирает значение формы как JSON-массив строк;
// не-JSON трактуется как одиночное значение.
func parseJSONList(raw string) []string {
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{raw}
	}
	return list
}
