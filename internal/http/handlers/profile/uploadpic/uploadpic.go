// Package uploadpic реализует HTTP-обработчик загрузки картинки профиля.
package uploadpic

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/artechoes/artechoes/internal/http/middlewarectx"
	"github.com/artechoes/artechoes/internal/http/response"
	"github.com/artechoes/artechoes/internal/lib/sl"
	"github.com/artechoes/artechoes/internal/models"
)

// maxPicSize предел размера картинки профиля.
const maxPicSize = 20 << 20

// Handler обрабатывает HTTP-запросы загрузки картинки профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики профиля.
type Service interface {
	UploadPicture(ctx context.Context, userID, filename string, file io.Reader) (*models.Profile, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Загрузка картинки профиля
// @Description Сохраняет изображение и записывает его путь в профиль.
// @Tags Profile
// @Accept  multipart/form-data
// @Produce  json
// @Param profilePic formData file true "Файл изображения"
// @Success 200 {object} map[string]any "Путь сохраненной картинки"
// @Failure 400 {object} response.ErrorResponse "Файл не передан или не изображение"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сохранения"
// @Router /api/profile/upload [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.uploadpic"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.GetUserID(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Unauthorized"))
		return
	}

	if err := r.ParseMultipartForm(maxPicSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("No valid image uploaded"))
		return
	}

	file, header, err := r.FormFile("profilePic")
	if err != nil {
		log.Error("profilePic file missing", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("No valid image uploaded"))
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		log.Error("rejected non-image upload", slog.String("content_type", header.Header.Get("Content-Type")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("No valid image uploaded"))
		return
	}

	prof, err := h.service.UploadPicture(r.Context(), userID, header.Filename, file)
	if err != nil {
		log.Error("failed to store profile picture", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Image upload failed"))
		return
	}

	log.Info("profile picture uploaded")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message":    "Image uploaded successfully",
		"profilePic": prof.ProfilePic,
	}))
}
