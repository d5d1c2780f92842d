// Package transfer реализует HTTP-обработчик переноса стиля.
//
// Ответы об ошибке несут и сообщение, и логи подпроцесса, чтобы клиент
// мог показать их пользователю; успешный ответ — готовое PNG-изображение.
package transfer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/artechoes/artechoes/internal/lib/sl"
	"github.com/artechoes/artechoes/internal/services/styletransfer"
)

// maxImageSize предел размера каждого из двух изображений.
const maxImageSize = 10 << 20

// Handler обрабатывает HTTP-запросы переноса стиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс конвейера переноса стиля.
type Service interface {
	Transfer(ctx context.Context, content, style io.Reader) (string, []string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Перенос стиля
// @Description Применяет стиль одного изображения к другому и возвращает PNG.
// @Tags StyleTransfer
// @Accept  multipart/form-data
// @Produce  png
// @Param content formData file true "Изображение-содержимое"
// @Param style formData file true "Изображение-стиль"
// @Success 200 {file} binary "Результат переноса"
// @Failure 500 {object} map[string]any "Ошибка конвейера с логами подпроцесса"
// @Router /api/style-transfer [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.styletransfer.transfer"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(2 * maxImageSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, map[string]any{
			"error": "Both content and style images are required",
			"logs":  []string{},
		})
		return
	}

	content, _, contentErr := r.FormFile("content")
	style, _, styleErr := r.FormFile("style")
	if contentErr != nil || styleErr != nil {
		log.Error("content or style file missing")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, map[string]any{
			"error": "Both content and style images are required",
			"logs":  []string{},
		})
		return
	}
	defer content.Close()
	defer style.Close()

	outputPath, logs, err := h.service.Transfer(r.Context(), content, style)
	if err != nil {
		var perr *styletransfer.PipelineError
		if errors.As(err, &perr) {
			log.Error("style transfer failed", slog.String("error", perr.Message))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, map[string]any{
				"error": perr.Message,
				"logs":  perr.Logs,
			})
			return
		}
		log.Error("style transfer failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, map[string]any{
			"error": "Style transfer failed",
			"logs":  logs,
		})
		return
	}

	image, err := os.ReadFile(outputPath)
	if err != nil {
		log.Error("failed to read output image", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, map[string]any{
			"error": "Style transfer produced no output",
			"logs":  logs,
		})
		return
	}

	log.Info("style transfer finished", slog.Int("log_lines", len(logs)))
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(image)
}
