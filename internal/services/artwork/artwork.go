// Package artwork содержит логику бизнес-уровня для каталога работ:
// загрузку с классификацией, постраничные списки и чтение.
package artwork

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/artechoes/artechoes/internal/lib/sl"
	"github.com/artechoes/artechoes/internal/models"
)

// ErrArtworkNotFound возвращается, когда работы с таким ID нет.
var ErrArtworkNotFound = errors.New("artwork not found")

// listTTL время жизни закэшированной страницы списка.
const listTTL = time.Minute

// cacheKeyPrefix префикс ключей страниц списка в Redis.
const cacheKeyPrefix = "artworks:page:"

// Repository описывает контракт для работы с каталогом в базе данных.
type Repository interface {
	CreateArtwork(ctx context.Context, artwork *models.Artwork) (string, error)
	GetArtwork(ctx context.Context, id string) (*models.Artwork, error)
	ListArtworks(ctx context.Context, limit, offset int) ([]*models.Artwork, error)
	CountArtworks(ctx context.Context) (int, error)
	ListArtworksByUser(ctx context.Context, userID string) ([]*models.Artwork, error)
}

// Cache хранит сериализованные страницы списка.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Classifier определяет категорию изображения по его файлу.
type Classifier interface {
	Classify(ctx context.Context, imagePath string) (string, error)
}

// Service реализует операции каталога.
type Service struct {
	log        *slog.Logger
	repo       Repository
	cache      Cache
	classifier Classifier
	uploadsDir string
}

// New создает новый экземпляр Service.
func New(log *slog.Logger, repo Repository, cache Cache, classifier Classifier, uploadsDir string) *Service {
	return &Service{
		log:        log,
		repo:       repo,
		cache:      cache,
		classifier: classifier,
		uploadsDir: uploadsDir,
	}
}

// Upload проводит загруженный файл через классификацию и сохраняет работу.
// Возвращает созданную запись и метку категории, если запрашивалась
// автоклассификация. Отказ классификатора и отказ переноса файла не
// прерывают сохранение.
func (s *Service) Upload(ctx context.Context, req models.UploadRequest) (*models.Artwork, string, error) {
	const op = "artwork.Upload"

	categories := req.Categories
	categorizedAs := ""
	targetCategory := ""

	if containsAuto(categories) {
		label, err := s.classifier.Classify(ctx, req.TempPath)
		if err != nil {
			s.log.Warn("classification failed, falling back",
				slog.String("op", op), sl.Err(err))
			categories = dropAuto(categories)
			if len(categories) == 0 {
				categories = []string{models.FallbackCategory}
			}
			categorizedAs = categories[0]
		} else {
			// метка дописывается в конец списка и задаёт каталог хранения
			categories = append(dropAuto(categories), label)
			categorizedAs = label
		}
		targetCategory = categorizedAs
	}

	if len(categories) == 0 {
		categories = []string{models.FallbackCategory}
	}
	if targetCategory == "" {
		targetCategory = categories[0]
	}
	finalPath := s.moveToCategory(req.TempPath, targetCategory, op)

	artwork := models.Artwork{
		Title:       req.Title,
		Artist:      req.Artist,
		Categories:  categories,
		Description: req.Description,
		Price:       req.Price,
		Tags:        req.Tags,
		FilePath:    filepath.ToSlash(finalPath),
		UserID:      req.UserID,
	}
	id, err := s.repo.CreateArtwork(ctx, &artwork)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	artwork.ID = id

	if err := s.cache.InvalidatePrefix(ctx, cacheKeyPrefix); err != nil {
		s.log.Warn("failed to invalidate listing cache", slog.String("op", op), sl.Err(err))
	}

	return &artwork, categorizedAs, nil
}

// List возвращает страницу каталога, по возможности из кэша.
func (s *Service) List(ctx context.Context, page, limit int) (*models.ArtworkPage, error) {
	const op = "artwork.List"

	key := fmt.Sprintf("%s%d:limit:%d", cacheKeyPrefix, page, limit)
	var cached models.ArtworkPage
	if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.log.Warn("listing cache read failed", slog.String("op", op), sl.Err(err))
	} else if ok {
		return &cached, nil
	}

	total, err := s.repo.CountArtworks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	artworks, err := s.repo.ListArtworks(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	normalizePaths(artworks)

	result := &models.ArtworkPage{
		Total:    total,
		Page:     page,
		Pages:    (total + limit - 1) / limit,
		Artworks: artworks,
	}
	if err := s.cache.Set(ctx, key, result, listTTL); err != nil {
		s.log.Warn("listing cache write failed", slog.String("op", op), sl.Err(err))
	}
	return result, nil
}

// Read возвращает одну работу или ErrArtworkNotFound.
func (s *Service) Read(ctx context.Context, id string) (*models.Artwork, error) {
	const op = "artwork.Read"
	artwork, err := s.repo.GetArtwork(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtworkNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	artwork.FilePath = filepath.ToSlash(artwork.FilePath)
	return artwork, nil
}

// ListByUser возвращает работы одного автора, новые первыми.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*models.Artwork, error) {
	const op = "artwork.ListByUser"
	artworks, err := s.repo.ListArtworksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	normalizePaths(artworks)
	return artworks, nil
}

// moveToCategory переносит файл в подкаталог категории. Отказ переноса
// оставляет файл на прежнем месте.
func (s *Service) moveToCategory(tempPath, category, op string) string {
	destDir := filepath.Join(s.uploadsDir, category)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		s.log.Warn("failed to create category dir", slog.String("op", op), sl.Err(err))
		return tempPath
	}
	destPath := filepath.Join(destDir, filepath.Base(tempPath))
	if err := os.Rename(tempPath, destPath); err != nil {
		s.log.Warn("failed to move file into category dir", slog.String("op", op), sl.Err(err))
		return tempPath
	}
	return destPath
}

func normalizePaths(artworks []*models.Artwork) {
	for _, a := range artworks {
		a.FilePath = filepath.ToSlash(a.FilePath)
	}
}

func containsAuto(categories []string) bool {
	for _, c := range categories {
		if c == models.AutoCategory {
			return true
		}
	}
	return false
}

func dropAuto(categories []string) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if c != models.AutoCategory {
			out = append(out, c)
		}
	}
	return out
}
