package artwork

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/artechoes/artechoes/internal/models"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateArtwork(ctx context.Context, artwork *models.Artwork) (string, error) {
	args := m.Called(ctx, artwork)
	return args.String(0), args.Error(1)
}

func (m *mockRepo) GetArtwork(ctx context.Context, id string) (*models.Artwork, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artwork), args.Error(1)
}

func (m *mockRepo) ListArtworks(ctx context.Context, limit, offset int) ([]*models.Artwork, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Artwork), args.Error(1)
}

func (m *mockRepo) CountArtworks(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRepo) ListArtworksByUser(ctx context.Context, userID string) ([]*models.Artwork, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Artwork), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *mockCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

type mockClassifier struct {
	mock.Mock
}

func (m *mockClassifier) Classify(ctx context.Context, imagePath string) (string, error) {
	args := m.Called(ctx, imagePath)
	return args.String(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tempUpload(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("%d-art.jpg", time.Now().UnixMilli()))
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0o644))
	return path
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("Auto заменяется меткой классификатора", func(t *testing.T) {
		uploads := t.TempDir()
		tempPath := tempUpload(t, uploads)

		cls := new(mockClassifier)
		cls.On("Classify", ctx, tempPath).Return("Impressionism", nil)

		repo := new(mockRepo)
		repo.On("CreateArtwork", ctx, mock.MatchedBy(func(a *models.Artwork) bool {
			return assert.ObjectsAreEqual([]string{"Impressionism"}, a.Categories)
		})).Return("art-1", nil)

		cache := new(mockCache)
		cache.On("InvalidatePrefix", ctx, "artworks:page:").Return(nil)

		svc := New(discardLogger(), repo, cache, cls, uploads)
		artwork, label, err := svc.Upload(ctx, models.UploadRequest{
			Title:      "Sunset",
			Artist:     "Alice",
			Categories: []string{"Auto"},
			UserID:     "uid-1",
			TempPath:   tempPath,
		})

		require.NoError(t, err)
		assert.Equal(t, "Impressionism", label)
		assert.Equal(t, []string{"Impressionism"}, artwork.Categories)
		// файл переехал в подкаталог категории
		assert.FileExists(t, filepath.Join(uploads, "Impressionism", filepath.Base(tempPath)))
		assert.NotContains(t, artwork.FilePath, `\`)
		cache.AssertExpectations(t)
	})

	t.Run("метка задаёт каталог хранения и при Auto не на первом месте", func(t *testing.T) {
		uploads := t.TempDir()
		tempPath := tempUpload(t, uploads)

		cls := new(mockClassifier)
		cls.On("Classify", ctx, tempPath).Return("Impressionism", nil)

		repo := new(mockRepo)
		repo.On("CreateArtwork", ctx, mock.MatchedBy(func(a *models.Artwork) bool {
			return assert.ObjectsAreEqual([]string{"Portrait", "Impressionism"}, a.Categories)
		})).Return("art-6", nil)

		cache := new(mockCache)
		cache.On("InvalidatePrefix", ctx, "artworks:page:").Return(nil)

		svc := New(discardLogger(), repo, cache, cls, uploads)
		artwork, label, err := svc.Upload(ctx, models.UploadRequest{
			Title:      "Portrait of Anna",
			Categories: []string{"Portrait", "Auto"},
			UserID:     "uid-1",
			TempPath:   tempPath,
		})

		require.NoError(t, err)
		assert.Equal(t, "Impressionism", label)
		assert.Equal(t, []string{"Portrait", "Impressionism"}, artwork.Categories)
		// файл лежит в каталоге метки, а не первой ручной категории
		assert.FileExists(t, filepath.Join(uploads, "Impressionism", filepath.Base(tempPath)))
		assert.NoFileExists(t, filepath.Join(uploads, "Portrait", filepath.Base(tempPath)))
		repo.AssertExpectations(t)
	})

	t.Run("отказ классификатора при единственной категории Auto дает Other", func(t *testing.T) {
		uploads := t.TempDir()
		tempPath := tempUpload(t, uploads)

		cls := new(mockClassifier)
		cls.On("Classify", ctx, tempPath).Return("", errors.New("exit status 1"))

		repo := new(mockRepo)
		repo.On("CreateArtwork", ctx, mock.MatchedBy(func(a *models.Artwork) bool {
			return assert.ObjectsAreEqual([]string{"Other"}, a.Categories)
		})).Return("art-2", nil)

		cache := new(mockCache)
		cache.On("InvalidatePrefix", ctx, "artworks:page:").Return(nil)

		svc := New(discardLogger(), repo, cache, cls, uploads)
		artwork, label, err := svc.Upload(ctx, models.UploadRequest{
			Title:      "Untitled",
			Categories: []string{"Auto"},
			UserID:     "uid-1",
			TempPath:   tempPath,
		})

		require.NoError(t, err)
		assert.Equal(t, "Other", label)
		assert.Equal(t, []string{"Other"}, artwork.Categories)
	})

	t.Run("отказ классификатора сохраняет ручные категории", func(t *testing.T) {
		uploads := t.TempDir()
		tempPath := tempUpload(t, uploads)

		cls := new(mockClassifier)
		cls.On("Classify", ctx, tempPath).Return("", errors.New("exit status 1"))

		repo := new(mockRepo)
		repo.On("CreateArtwork", ctx, mock.MatchedBy(func(a *models.Artwork) bool {
			return assert.ObjectsAreEqual([]string{"Portrait"}, a.Categories)
		})).Return("art-3", nil)

		cache := new(mockCache)
		cache.On("InvalidatePrefix", ctx, "artworks:page:").Return(nil)

		svc := New(discardLogger(), repo, cache, cls, uploads)
		artwork, _, err := svc.Upload(ctx, models.UploadRequest{
			Title:      "Untitled",
			Categories: []string{"Auto", "Portrait"},
			UserID:     "uid-1",
			TempPath:   tempPath,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"Portrait"}, artwork.Categories)
	})

	t.Run("без Auto классификатор не вызывается", func(t *testing.T) {
		uploads := t.TempDir()
		tempPath := tempUpload(t, uploads)

		cls := new(mockClassifier)

		repo := new(mockRepo)
		repo.On("CreateArtwork", ctx, mock.Anything).Return("art-4", nil)

		cache := new(mockCache)
		cache.On("InvalidatePrefix", ctx, "artworks:page:").Return(nil)

		svc := New(discardLogger(), repo, cache, cls, uploads)
		_, label, err := svc.Upload(ctx, models.UploadRequest{
			Title:      "Still Life",
			Categories: []string{"Realism"},
			UserID:     "uid-1",
			TempPath:   tempPath,
		})

		require.NoError(t, err)
		assert.Empty(t, label)
		cls.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
	})

	t.Run("отказ переноса файла не мешает сохранению", func(t *testing.T) {
		uploads := t.TempDir()
		tempPath := filepath.Join(uploads, "missing.jpg") // файла нет, rename упадет

		repo := new(mockRepo)
		repo.On("CreateArtwork", ctx, mock.MatchedBy(func(a *models.Artwork) bool {
			return a.FilePath == filepath.ToSlash(tempPath)
		})).Return("art-5", nil)

		cache := new(mockCache)
		cache.On("InvalidatePrefix", ctx, "artworks:page:").Return(nil)

		svc := New(discardLogger(), repo, cache, new(mockClassifier), uploads)
		artwork, _, err := svc.Upload(ctx, models.UploadRequest{
			Title:      "Ghost",
			Categories: []string{"Realism"},
			UserID:     "uid-1",
			TempPath:   tempPath,
		})

		require.NoError(t, err)
		assert.Equal(t, filepath.ToSlash(tempPath), artwork.FilePath)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("страница из базы попадает в кэш", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("CountArtworks", ctx).Return(51, nil)
		repo.On("ListArtworks", ctx, 25, 0).Return([]*models.Artwork{
			{ID: "a1", FilePath: `uploads\Other\1.jpg`},
		}, nil)

		cache := new(mockCache)
		cache.On("Get", ctx, "artworks:page:1:limit:25", mock.Anything).Return(false, nil)
		cache.On("Set", ctx, "artworks:page:1:limit:25", mock.Anything, time.Minute).Return(nil)

		svc := New(discardLogger(), repo, cache, new(mockClassifier), "uploads")
		page, err := svc.List(ctx, 1, 25)

		require.NoError(t, err)
		assert.Equal(t, 51, page.Total)
		assert.Equal(t, 3, page.Pages)
		assert.Equal(t, "uploads/Other/1.jpg", page.Artworks[0].FilePath)
		cache.AssertExpectations(t)
	})

	t.Run("попадание в кэш не ходит в базу", func(t *testing.T) {
		repo := new(mockRepo)
		cache := new(mockCache)
		cache.On("Get", ctx, "artworks:page:2:limit:10", mock.Anything).Return(true, nil)

		svc := New(discardLogger(), repo, cache, new(mockClassifier), "uploads")
		_, err := svc.List(ctx, 2, 10)

		require.NoError(t, err)
		repo.AssertNotCalled(t, "CountArtworks", mock.Anything)
	})
}

func TestRead(t *testing.T) {
	ctx := context.Background()

	t.Run("существующая работа", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetArtwork", ctx, "a1").Return(&models.Artwork{ID: "a1", FilePath: `uploads\x.jpg`}, nil)

		svc := New(discardLogger(), repo, new(mockCache), new(mockClassifier), "uploads")
		artwork, err := svc.Read(ctx, "a1")

		require.NoError(t, err)
		assert.Equal(t, "uploads/x.jpg", artwork.FilePath)
	})

	t.Run("отсутствующая работа", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetArtwork", ctx, "ghost").Return(nil, fmt.Errorf("storage.GetArtwork: %w", sql.ErrNoRows))

		svc := New(discardLogger(), repo, new(mockCache), new(mockClassifier), "uploads")
		_, err := svc.Read(ctx, "ghost")

		assert.ErrorIs(t, err, ErrArtworkNotFound)
	})
}
