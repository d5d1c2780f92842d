// Package profile содержит логику бизнес-уровня для профилей авторов.
package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/artechoes/artechoes/internal/models"
)

// ErrProfileNotFound возвращается при обновлении несуществующего профиля.
var ErrProfileNotFound = errors.New("profile not found")

// Repository описывает контракт для работы с профилями в базе данных.
type Repository interface {
	GetOrCreateProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, bio, profilePic *string) (*models.Profile, error)
	UpsertProfilePic(ctx context.Context, userID, profilePic string) (*models.Profile, error)
	ListArtworksByUser(ctx context.Context, userID string) ([]*models.Artwork, error)
}

// Service реализует операции профиля.
type Service struct {
	log            *slog.Logger
	repo           Repository
	profilePicsDir string
}

// New создает новый экземпляр Service.
func New(log *slog.Logger, repo Repository, profilePicsDir string) *Service {
	return &Service{
		log:            log,
		repo:           repo,
		profilePicsDir: profilePicsDir,
	}
}

// Get возвращает профиль вместе с работами автора. Отсутствующий профиль
// создается лениво с пустыми полями.
func (s *Service) Get(ctx context.Context, userID string) (*models.ProfileView, error) {
	const op = "profile.Get"

	prof, err := s.repo.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	artworks, err := s.repo.ListArtworksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, a := range artworks {
		a.FilePath = filepath.ToSlash(a.FilePath)
	}
	return &models.ProfileView{Profile: *prof, Artworks: artworks}, nil
}

// Update меняет биографию и/или путь картинки, проставляя last_edit.
func (s *Service) Update(ctx context.Context, userID string, upd models.DummyProfileUpdate) (*models.Profile, error) {
	const op = "profile.Update"

	prof, err := s.repo.UpdateProfile(ctx, userID, upd.Bio, upd.ProfilePic)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return prof, nil
}

// UploadPicture сохраняет картинку профиля на диск и записывает её путь.
func (s *Service) UploadPicture(ctx context.Context, userID, filename string, file io.Reader) (*models.Profile, error) {
	const op = "profile.UploadPicture"

	if err := os.MkdirAll(s.profilePicsDir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(filename))
	dst, err := os.Create(filepath.Join(s.profilePicsDir, name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	picPath := "/uploads/profile-pics/" + name
	prof, err := s.repo.UpsertProfilePic(ctx, userID, picPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return prof, nil
}
