package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/artechoes/artechoes/internal/models"
)

// Категории и теги хранятся в jsonb: наборы строк переменной длины,
// по которым не строятся реляционные связи.

// CreateArtwork сохраняет новую работу и возвращает её идентификатор.
func (s *Storage) CreateArtwork(ctx context.Context, art *models.Artwork) (string, error) {
	const op = "storage.CreateArtwork"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	categories, err := json.Marshal(art.Categories)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	tags, err := json.Marshal(art.Tags)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var newID string
	query := `INSERT INTO artworks (title, artist, categories, description, price, tags, file_path, user_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		art.Title, art.Artist, categories, art.Description, art.Price, tags,
		art.FilePath, art.UserID).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetArtwork возвращает работу по идентификатору.
// При отсутствии записи возвращает обёрнутый sql.ErrNoRows.
func (s *Storage) GetArtwork(ctx context.Context, id string) (*models.Artwork, error) {
	const op = "storage.GetArtwork"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := artworkSelect + ` WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)
	art, err := scanArtwork(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return art, nil
}

// ListArtworks возвращает страницу работ, новые первыми.
func (s *Storage) ListArtworks(ctx context.Context, limit, offset int) ([]*models.Artwork, error) {
	const op = "storage.ListArtworks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := artworkSelect + ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return collectArtworks(op, rows)
}

// CountArtworks возвращает общее число работ.
func (s *Storage) CountArtworks(ctx context.Context) (int, error) {
	const op = "storage.CountArtworks"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM artworks`).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// ListArtworksByUser возвращает все работы пользователя, новые первыми.
func (s *Storage) ListArtworksByUser(ctx context.Context, userID string) ([]*models.Artwork, error) {
	const op = "storage.ListArtworksByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := artworkSelect + ` WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return collectArtworks(op, rows)
}

const artworkSelect = `SELECT id, title, artist, categories, description, price, tags, file_path, user_id, created_at
	  FROM artworks`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtwork(row rowScanner) (*models.Artwork, error) {
	art := &models.Artwork{}
	var categories, tags []byte
	var description sql.NullString
	if err := row.Scan(&art.ID, &art.Title, &art.Artist, &categories, &description,
		&art.Price, &tags, &art.FilePath, &art.UserID, &art.CreatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		art.Description = description.String
	}
	if err := json.Unmarshal(categories, &art.Categories); err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &art.Tags); err != nil {
			return nil, err
		}
	}
	return art, nil
}

func collectArtworks(op string, rows *sql.Rows) ([]*models.Artwork, error) {
	var result []*models.Artwork
	for rows.Next() {
		art, err := scanArtwork(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, art)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
