package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/artechoes/artechoes/internal/models"
)

// GetOrCreateProfile возвращает профиль пользователя, создавая пустой
// при первом обращении.
func (s *Storage) GetOrCreateProfile(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "storage.GetOrCreateProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	profile, err := s.getProfile(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO profiles (user_id) VALUES ($1)
			  ON CONFLICT (user_id) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	profile, err = s.getProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}

// UpdateProfile обновляет bio и/или путь к картинке, фиксируя время правки.
// При отсутствии профиля возвращает обёрнутый sql.ErrNoRows.
func (s *Storage) UpdateProfile(ctx context.Context, userID string, bio, profilePic *string) (*models.Profile, error) {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE profiles
			  SET bio = COALESCE($1, bio),
			      profile_pic = COALESCE($2, profile_pic),
			      last_edit = NOW()
			  WHERE user_id = $3
			  RETURNING user_id, bio, profile_pic, last_edit`
	row := s.DB.QueryRowContext(ctx, query, bio, profilePic, userID)
	profile, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}

// UpsertProfilePic записывает путь к картинке профиля, создавая профиль
// при необходимости.
func (s *Storage) UpsertProfilePic(ctx context.Context, userID, profilePic string) (*models.Profile, error) {
	const op = "storage.UpsertProfilePic"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO profiles (user_id, profile_pic)
			  VALUES ($1, $2)
			  ON CONFLICT (user_id) DO UPDATE SET profile_pic = EXCLUDED.profile_pic
			  RETURNING user_id, bio, profile_pic, last_edit`
	row := s.DB.QueryRowContext(ctx, query, userID, profilePic)
	profile, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}

func (s *Storage) getProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query := `SELECT user_id, bio, profile_pic, last_edit FROM profiles WHERE user_id = $1`
	return scanProfile(s.DB.QueryRowContext(ctx, query, userID))
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	profile := &models.Profile{}
	var lastEdit sql.NullTime
	if err := row.Scan(&profile.UserID, &profile.Bio, &profile.ProfilePic, &lastEdit); err != nil {
		return nil, err
	}
	if lastEdit.Valid {
		profile.LastEdit = &lastEdit.Time
	}
	return profile, nil
}
