// Package auth содержит логику бизнес-уровня для регистрации, входа
// и восстановления пароля.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/artechoes/artechoes/internal/lib/jwt"
	"github.com/artechoes/artechoes/internal/lib/mailaddr"
	"github.com/artechoes/artechoes/internal/lib/password"
	"github.com/artechoes/artechoes/internal/models"
)

// Ошибки бизнес-уровня, по которым хэндлеры выбирают статус ответа.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// ExistsUser сообщает, занят ли username или email.
	ExistsUser(ctx context.Context, username, email string) (bool, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByEmail возвращает пользователя по адресу почты.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdatePasswordHash заменяет хэш пароля пользователя.
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
}

// MailPublisher публикует почтовые сообщения в брокер.
type MailPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Service отвечает за регистрацию, авторизацию и восстановление пароля.
type Service struct {
	users       UserRepository
	jwtMaker    jwt.Maker
	mail        MailPublisher
	frontendURL string
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker, mail MailPublisher, frontendURL string) *Service {
	return &Service{
		users:       users,
		jwtMaker:    jwtMaker,
		mail:        mail,
		frontendURL: frontendURL,
	}
}

// Register создает нового пользователя с хэшированием пароля и сразу
// выдает JWT для созданной учетной записи.
// Адрес без символа @ дополняется доменом gmail.com.
func (s *Service) Register(ctx context.Context, username, email, rawPassword string) (string, error) {
	email = mailaddr.Normalize(email)

	exists, err := s.users.ExistsUser(ctx, username, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrUserExists
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", err
	}
	return s.jwtMaker.GenerateToken(uid)
}

// Login проверяет пароль пользователя и генерирует JWT.
// Пользователя ищет по email, а если он не указан — по username.
// Любой сбой поиска и несовпадение пароля сворачиваются в ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, username, rawPassword string) (string, *models.User, error) {
	var user *models.User
	var err error
	if email != "" {
		user, err = s.users.GetUserByEmail(ctx, mailaddr.Normalize(email))
	} else {
		user, err = s.users.GetUserByUsername(ctx, username)
	}
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает ID пользователя и признак валидности.
func (s *Service) ValidateToken(_ context.Context, token string) (string, bool, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", false, ErrInvalidToken
	}
	return claims.UserID, true, nil
}

// ForgotPassword выпускает короткоживущий токен сброса и публикует письмо
// со ссылкой восстановления в очередь отправки.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, mailaddr.Normalize(email))
	if err != nil {
		return ErrUserNotFound
	}

	resetToken, err := s.jwtMaker.GenerateResetToken(user.UID)
	if err != nil {
		return err
	}

	message := models.PasswordResetMail{
		Email:     user.Email,
		Username:  user.Username,
		ResetLink: fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, resetToken),
	}
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return s.mail.Publish("password_reset", body)
}

// ResetPassword проверяет токен сброса и устанавливает новый пароль.
func (s *Service) ResetPassword(ctx context.Context, token, rawPassword string) error {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return ErrInvalidToken
	}
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, claims.UserID, hashed); err != nil {
		return ErrUserNotFound
	}
	return nil
}
