// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки токенов, несущих идентификатор
// пользователя. Токен доступа и токен сброса пароля отличаются только сроком жизни:
// токен сброса выдается на короткий срок и работает как одноразовая «capability».
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken создает токен доступа для пользователя.
	GenerateToken(userID string) (string, error)
	// GenerateResetToken создает короткоживущий токен для сброса пароля.
	GenerateResetToken(userID string) (string, error)
	// ParseToken возвращает *CustomClaims с идентификатором пользователя.
	// Просроченный и испорченный токены неразличимы для вызывающего кода:
	// оба случая возвращают ошибку.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и двух сроков жизни токена.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
	resetTTL  time.Duration
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, tokenTTL, resetTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  tokenTTL,
		resetTTL:  resetTTL,
	}
}
