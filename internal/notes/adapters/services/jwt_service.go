// Package services provides implementations of service interfaces.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"technotes/internal/notes/domain/entities"
	"technotes/internal/notes/ports/services"
	"technotes/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodVerifyToken  = "VerifyAccessToken"
	msgVerifyingToken  = "verifying token"
	msgTokenVerified   = "token verified successfully"
	msgInvalidToken    = "invalid token format"
	msgTokenExpired    = "token has expired"
	msgErrParsingToken = "error parsing token" //nolint:gosec
	errCtxVerifying    = "verifying token"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// UserInfo - объект личности, вложенный в полезную нагрузку токена.
type UserInfo struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	UserInfo UserInfo `json:"UserInfo"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	secretKey []byte
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string) services.TokenService {
	return &ServiceJWT{
		secretKey: []byte(secretKey),
	}
}

// VerifyAccessToken проверяет подпись и срок действия JWT токена и
// возвращает личность вызывающего из полезной нагрузки.
func (s *ServiceJWT) VerifyAccessToken(ctx context.Context, tokenString string) (*entities.AuthClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerifyToken))
	log.Debug(ctx, msgVerifyingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxVerifying, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, msgErrParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifying, services.ErrInvalidJWTToken)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxVerifying, services.ErrInvalidJWTToken)
	}

	if claims.UserInfo.Username == "" {
		log.Debug(ctx, "username claim is empty")
		return nil, fmt.Errorf("%s: %w", errCtxVerifying, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenVerified, zap.String("username", claims.UserInfo.Username))
	return &entities.AuthClaims{
		Username: claims.UserInfo.Username,
		Roles:    claims.UserInfo.Roles,
	}, nil
}
