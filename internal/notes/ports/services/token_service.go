// Package services defines service interfaces for the notes service.
package services

import (
	"context"
	"errors"

	"technotes/internal/notes/domain/entities"
)

// TokenService определяет интерфейс для проверки JWT токенов.
type TokenService interface {
	VerifyAccessToken(ctx context.Context, token string) (*entities.AuthClaims, error)
}

// JWTErrors содержит ошибки, связанные с JWT токенами.
var (
	ErrInvalidJWTToken = errors.New("invalid JWT token")
	ErrExpiredJWTToken = errors.New("JWT token has expired")
)
