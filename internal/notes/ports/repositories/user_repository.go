package repositories

import (
	"context"

	"technotes/internal/notes/domain/entities"
)

// UserRepository определяет доступ только для чтения к пользователям.
type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*entities.User, error)
}
