package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"technotes/internal/notes/domain/entities"
	"technotes/pkg/logger"
)

// UserRepository реализует доступ только для чтения к пользователям.
type UserRepository struct {
	db DB
}

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID получает пользователя по ID. Возвращает nil, nil при отсутствии.
func (r *UserRepository) FindByID(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.FindByID"))
	log.Debug(ctx, "getting user", zap.String("userID", userID))

	var user entities.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, roles, password_hash FROM users WHERE id = $1`,
		userID,
	).Scan(&user.ID, &user.Username, &user.Roles, &user.PasswordHash)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("userID", userID))
			return nil, nil
		}
		log.Error(ctx, "failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
