// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode - код ошибки PostgreSQL для нарушения уникальности.
const uniqueViolationCode = "23505"

// DB объединяет операции пула, используемые репозиториями. Ему удовлетворяют
// как *pgxpool.Pool, так и мок pgxmock в тестах.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	db DB
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(db DB) *RepositoryFactory {
	return &RepositoryFactory{db: db}
}

// NoteRepository возвращает репозиторий для работы с заметками.
func (f *RepositoryFactory) NoteRepository() *NoteRepository {
	return NewNoteRepository(f.db)
}

// UserRepository возвращает репозиторий для чтения пользователей.
func (f *RepositoryFactory) UserRepository() *UserRepository {
	return NewUserRepository(f.db)
}

// isUniqueViolation сообщает, является ли ошибка нарушением уникального индекса.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
