// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"
	"errors"

	"technotes/internal/notes/domain/entities"
)

// ErrDuplicateTitle возвращается адаптером, когда запись нарушает
// уникальность базовой формы заголовка.
var ErrDuplicateTitle = errors.New("duplicate note title")

// NoteRepository определяет интерфейс для работы с репозиторием заметок.
// Методы поиска возвращают nil, nil при отсутствии записи.
type NoteRepository interface {
	FindAll(ctx context.Context) ([]*entities.Note, error)
	FindByID(ctx context.Context, noteID string) (*entities.Note, error)
	FindByTitleFold(ctx context.Context, titleFold string) (*entities.Note, error)
	Create(ctx context.Context, note *entities.Note) (string, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, noteID string) error
}
