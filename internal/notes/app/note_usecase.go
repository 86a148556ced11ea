// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"technotes/internal/notes/app/dto"
	"technotes/internal/notes/domain/entities"
	"technotes/internal/notes/ports/cache"
	"technotes/internal/notes/ports/repositories"
	"technotes/pkg/collation"
	"technotes/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	ErrMissingFields   = errors.New("all fields are required")
	ErrMissingID       = errors.New("note ID required")
	ErrNoNotes         = errors.New("no notes found")
	ErrNoteNotFound    = errors.New("note not found")
	ErrDuplicateTitle  = errors.New("duplicate note title")
	ErrInvalidNoteData = errors.New("invalid note data received")
)

// usernameKeyPrefix - префикс ключа кэша для имен владельцев заметок.
const usernameKeyPrefix = "user:username:"

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo      repositories.NoteRepository
	userRepo      repositories.UserRepository
	usernameCache cache.Cache
}

// NewNoteUseCase создает новый экземпляр NoteUseCase. Кэш может быть nil,
// тогда имена владельцев всегда читаются из репозитория.
func NewNoteUseCase(noteRepo repositories.NoteRepository, userRepo repositories.UserRepository, usernameCache cache.Cache) *NoteUseCase {
	return &NoteUseCase{
		noteRepo:      noteRepo,
		userRepo:      userRepo,
		usernameCache: usernameCache,
	}
}

// ListNotes возвращает все заметки, заменяя ссылку на владельца его именем.
// Имена разрешаются конкурентно; ошибка любого разрешения проваливает весь
// список. Порядок ответа повторяет порядок чтения из репозитория.
func (uc *NoteUseCase) ListNotes(ctx context.Context) ([]*dto.NoteResponse, error) {
	notes, err := uc.noteRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if len(notes) == 0 {
		return nil, ErrNoNotes
	}

	views := make([]*dto.NoteResponse, len(notes))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, note := range notes {
		group.Go(func() error {
			username, err := uc.resolveUsername(groupCtx, note.UserID)
			if err != nil {
				return err
			}
			views[i] = &dto.NoteResponse{
				ID:        note.ID,
				User:      username,
				Title:     note.Title,
				Text:      note.Text,
				Completed: note.Completed,
				CreatedAt: note.CreatedAt,
				UpdatedAt: note.UpdatedAt,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return views, nil
}

// CreateNote создает новую заметку. Заголовок обязан быть уникальным в
// базовой форме; завершенность новой заметки всегда false.
func (uc *NoteUseCase) CreateNote(ctx context.Context, req *dto.CreateNoteRequest) error {
	if req.User == "" || req.Title == "" || req.Text == "" {
		return ErrMissingFields
	}

	duplicate, err := uc.noteRepo.FindByTitleFold(ctx, collation.Fold(req.Title))
	if err != nil {
		return fmt.Errorf("failed to check for duplicate title: %w", err)
	}
	if duplicate != nil {
		return ErrDuplicateTitle
	}

	note := entities.NewNote(req.User, req.Title, req.Text)
	if _, err := uc.noteRepo.Create(ctx, note); err != nil {
		if errors.Is(err, repositories.ErrDuplicateTitle) {
			return ErrDuplicateTitle
		}
		logger.Log(ctx).Debug(ctx, "note creation rejected by repository", zap.Error(err))
		return ErrInvalidNoteData
	}

	return nil
}

// UpdateNote полностью заменяет все изменяемые поля существующей заметки
// и возвращает ее новый заголовок. Заметка может сохранить собственный
// заголовок; совпадение с чужим - конфликт.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, req *dto.UpdateNoteRequest) (string, error) {
	if req.ID == "" || req.User == "" || req.Title == "" || req.Text == "" || req.Completed == nil {
		return "", ErrMissingFields
	}

	note, err := uc.noteRepo.FindByID(ctx, req.ID)
	if err != nil {
		return "", fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return "", ErrNoteNotFound
	}

	duplicate, err := uc.noteRepo.FindByTitleFold(ctx, collation.Fold(req.Title))
	if err != nil {
		return "", fmt.Errorf("failed to check for duplicate title: %w", err)
	}
	if duplicate != nil && duplicate.ID != req.ID {
		return "", ErrDuplicateTitle
	}

	note.UserID = req.User
	note.SetTitle(req.Title)
	note.Text = req.Text
	note.Completed = *req.Completed

	if err := uc.noteRepo.Update(ctx, note); err != nil {
		if errors.Is(err, repositories.ErrDuplicateTitle) {
			return "", ErrDuplicateTitle
		}
		return "", fmt.Errorf("failed to update note: %w", err)
	}

	return note.Title, nil
}

// DeleteNote удаляет заметку и возвращает подтверждение с ее бывшим
// заголовком и идентификатором.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, req *dto.DeleteNoteRequest) (string, error) {
	if req.ID == "" {
		return "", ErrMissingID
	}

	note, err := uc.noteRepo.FindByID(ctx, req.ID)
	if err != nil {
		return "", fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return "", ErrNoteNotFound
	}

	if err := uc.noteRepo.Delete(ctx, note.ID); err != nil {
		return "", fmt.Errorf("failed to delete note: %w", err)
	}

	return fmt.Sprintf("Note '%s' with ID %s deleted", note.Title, note.ID), nil
}

// resolveUsername возвращает имя владельца заметки, используя кэш поверх
// репозитория пользователей. Ошибки кэша не проваливают разрешение.
func (uc *NoteUseCase) resolveUsername(ctx context.Context, userID string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.resolveUsername"))

	key := usernameKeyPrefix + userID
	if uc.usernameCache != nil {
		cached, err := uc.usernameCache.Get(ctx, key)
		if err != nil {
			log.Debug(ctx, "username cache lookup failed", zap.Error(err))
		} else if cached != "" {
			return cached, nil
		}
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve note owner: %w", err)
	}
	if user == nil {
		return "", fmt.Errorf("failed to resolve note owner: user %s not found", userID)
	}

	if uc.usernameCache != nil {
		if err := uc.usernameCache.Set(ctx, key, user.Username, 0); err != nil {
			log.Debug(ctx, "username cache store failed", zap.Error(err))
		}
	}

	return user.Username, nil
}
