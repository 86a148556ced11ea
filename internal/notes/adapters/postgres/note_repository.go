package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"technotes/internal/notes/domain/entities"
	"technotes/internal/notes/ports/repositories"
	"technotes/pkg/logger"
)

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	db DB
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(db DB) *NoteRepository {
	return &NoteRepository{db: db}
}

const noteColumns = `id, user_id, title, title_fold, text, completed, created_at, updated_at`

// FindAll возвращает все заметки в порядке их создания.
func (r *NoteRepository) FindAll(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.FindAll"))
	log.Debug(ctx, "listing notes")

	rows, err := r.db.Query(ctx,
		`SELECT `+noteColumns+` FROM notes ORDER BY created_at`)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.TitleFold,
			&note.Text, &note.Completed, &note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// FindByID получает заметку по ID.
func (r *NoteRepository) FindByID(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.FindByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID))

	return r.findOne(ctx, log,
		`SELECT `+noteColumns+` FROM notes WHERE id = $1`, noteID)
}

// FindByTitleFold получает заметку по базовой форме заголовка.
func (r *NoteRepository) FindByTitleFold(ctx context.Context, titleFold string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.FindByTitleFold"))
	log.Debug(ctx, "getting note by folded title", zap.String("titleFold", titleFold))

	return r.findOne(ctx, log,
		`SELECT `+noteColumns+` FROM notes WHERE title_fold = $1`, titleFold)
}

func (r *NoteRepository) findOne(ctx context.Context, log *logger.Logger, query string, arg any) (*entities.Note, error) {
	var note entities.Note
	err := r.db.QueryRow(ctx, query, arg).
		Scan(&note.ID, &note.UserID, &note.Title, &note.TitleFold,
			&note.Text, &note.Completed, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found")
			return nil, nil
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// Create сохраняет новую заметку в БД. Нарушение уникального индекса по
// title_fold транслируется в repositories.ErrDuplicateTitle.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("userID", note.UserID))

	var noteID string
	err := r.db.QueryRow(ctx,
		`INSERT INTO notes (user_id, title, title_fold, text, completed)
         VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		note.UserID, note.Title, note.TitleFold, note.Text, note.Completed,
	).Scan(&noteID)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "duplicate note title", zap.String("titleFold", note.TitleFold))
			return "", repositories.ErrDuplicateTitle
		}
		log.Error(ctx, "failed to create note", zap.Error(err))
		return "", fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", noteID))
	return noteID, nil
}

// Update перезаписывает все изменяемые поля заметки.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	result, err := r.db.Exec(ctx,
		`UPDATE notes SET user_id = $1, title = $2, title_fold = $3, text = $4,
         completed = $5, updated_at = now() WHERE id = $6`,
		note.UserID, note.Title, note.TitleFold, note.Text, note.Completed, note.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "duplicate note title", zap.String("titleFold", note.TitleFold))
			return repositories.ErrDuplicateTitle
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return fmt.Errorf("failed to update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found")
		return fmt.Errorf("failed to update note: %w", pgx.ErrNoRows)
	}

	return nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, noteID)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found")
		return fmt.Errorf("failed to delete note: %w", pgx.ErrNoRows)
	}

	return nil
}
