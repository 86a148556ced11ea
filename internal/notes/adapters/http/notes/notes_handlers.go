// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"technotes/internal/notes/adapters/http/middleware"
	"technotes/internal/notes/app"
	"technotes/internal/notes/app/dto"
	"technotes/internal/notes/ports/api"
	"technotes/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerCreateNote = "handling create note request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	MsgNoteCreated    = "New note created"
	MsgInternalError  = "Internal server error"
	ErrMsgInvalidBody = "invalid request body"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteService api.NoteService
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteService api.NoteService) *Handler {
	return &Handler{
		noteService: noteService,
	}
}

// ListNotes обрабатывает запрос на получение всех заметок.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(userCtx, LogHandlerListNotes)

	notes, err := h.noteService.ListNotes(userCtx)
	if err != nil {
		log.Debug(userCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err, fiber.StatusBadRequest)
	}

	if err := ctx.JSON(notes); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(userCtx, LogHandlerCreateNote)

	var req dto.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, ErrMsgInvalidBody, zap.Error(err))
		return handleError(ctx, app.ErrMissingFields, fiber.StatusBadRequest)
	}

	if err := h.noteService.CreateNote(userCtx, &req); err != nil {
		log.Debug(userCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err, fiber.StatusBadRequest)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: MsgNoteCreated}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateNote обрабатывает запрос на полную замену полей заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(userCtx, LogHandlerUpdateNote)

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, ErrMsgInvalidBody, zap.Error(err))
		return handleError(ctx, app.ErrMissingFields, fiber.StatusNotFound)
	}

	title, err := h.noteService.UpdateNote(userCtx, &req)
	if err != nil {
		log.Debug(userCtx, "failed to update note", zap.Error(err))
		return handleError(ctx, err, fiber.StatusNotFound)
	}

	if err := ctx.JSON(fmt.Sprintf("'%s' updated", title)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote обрабатывает запрос на удаление заметки.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(userCtx, LogHandlerDeleteNote)

	var req dto.DeleteNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, ErrMsgInvalidBody, zap.Error(err))
		return handleError(ctx, app.ErrMissingID, fiber.StatusBadRequest)
	}

	reply, err := h.noteService.DeleteNote(userCtx, &req)
	if err != nil {
		log.Debug(userCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err, fiber.StatusBadRequest)
	}

	if err := ctx.JSON(reply); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// requestContext возвращает контекст, обогащенный промежуточным ПО
// аутентификации, либо контекст запроса как запасной вариант.
func requestContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(middleware.UserContextKey).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}

// handleError транслирует ошибки бизнес-логики в HTTP-статусы.
// notFoundStatus различает контракты update (404) и delete (400).
func handleError(ctx fiber.Ctx, err error, notFoundStatus int) error {
	status := fiber.StatusInternalServerError
	message := MsgInternalError

	switch {
	case errors.Is(err, app.ErrMissingFields),
		errors.Is(err, app.ErrMissingID),
		errors.Is(err, app.ErrNoNotes),
		errors.Is(err, app.ErrInvalidNoteData):
		status = fiber.StatusBadRequest
		message = errorMessage(err)
	case errors.Is(err, app.ErrNoteNotFound):
		status = notFoundStatus
		message = errorMessage(err)
	case errors.Is(err, app.ErrDuplicateTitle):
		status = fiber.StatusConflict
		message = errorMessage(err)
	}

	if err := ctx.Status(status).JSON(fiber.Map{"message": message}); err != nil {
		return fmt.Errorf("error sending error response: %w", err)
	}
	return nil
}

// errorMessage возвращает человекочитаемый текст для известных ошибок.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, app.ErrMissingFields):
		return "All fields are required"
	case errors.Is(err, app.ErrMissingID):
		return "Note ID required"
	case errors.Is(err, app.ErrNoNotes):
		return "No notes found"
	case errors.Is(err, app.ErrNoteNotFound):
		return "Note not found"
	case errors.Is(err, app.ErrDuplicateTitle):
		return "Duplicate note title"
	case errors.Is(err, app.ErrInvalidNoteData):
		return "Invalid note data received"
	default:
		return MsgInternalError
	}
}
