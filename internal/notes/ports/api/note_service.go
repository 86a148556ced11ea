// Package api defines application service interfaces exposed to transports.
package api

import (
	"context"

	"technotes/internal/notes/app/dto"
)

// NoteService определяет операции сервиса заметок, доступные HTTP слою.
type NoteService interface {
	ListNotes(ctx context.Context) ([]*dto.NoteResponse, error)
	CreateNote(ctx context.Context, req *dto.CreateNoteRequest) error
	UpdateNote(ctx context.Context, req *dto.UpdateNoteRequest) (string, error)
	DeleteNote(ctx context.Context, req *dto.DeleteNoteRequest) (string, error)
}
