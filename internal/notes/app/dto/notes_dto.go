// Package dto содержит типизированные схемы запросов и ответов для заметок.
package dto

import (
	"time"
)

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	User  string `json:"user" validate:"required"`
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required"`
}

// UpdateNoteRequest содержит данные для полной замены заметки.
// Completed - указатель: отсутствие или небулево значение в теле запроса
// является ошибкой валидации, а не значением по умолчанию.
type UpdateNoteRequest struct {
	ID        string `json:"id" validate:"required"`
	User      string `json:"user" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Text      string `json:"text" validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

// DeleteNoteRequest содержит данные для удаления заметки.
type DeleteNoteRequest struct {
	ID string `json:"id" validate:"required"`
}

// NoteResponse - заметка в ответе списка; User содержит имя владельца,
// а не его идентификатор.
type NoteResponse struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageResponse - подтверждение с человекочитаемым сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}
