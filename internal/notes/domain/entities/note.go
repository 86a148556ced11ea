// Package entities defines the domain entities for the notes service.
package entities

import (
	"time"

	"technotes/pkg/collation"
)

// Note представляет собой заметку пользователя.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	TitleFold string    `json:"-"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote creates a new note owned by the given user. Completion starts off false.
func NewNote(userID, title, text string) *Note {
	now := time.Now()
	return &Note{
		UserID:    userID,
		Title:     title,
		TitleFold: collation.Fold(title),
		Text:      text,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetTitle обновляет заголовок вместе с его базовой формой.
func (n *Note) SetTitle(title string) {
	n.Title = title
	n.TitleFold = collation.Fold(title)
}
