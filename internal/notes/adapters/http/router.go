// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"technotes/internal/notes/adapters/http/middleware"
	"technotes/internal/notes/adapters/http/notes"
	"technotes/internal/notes/ports/api"
	"technotes/internal/notes/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, noteService api.NoteService, tokenService services.TokenService) {
	notesHandler := notes.NewHandler(noteService)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Маршруты заметок (требуют авторизации). Идентификатор заметки
	// передается в теле запроса, как того требует внешний контракт.
	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Use(middleware.NewAuthMiddleware(tokenService))
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Patch("/", notesHandler.UpdateNote)
	notesRoutes.Delete("/", notesHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Route not found",
		})
	})
}
