package handler

import (
	"quiz-import/internal/middleware"
	"quiz-import/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the import API under /api. Writes into a quiz
// require an access token.
func RegisterRoutes(app *fiber.App, importHandler *ImportHandler, authService service.AuthService, vm *middleware.ValidationMiddleware) {
	api := app.Group("/api")

	imports := api.Group("/imports")
	imports.Post("/preview", importHandler.Preview)
	imports.Post("/preview/file", importHandler.PreviewFile)
	imports.Post("/preview/batch", importHandler.PreviewBatch)

	quizzes := api.Group("/quizzes/:quizId", vm.ValidateQuizID())
	quizzes.Post("/imports", middleware.Protected(authService), importHandler.ImportIntoQuiz)
	quizzes.Get("/questions", importHandler.ListQuizQuestions)
}
