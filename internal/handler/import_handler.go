package handler

import (
	"io"

	"quiz-import/internal/domain"
	"quiz-import/internal/dto"
	"quiz-import/internal/logger"
	"quiz-import/internal/middleware"
	"quiz-import/internal/service"
	"quiz-import/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImportHandler handles quiz text import HTTP requests
type ImportHandler struct {
	service   service.ImportService
	validator *validation.Validator
}

// NewImportHandler creates a new ImportHandler instance
func NewImportHandler(service service.ImportService, validator *validation.Validator) *ImportHandler {
	return &ImportHandler{
		service:   service,
		validator: validator,
	}
}

// Preview godoc
// @Summary Preview parsed questions
// @Description Parses pasted or OCR text into questions without saving them. The result is kept as a draft that can be imported later.
// @Tags imports
// @Accept json
// @Produce json
// @Param request body dto.ImportPreviewRequest true "Quiz text"
// @Success 200 {object} dto.ImportPreviewResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 413 {object} middleware.ErrorResponse
// @Router /imports/preview [post]
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	var req dto.ImportPreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidatePreviewText(req.Text); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Preview(c.UserContext(), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PreviewFile godoc
// @Summary Preview parsed questions from a text file
// @Description Parses an uploaded .txt file into questions without saving them
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Plain text quiz file"
// @Success 200 {object} dto.ImportPreviewResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 413 {object} middleware.ErrorResponse
// @Router /imports/preview/file [post]
func (h *ImportHandler) PreviewFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}
	if !validation.IsTextFile(fileHeader.Filename) {
		return domain.NewUnsupportedFileError(fileHeader.Filename)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("failed to open uploaded file", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInternalError("failed to read uploaded file", err)
	}

	logger.Get().Debug("Previewing uploaded file",
		zap.String("filename", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size),
	)

	resp, err := h.service.Preview(c.UserContext(), string(content))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PreviewBatch godoc
// @Summary Preview several texts at once
// @Description Parses each text independently; results keep the request order
// @Tags imports
// @Accept json
// @Produce json
// @Param request body dto.ImportBatchPreviewRequest true "Quiz texts"
// @Success 200 {array} dto.ImportPreviewResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 413 {object} middleware.ErrorResponse
// @Router /imports/preview/batch [post]
func (h *ImportHandler) PreviewBatch(c *fiber.Ctx) error {
	var req dto.ImportBatchPreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateBatch(req.Texts); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.PreviewBatch(c.UserContext(), req.Texts)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ImportIntoQuiz godoc
// @Summary Import questions into a quiz
// @Description Appends questions parsed from text, or from a previewed draft, to an existing quiz
// @Tags imports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "Quiz ID (ULID)"
// @Param request body dto.ImportQuizRequest true "Text or draft id"
// @Success 201 {object} dto.ImportResultResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /quizzes/{quizId}/imports [post]
func (h *ImportHandler) ImportIntoQuiz(c *fiber.Ctx) error {
	quizID := c.Params("quizId")

	var req dto.ImportQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateImportRequest(quizID, req.Text, req.DraftID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.ImportIntoQuiz(c.UserContext(), quizID, req)
	if err != nil {
		return err
	}

	if userID, ok := c.Locals(middleware.UserIDKey).(string); ok {
		logger.Get().Info("Questions imported",
			zap.String("quizID", quizID),
			zap.String("userID", userID),
			zap.Int("count", resp.ImportedCount),
		)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListQuizQuestions godoc
// @Summary List the questions of a quiz
// @Tags quizzes
// @Produce json
// @Param quizId path string true "Quiz ID (ULID)"
// @Success 200 {object} dto.QuizQuestionsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{quizId}/questions [get]
func (h *ImportHandler) ListQuizQuestions(c *fiber.Ctx) error {
	quizID := c.Params("quizId")
	if errs := h.validator.ValidateQuizID(quizID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.ListQuizQuestions(c.UserContext(), quizID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
