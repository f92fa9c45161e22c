package middleware

import (
	"quiz-import/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidatedQuizIDKey holds the checked :quizId path parameter in locals.
const ValidatedQuizIDKey = "validated_quiz_id"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(validator *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: validator}
}

// ValidateQuizID rejects requests whose :quizId is not a ULID.
func (vm *ValidationMiddleware) ValidateQuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID := c.Params("quizId")
		if errs := vm.validator.ValidateQuizID(quizID); len(errs) > 0 {
			return errs
		}
		c.Locals(ValidatedQuizIDKey, quizID)
		return c.Next()
	}
}
