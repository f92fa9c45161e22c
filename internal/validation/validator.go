package validation

import (
	"path/filepath"
	"strings"

	"quiz-import/internal/domain"
	"quiz-import/internal/util"
)

// Validator checks import requests before they reach the service.
type Validator struct {
	maxBatchItems int
}

// NewValidator creates a validator. A maxBatchItems of zero or less leaves
// batch size unchecked; input size is enforced by the import service.
func NewValidator(maxBatchItems int) *Validator {
	return &Validator{maxBatchItems: maxBatchItems}
}

// ValidatePreviewText validates the text of a preview request
func (v *Validator) ValidatePreviewText(text string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(text) == "" {
		errors = append(errors, domain.NewMissingFieldError("text"))
	}
	return errors
}

// ValidateBatch validates a batch preview request
func (v *Validator) ValidateBatch(texts []string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if len(texts) == 0 {
		errors = append(errors, domain.NewMissingFieldError("texts"))
		return errors
	}
	if v.maxBatchItems > 0 && len(texts) > v.maxBatchItems {
		errors = append(errors, domain.NewOutOfRangeError("texts", len(texts), 1, v.maxBatchItems))
	}
	return errors
}

// ValidateImportRequest validates an import into a quiz. The quiz ID must be
// a ULID and exactly one of text or draft_id is given.
func (v *Validator) ValidateImportRequest(quizID, text, draftID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(quizID) == "" {
		errors = append(errors, domain.NewMissingFieldError("quiz_id"))
	} else if !util.IsULID(quizID) {
		errors = append(errors, domain.NewInvalidFormatError("quiz_id", quizID))
	}

	hasText := strings.TrimSpace(text) != ""
	hasDraft := strings.TrimSpace(draftID) != ""
	switch {
	case !hasText && !hasDraft:
		errors = append(errors, domain.NewMissingFieldError("text"))
	case hasText && hasDraft:
		errors = append(errors, domain.ValidationError{
			Field:   "draft_id",
			Message: "provide either text or draft_id, not both",
			Value:   draftID,
			Code:    domain.CodeInvalidInput,
		})
	case hasDraft && !util.IsULID(draftID):
		errors = append(errors, domain.NewInvalidFormatError("draft_id", draftID))
	}

	return errors
}

// ValidateQuizID validates a quiz path parameter
func (v *Validator) ValidateQuizID(quizID string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(quizID) == "" {
		errors = append(errors, domain.NewMissingFieldError("quiz_id"))
	} else if !util.IsULID(quizID) {
		errors = append(errors, domain.NewInvalidFormatError("quiz_id", quizID))
	}
	return errors
}

// IsTextFile reports whether an uploaded file name has a .txt extension.
func IsTextFile(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".txt")
}
