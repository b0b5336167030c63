package service

import (
	"errors"

	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// errorsIsInvalidState сокращает проверку ErrInvalidState в батчевых операциях
func errorsIsInvalidState(err error) bool {
	return errors.Is(err, apperrors.ErrInvalidState)
}
