package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
)

// repoError maps a persistence failure to an API error. Errors that already
// carry a status pass through untouched.
func repoError(code, msg string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apierr.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apierr.NotFound(code, msg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apierr.Conflict(code, msg)
	}
	return apierr.Dependency(code, msg, err)
}
