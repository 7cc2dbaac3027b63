package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/campuschain/ccms/internal/domain"
)

// translate maps gorm errors onto the domain taxonomy. Requires the gorm
// connection to be opened with TranslateError so unique-constraint
// violations arrive as gorm.ErrDuplicatedKey regardless of driver.
func translate(err error, resource string, conflictReason string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NotFoundError{Resource: resource}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ConflictError{Reason: conflictReason}
	default:
		return errors.Wrap(err, resource)
	}
}
