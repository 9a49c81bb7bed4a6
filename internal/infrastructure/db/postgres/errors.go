package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
)

// Postgres SQLSTATE codes the repositories translate into domain errors.
const (
	codeStringTooLong       = "22001"
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// translateError maps driver errors onto domain sentinels. Errors it does not
// recognise are returned unchanged.
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case codeForeignKeyViolation:
		// The owner row is gone; the caller's session no longer maps to a user.
		return domain.ErrUnauthorized
	case codeStringTooLong, codeNotNullViolation, codeCheckViolation:
		return fmt.Errorf("%w: %s", domain.ErrValidation, pqErr.Message)
	}
	return err
}
