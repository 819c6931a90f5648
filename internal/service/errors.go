package service

import (
	"errors"

	"github.com/sesp-cea/reajuste-service/internal/repository"
)

// ErrInvalidInput marks rejected entry data (empty contract number,
// non-positive values). Distinct from the calc error taxonomy, which
// covers the calculation itself.
var ErrInvalidInput = errors.New("invalid input")

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
