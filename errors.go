package recgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/recgo/recommend"
)

var (
	// ErrNotFound is returned when a requested user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidK is returned when the neighbor count is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidTopN is returned when the suggestion count is not positive.
	ErrInvalidTopN = errors.New("top-n must be positive")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("workers must be positive")

	// ErrInvalidNormalizer is returned when the score normalizer has a
	// non-positive scale or Min > Max.
	ErrInvalidNormalizer = errors.New("invalid normalizer")

	// ErrNoCatalog is returned when the catalog-ordinal bridge is requested
	// without a catalog.
	ErrNoCatalog = errors.New("catalog-ordinal bridge requires a catalog")
)

// ErrUnknownUser indicates a user key that has no ratings.
//
// It matches ErrNotFound via errors.Is. The original underlying error (if
// any) is part of the chain as well.
type ErrUnknownUser struct {
	Key   string
	cause error
}

func (e *ErrUnknownUser) Error() string {
	return fmt.Sprintf("unknown user %q", e.Key)
}

func (e *ErrUnknownUser) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrNotFound}
	}
	return []error{ErrNotFound, e.cause}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, recommend.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}
	if errors.Is(err, recommend.ErrInvalidTopN) {
		return fmt.Errorf("%w: %w", ErrInvalidTopN, err)
	}
	if errors.Is(err, recommend.ErrInvalidNormalizer) {
		return fmt.Errorf("%w: %w", ErrInvalidNormalizer, err)
	}
	if errors.Is(err, recommend.ErrUnknownUser) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return err
}
