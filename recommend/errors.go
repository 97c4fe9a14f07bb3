package recommend

import "errors"

var (
	// ErrUnknownUser is returned when the target user has no ratings in the store.
	ErrUnknownUser = errors.New("unknown user")

	// ErrInvalidK is returned when the neighbor count is not positive.
	ErrInvalidK = errors.New("neighbor count must be positive")

	// ErrInvalidTopN is returned when the suggestion count is not positive.
	ErrInvalidTopN = errors.New("suggestion count must be positive")

	// ErrInvalidNormalizer is returned for a non-positive scale or Min > Max.
	ErrInvalidNormalizer = errors.New("invalid normalizer")
)
