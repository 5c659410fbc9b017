package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingArtifact   = errors.New("missing model artifact")
	ErrInvalidArtifact   = errors.New("invalid model artifact")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrPayloadTooLarge   = errors.New("payload too large")
	ErrScreeningNotFound = errors.New("screening not found")
	ErrTemporary         = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
