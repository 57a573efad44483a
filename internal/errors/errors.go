package errors

import (
	"errors"
	"fmt"
)

// Common error types for the Core Engine client gateway
var (
	// Session errors
	ErrUnauthorized = errors.New("unauthorized")

	// Storage errors
	ErrKeyNotFound = errors.New("key not found")
	ErrInvalidKey  = errors.New("invalid encryption key")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
