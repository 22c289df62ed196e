// Package domainerr holds the error kinds shared by the roster domain packages.
package domainerr

import crerr "github.com/cockroachdb/errors"

var (
	// ErrConstruction marks an entity that could not be built from its inputs.
	ErrConstruction = crerr.New("invalid construction")
	// ErrConstraintViolation marks a lineup mutation rejected before it took effect.
	ErrConstraintViolation = crerr.New("constraint violation")
	// ErrInvalidRange marks a date range whose start is after its end.
	ErrInvalidRange = crerr.New("invalid date range")
	// ErrKeyConflict marks an insert whose key already exists in its collection.
	ErrKeyConflict = crerr.New("key conflict")
)

// Constructionf wraps ErrConstruction with a formatted message.
func Constructionf(format string, args ...any) error {
	return crerr.Wrapf(ErrConstruction, format, args...)
}

// InvalidRangef wraps ErrInvalidRange with a formatted message.
func InvalidRangef(format string, args ...any) error {
	return crerr.Wrapf(ErrInvalidRange, format, args...)
}

// KeyConflictf wraps ErrKeyConflict with a formatted message.
func KeyConflictf(format string, args ...any) error {
	return crerr.Wrapf(ErrKeyConflict, format, args...)
}
