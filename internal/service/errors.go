package service

import (
	"errors"
	"fmt"

	"github.com/emrgen/journal/internal/store"
)

var (
	// ErrNotFound is returned when a handle does not resolve to an
	// existing journal, field, record, tag or content row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on a uniqueness violation: journal name,
	// fieldname, displayname, tag name, or a second value on a field
	// that does not allow multiples.
	ErrConflict = errors.New("already exists")
	// ErrInvalidArgument is returned for unrecognized field or
	// resolution types, out-of-range lengths, cross-journal references
	// and values failing their field's type check.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidHandle is returned when a handle is neither a string
	// name, an integer id, nor an already resolved object. Kept apart
	// from ErrInvalidArgument: the handle is the wrong type entirely,
	// not a wrong value.
	ErrInvalidHandle = errors.New("handle must be a string name, an integer id or a resolved object")
)

// storeErr maps storage sentinels onto the service taxonomy. Uniqueness
// is ultimately enforced at the storage boundary, so a duplicate slipping
// past a pre-check still surfaces as a conflict and never overwrites.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, err)
	case errors.Is(err, store.ErrDuplicate):
		return fmt.Errorf("%w: %s", ErrConflict, err)
	default:
		return err
	}
}
