package store

import (
	"errors"
)

var (
	// ErrStorageNil is returned when the store is created without a storage backend.
	ErrStorageNil = errors.New("storage backend is nil")

	// ErrDevoteeNotFound is returned when no devotee matches the given ID.
	ErrDevoteeNotFound = errors.New("devotee not found")

	// ErrItemNotFound is returned when no inventory item matches the given ID.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrUnknownStatus is returned when a devotee carries an initiation status
	// outside the recognised set.
	ErrUnknownStatus = errors.New("unknown initiation status")

	// ErrUnknownPurpose is returned when a donation carries a purpose outside
	// the recognised set.
	ErrUnknownPurpose = errors.New("unknown donation purpose")

	// ErrUnknownMethod is returned when a donation carries a method outside
	// the recognised set.
	ErrUnknownMethod = errors.New("unknown donation method")

	// ErrUnknownCategory is returned when an inventory item carries a category
	// outside the recognised set.
	ErrUnknownCategory = errors.New("unknown inventory category")
)
