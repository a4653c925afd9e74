package interfaces

import "errors"

var (
	// ErrConditionNotMet is returned by conditional updates when the stored
	// record no longer matches the expected status or version.
	ErrConditionNotMet = errors.New("conditional update not applied")

	// ErrAlreadyExists is returned by insert-only stores on a duplicate key.
	ErrAlreadyExists = errors.New("record already exists")
)
