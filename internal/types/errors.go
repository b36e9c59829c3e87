package types

import "errors"

// Domain specific errors for the city dataset.
var (
	ErrNotFound           = errors.New("requested city not found")
	ErrDatasetUnavailable = errors.New("city dataset unavailable")
	ErrDatasetMalformed   = errors.New("city dataset malformed")
)
