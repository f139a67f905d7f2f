package chart

import "errors"

var (
	// ErrContainerNotFound - the document has no container with the requested id
	ErrContainerNotFound = errors.New("chart container not found")
	// ErrEmptyDomain - dataset is empty, min/max of the domain are undefined
	ErrEmptyDomain = errors.New("empty data domain")
	// ErrNilAccessor - x or y field accessor is nil
	ErrNilAccessor = errors.New("nil field accessor")
	// ErrInvalidValue - a record produced a zero time or a non-finite value
	ErrInvalidValue = errors.New("invalid data value")
	ErrNilCanvas    = errors.New("nil canvas")
)
