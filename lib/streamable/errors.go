package streamable

import "errors"

var (
	// ErrClassIDInUse is returned when a factory is registered under an occupied class ID
	ErrClassIDInUse = errors.New("class ID already in use")
	// ErrUnknownClassID is returned when a stream contains a class ID without registered factory
	ErrUnknownClassID = errors.New("no factory registered for class ID")
	// ErrAlreadyBound is returned when a record type's class ID would be reassigned
	ErrAlreadyBound = errors.New("class ID already bound")
	// ErrInvalidClassID is returned for negative class IDs
	ErrInvalidClassID = errors.New("invalid class ID")
	// ErrNilFactory is returned when a nil factory is registered
	ErrNilFactory = errors.New("factory must not be nil")
)
