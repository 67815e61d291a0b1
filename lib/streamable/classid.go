package streamable

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// UnregisteredID is the class ID value of a type that has not been registered yet
const UnregisteredID = -1

// ClassID holds the process-wide class ID of one record type.
// It is written once during registration and read without synchronization afterward.
// The zero value is unset.
type ClassID struct {
	// id stores the class ID + 1 so that the zero value means unset
	id atomic.Int64
	// registerMu serializes RegisterType calls for this type
	registerMu sync.Mutex
}

// Get returns the bound class ID. It panics if the type was never registered,
// since packing an unregistered type is a programming error.
func (c *ClassID) Get() int {
	id := c.Load()
	if id == UnregisteredID {
		panic("streamable: class ID queried before the type was registered with a Manager")
	}
	return id
}

// Load returns the bound class ID or UnregisteredID
func (c *ClassID) Load() int {
	return int(c.id.Load()) - 1
}

// IsSet reports whether a class ID has been bound
func (c *ClassID) IsSet() bool {
	return c.id.Load() != 0
}

// Set binds the class ID. Setting the same value again is a no-op,
// any attempt to change an existing binding fails with ErrAlreadyBound.
func (c *ClassID) Set(id int) error {
	if id < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidClassID, id)
	}
	if c.id.CompareAndSwap(0, int64(id)+1) {
		return nil
	}
	if current := c.Load(); current != id {
		return fmt.Errorf("%w: bound to %d, refusing %d", ErrAlreadyBound, current, id)
	}
	return nil
}
