package streamable

import (
	"fmt"
	"reflect"
)

// RegisterType binds a record type to a class ID of the manager and records the
// class ID in classID. newFactory returns a fresh, unbound factory of the type.
//
// The first call in a process allocates the class ID from m and reports
// allocated = true. Later calls never change it: if m already holds a factory
// of the same type under that ID nothing happens, if the ID is free in m the
// factory is bound to it, and if another type holds it ErrClassIDInUse is returned.
//
// Processes that call RegisterType for the same types in the same order end
// up with the same class IDs.
func RegisterType(m *Manager, classID *ClassID, newFactory func() Factory) (id int, allocated bool, err error) {
	classID.registerMu.Lock()
	defer classID.registerMu.Unlock()

	factory := newFactory()
	if factory == nil {
		return UnregisteredID, false, ErrNilFactory
	}

	if classID.IsSet() {
		id = classID.Get()
		if existing, ok := m.Lookup(id); ok {
			if reflect.TypeOf(existing) != reflect.TypeOf(factory) {
				return id, false, fmt.Errorf("%w: class ID %d of %T is held by %T", ErrClassIDInUse, id, factory, existing)
			}
			return id, false, nil
		}
		return id, false, m.BindFactory(id, factory)
	}

	id, err = m.RegisterFactory(factory)
	if err != nil {
		return UnregisteredID, false, err
	}
	if err := classID.Set(id); err != nil {
		return id, false, err
	}
	return id, true, nil
}
