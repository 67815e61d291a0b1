package streamable

import (
	"fmt"
	"sync"

	"github.com/ValentinKolb/forcespec/lib/stream"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var (
	Logger = logger.GetLogger("streamable")

	packedTotal       = metrics.NewCounter("forcespec_streamable_packed_total")
	packedBytesTotal  = metrics.NewCounter("forcespec_streamable_packed_bytes_total")
	unpackedTotal     = metrics.NewCounter("forcespec_streamable_unpacked_total")
	unpackErrorsTotal = metrics.NewCounter("forcespec_streamable_unpack_errors_total")
)

// Manager maps class IDs to the factories that rebuild records of that class.
// A process creates one Manager at startup and passes it to every package
// that registers or ships records.
type Manager struct {
	// mu serializes registrations so that tag allocation and binding happen atomically
	mu        sync.Mutex
	nextID    int
	factories *xsync.MapOf[int, Factory]
}

// NewManager creates an empty registry. The first allocated class ID is 0.
func NewManager() *Manager {
	return &Manager{
		factories: xsync.NewMapOf[int, Factory](),
	}
}

// --------------------------------------------------------------------------
// Registration
// --------------------------------------------------------------------------

// RegisterFactory allocates the next free class ID, binds the factory to it and returns the ID.
// The allocation is deterministic: a process that registers the same factories in
// the same order always ends up with the same IDs.
func (m *Manager) RegisterFactory(factory Factory) (int, error) {
	if factory == nil {
		return UnregisteredID, ErrNilFactory
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// bind keeps nextID above every bound class ID, so it is always free
	id := m.nextID
	m.bind(id, factory)

	Logger.Debugf("registered factory %T under class ID %d", factory, id)
	return id, nil
}

// BindFactory binds the factory to an explicitly given class ID.
// This is used to bind a type whose class ID has already been established
// (e.g. by an earlier registration in the same process) to another Manager.
func (m *Manager) BindFactory(id int, factory Factory) error {
	if factory == nil {
		return ErrNilFactory
	}
	if id < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidClassID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.factories.Load(id); ok {
		return fmt.Errorf("%w: class ID %d is held by %T", ErrClassIDInUse, id, existing)
	}
	m.bind(id, factory)

	Logger.Debugf("bound factory %T to class ID %d", factory, id)
	return nil
}

// bind stores the factory and advances the allocator. The caller must hold m.mu.
func (m *Manager) bind(id int, factory Factory) {
	factory.SetStreamableClassID(id)
	m.factories.Store(id, factory)
	if id >= m.nextID {
		m.nextID = id + 1
	}
}

// IsRegistered reports whether a factory is bound to the class ID
func (m *Manager) IsRegistered(id int) bool {
	_, ok := m.factories.Load(id)
	return ok
}

// Lookup returns the factory bound to the class ID
func (m *Manager) Lookup(id int) (Factory, bool) {
	return m.factories.Load(id)
}

// Len returns the number of registered factories
func (m *Manager) Len() int {
	return m.factories.Size()
}

// --------------------------------------------------------------------------
// Single records
// --------------------------------------------------------------------------

// DataStreamSize returns an upper bound on the number of bytes PackStream writes for s
func (m *Manager) DataStreamSize(s Streamable) int {
	return stream.IntSize + s.DataStreamSize()
}

// PackStream writes the class ID of s followed by its payload.
// On error the writer is left as it was before the call.
func (m *Manager) PackStream(w *stream.Writer, s Streamable) error {
	id := s.StreamableClassID()
	if !m.IsRegistered(id) {
		return fmt.Errorf("%w: %d (%T)", ErrUnknownClassID, id, s)
	}

	// a failed pack must not leave a partial record in the stream
	start := w.Len()
	if err := w.WriteInt(id); err != nil {
		w.Truncate(start)
		return err
	}
	if err := s.PackStream(w); err != nil {
		w.Truncate(start)
		return fmt.Errorf("error packing %T: %w", s, err)
	}

	packedTotal.Inc()
	packedBytesTotal.Add(w.Len() - start)
	return nil
}

// UnpackStream reads a class ID and lets the matching factory rebuild the record.
// The offset is passed on to the factory unchanged.
func (m *Manager) UnpackStream(r *stream.Reader, offset int) (Streamable, error) {
	id, err := r.ReadInt()
	if err != nil {
		unpackErrorsTotal.Inc()
		return nil, fmt.Errorf("error reading class ID: %w", err)
	}

	factory, ok := m.Lookup(id)
	if !ok {
		unpackErrorsTotal.Inc()
		return nil, fmt.Errorf("%w: %d", ErrUnknownClassID, id)
	}

	s, err := factory.UnpackStream(r, offset)
	if err != nil {
		unpackErrorsTotal.Inc()
		Logger.Debugf("unpacking class ID %d failed at byte %d: %v", id, r.Offset(), err)
		return nil, fmt.Errorf("error unpacking class ID %d: %w", id, err)
	}

	unpackedTotal.Inc()
	return s, nil
}

// --------------------------------------------------------------------------
// Record lists
// --------------------------------------------------------------------------

// DataStreamSizeList returns an upper bound on the number of bytes PackList writes for items
func (m *Manager) DataStreamSizeList(items []Streamable) int {
	size := stream.IntSize
	for _, s := range items {
		size += m.DataStreamSize(s)
	}
	return size
}

// PackList writes the number of items followed by every item with its class ID.
// On error the writer is left as it was before the call.
func (m *Manager) PackList(w *stream.Writer, items []Streamable) error {
	start := w.Len()
	if err := w.WriteInt(len(items)); err != nil {
		return err
	}
	for i, s := range items {
		if err := m.PackStream(w, s); err != nil {
			w.Truncate(start)
			return fmt.Errorf("error packing item %d: %w", i, err)
		}
	}
	return nil
}

// UnpackList reads a list written by PackList. Either all items are returned or none.
func (m *Manager) UnpackList(r *stream.Reader, offset int) ([]Streamable, error) {
	n, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("error reading item count: %w", err)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d items", stream.ErrInvalidLength, n)
	}
	// every item carries at least its class ID
	if n > r.Remaining()/stream.IntSize {
		return nil, fmt.Errorf("%w: data too short for %d items", stream.ErrTruncated, n)
	}

	items := make([]Streamable, 0, n)
	for i := 0; i < n; i++ {
		s, err := m.UnpackStream(r, offset)
		if err != nil {
			return nil, fmt.Errorf("error unpacking item %d: %w", i, err)
		}
		items = append(items, s)
	}
	return items, nil
}
