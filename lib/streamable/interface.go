package streamable

import "github.com/ValentinKolb/forcespec/lib/stream"

// Streamable is the interface for all node data records that can be shipped between processes
type Streamable interface {
	// StreamableClassID returns the class ID the record type was registered under.
	// It panics if the type has not been registered.
	StreamableClassID() int
	// DataStreamSize returns an upper bound on the number of bytes PackStream writes
	DataStreamSize() int
	// PackStream writes the record's payload (without class ID) to the writer
	PackStream(w *stream.Writer) error
}

// Factory rebuilds records of one concrete type from a stream
type Factory interface {
	// StreamableClassID returns the class ID the factory is bound to
	StreamableClassID() int
	// SetStreamableClassID binds the factory to a class ID. It is called once by the Manager.
	SetStreamableClassID(classID int)
	// UnpackStream reads one record payload and returns a new, independent record.
	// The offset is added to every node index read from the stream.
	UnpackStream(r *stream.Reader, offset int) (Streamable, error)
}
