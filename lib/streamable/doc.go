// Package streamable implements the registry that allows heterogeneous node
// data records to be packed into a byte stream and rebuilt on another
// process without the receiver knowing the concrete record type.
//
// Key Components:
//
//   - Streamable: A record that can report its class ID, an upper bound of its
//     packed size and pack itself into a stream.Writer.
//
//   - Factory: Rebuilds a Streamable of one concrete type from a stream.Reader,
//     applying an additive index offset to all node indices it reads.
//
//   - ClassID: The process-wide, write-once binding of a record type to the
//     integer tag assigned by the Manager.
//
//   - Manager: The table from class ID to Factory. Tags are allocated in
//     registration order, starting at 0.
//
// Collective Registration:
//
//	The Manager does not communicate with other processes. Every process of
//	a run must register the same record types in the same order so that each
//	of them independently derives the same tags. Record packages expose a
//	Register(m) function that has to be called at the same logical point on
//	every participant, before any record of that type is packed or unpacked.
//
// Stream Layout:
//
//	A tagged record is written as its class ID (one int) followed by the
//	record's own payload. Lists of records are prefixed with their length.
//
// Thread Safety:
//
//	The Manager is safe for concurrent use. Lookups are lock-free, so many
//	goroutines may pack and unpack records at the same time. Individual
//	records are not safe for concurrent mutation.
//
// Usage:
//
//	manager := streamable.NewManager()
//	if err := rodforce.Register(manager); err != nil {
//	    // handle error
//	}
//
//	w := stream.NewWriter(manager.DataStreamSize(spec))
//	err := manager.PackStream(w, spec)
//	// ... ship w.Bytes() ...
//	item, err := manager.UnpackStream(stream.NewReader(data), offset)
package streamable
