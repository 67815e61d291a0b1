package springforce

import (
	"fmt"

	"github.com/ValentinKolb/forcespec/lib/stream"
	"github.com/ValentinKolb/forcespec/lib/streamable"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	log = logger.GetLogger("springforce")

	classID streamable.ClassID
)

// Register binds Spec and its factory to a class ID of the manager.
// It follows the same rules as rodforce.Register.
func Register(m *streamable.Manager) error {
	id, allocated, err := streamable.RegisterType(m, &classID, func() streamable.Factory {
		return &Factory{classID: streamable.UnregisteredID}
	})
	if err != nil {
		return err
	}
	if allocated {
		log.Infof("registered spring force spec with class ID %d", id)
	}
	return nil
}

// IsRegistered reports whether Register has been called in this process
func IsRegistered() bool {
	return classID.IsSet()
}

// Factory rebuilds Spec objects from a stream
type Factory struct {
	classID int
}

func (f *Factory) StreamableClassID() int {
	return f.classID
}

func (f *Factory) SetStreamableClassID(id int) {
	f.classID = id
}

// UnpackStream reads a spec written by Spec.PackStream and adds offset to the
// master index and every peer index. Force function indices are not node
// indices and are left unchanged.
func (f *Factory) UnpackStream(r *stream.Reader, offset int) (streamable.Streamable, error) {
	n, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("error reading spring count: %w", err)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d springs", stream.ErrInvalidLength, n)
	}

	masterIdx, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("error reading master index: %w", err)
	}
	peerIdxs, err := r.ReadInts(n)
	if err != nil {
		return nil, fmt.Errorf("error reading peer indices: %w", err)
	}
	forceFcnIdxs, err := r.ReadInts(n)
	if err != nil {
		return nil, fmt.Errorf("error reading force function indices: %w", err)
	}
	// every parameter vector carries at least its length
	if n > r.Remaining()/stream.IntSize {
		return nil, fmt.Errorf("%w: data too short for %d parameter vectors", stream.ErrTruncated, n)
	}
	parameters := make([][]float64, n)
	for i := range parameters {
		numParams, err := r.ReadInt()
		if err != nil {
			return nil, fmt.Errorf("error reading parameter count of spring %d: %w", i, err)
		}
		if parameters[i], err = r.ReadDoubles(numParams); err != nil {
			return nil, fmt.Errorf("error reading parameters of spring %d: %w", i, err)
		}
	}

	masterIdx += offset
	for i := range peerIdxs {
		peerIdxs[i] += offset
	}

	return &Spec{
		masterIdx:    masterIdx,
		peerIdxs:     peerIdxs,
		forceFcnIdxs: forceFcnIdxs,
		parameters:   parameters,
	}, nil
}

var _ streamable.Factory = (*Factory)(nil)
