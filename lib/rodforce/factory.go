package rodforce

import (
	"fmt"

	"github.com/ValentinKolb/forcespec/lib/stream"
	"github.com/ValentinKolb/forcespec/lib/streamable"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	log = logger.GetLogger("rodforce")

	// classID is the process-wide class ID of Spec
	classID streamable.ClassID
)

// Register binds Spec and its factory to a class ID of the manager.
// The first call allocates the class ID. Later calls do not change it: they
// return immediately if the manager already knows the type, and bind the
// factory under the established class ID if the manager is a new one.
//
// Every process of a run must call Register in the same order relative to
// other record types so all processes derive the same class ID.
func Register(m *streamable.Manager) error {
	id, allocated, err := streamable.RegisterType(m, &classID, func() streamable.Factory {
		return &Factory{classID: streamable.UnregisteredID}
	})
	if err != nil {
		return err
	}
	if allocated {
		log.Infof("registered rod force spec with class ID %d", id)
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

// --------------------------------------------------------------------------
// Interface Methods (docu see streamable.Factory)
// --------------------------------------------------------------------------

func (f *Factory) StreamableClassID() int {
	return f.classID
}

func (f *Factory) SetStreamableClassID(id int) {
	f.classID = id
}

// UnpackStream reads a spec written by Spec.PackStream and adds offset to the
// master index and every peer index.
func (f *Factory) UnpackStream(r *stream.Reader, offset int) (streamable.Streamable, error) {
	numRods, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("error reading rod count: %w", err)
	}
	if numRods < 0 {
		return nil, fmt.Errorf("%w: %d rods", stream.ErrInvalidLength, numRods)
	}
	// check the whole payload up front, so a corrupt rod count cannot trigger a large allocation
	if numRods > r.Remaining()/rodSize || r.Remaining() < dataStreamSize(numRods)-stream.IntSize {
		return nil, fmt.Errorf("%w: data too short for %d rods (%d bytes left)", stream.ErrTruncated, numRods, r.Remaining())
	}

	masterIdx, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("error reading master index: %w", err)
	}
	peerIdxs, err := r.ReadInts(numRods)
	if err != nil {
		return nil, fmt.Errorf("error reading peer indices: %w", err)
	}
	materialParams := make([]MaterialParams, numRods)
	for i := range materialParams {
		if err := r.ReadDoublesInto(materialParams[i][:]); err != nil {
			return nil, fmt.Errorf("error reading material params of rod %d: %w", i, err)
		}
	}

	masterIdx += offset
	for i := range peerIdxs {
		peerIdxs[i] += offset
	}

	return &Spec{
		masterIdx:      masterIdx,
		peerIdxs:       peerIdxs,
		materialParams: materialParams,
	}, nil
}

var _ streamable.Factory = (*Factory)(nil)
