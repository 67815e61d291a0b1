package rodforce

import (
	"errors"
	"fmt"

	"github.com/ValentinKolb/forcespec/lib/stream"
	"github.com/ValentinKolb/forcespec/lib/streamable"
)

// NumMaterialParams is the number of material parameters per rod
const NumMaterialParams = 10

// MaterialParams holds the material parameters of a single rod
type MaterialParams [NumMaterialParams]float64

// ErrLengthMismatch is returned when peer indices and material parameters differ in length
var ErrLengthMismatch = errors.New("peer indices and material parameters differ in length")

// Spec holds the rods anchored at one master node
type Spec struct {
	masterIdx      int
	peerIdxs       []int
	materialParams []MaterialParams
}

// NewSpec creates a spec with numRods zero-valued rods and master index 0.
// The rods are expected to be filled in through PeerIndices and MaterialParams.
func NewSpec(numRods int) *Spec {
	if numRods < 0 {
		numRods = 0
	}
	return &Spec{
		peerIdxs:       make([]int, numRods),
		materialParams: make([]MaterialParams, numRods),
	}
}

// NewSpecFrom creates a fully populated spec. The slices are copied.
func NewSpecFrom(masterIdx int, peerIdxs []int, materialParams []MaterialParams) (*Spec, error) {
	if len(peerIdxs) != len(materialParams) {
		return nil, fmt.Errorf("%w: %d peer indices, %d parameter tuples", ErrLengthMismatch, len(peerIdxs), len(materialParams))
	}
	return &Spec{
		masterIdx:      masterIdx,
		peerIdxs:       append(make([]int, 0, len(peerIdxs)), peerIdxs...),
		materialParams: append(make([]MaterialParams, 0, len(materialParams)), materialParams...),
	}, nil
}

// --------------------------------------------------------------------------
// Accessors
// --------------------------------------------------------------------------

// NumRods returns the number of rods attached to the master node
func (s *Spec) NumRods() int {
	return len(s.peerIdxs)
}

// MasterIndex returns the index of the node owning the rods
func (s *Spec) MasterIndex() int {
	return s.masterIdx
}

// SetMasterIndex renumbers the master node in place
func (s *Spec) SetMasterIndex(idx int) {
	s.masterIdx = idx
}

// PeerIndices returns the other endpoint of every rod.
// The slice aliases the spec's storage: elements may be edited in place, but
// the length must only be changed through SetRods or AddRod.
func (s *Spec) PeerIndices() []int {
	return s.peerIdxs
}

// MaterialParams returns the material parameters of every rod.
// Like PeerIndices, the slice aliases the spec's storage.
func (s *Spec) MaterialParams() []MaterialParams {
	return s.materialParams
}

// AddRod appends a rod
func (s *Spec) AddRod(peerIdx int, params MaterialParams) {
	s.peerIdxs = append(s.peerIdxs, peerIdx)
	s.materialParams = append(s.materialParams, params)
}

// SetRods replaces all rods. The slices are copied.
func (s *Spec) SetRods(peerIdxs []int, materialParams []MaterialParams) error {
	if len(peerIdxs) != len(materialParams) {
		return fmt.Errorf("%w: %d peer indices, %d parameter tuples", ErrLengthMismatch, len(peerIdxs), len(materialParams))
	}
	s.peerIdxs = append(s.peerIdxs[:0], peerIdxs...)
	s.materialParams = append(s.materialParams[:0], materialParams...)
	return nil
}

// Validate checks that both rod sequences have the same length
func (s *Spec) Validate() error {
	if len(s.peerIdxs) != len(s.materialParams) {
		return fmt.Errorf("%w: %d peer indices, %d parameter tuples", ErrLengthMismatch, len(s.peerIdxs), len(s.materialParams))
	}
	return nil
}

// Clone returns a deep copy of the spec
func (s *Spec) Clone() *Spec {
	return &Spec{
		masterIdx:      s.masterIdx,
		peerIdxs:       append([]int(nil), s.peerIdxs...),
		materialParams: append([]MaterialParams(nil), s.materialParams...),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see streamable.Streamable)
// --------------------------------------------------------------------------

func (s *Spec) StreamableClassID() int {
	return classID.Get()
}

func (s *Spec) DataStreamSize() int {
	return dataStreamSize(s.NumRods())
}

// PackStream writes the rod count, the master index, the peer indices and
// the material parameters. The layout must match Factory.UnpackStream.
// On error nothing is left in w.
func (s *Spec) PackStream(w *stream.Writer) error {
	if err := s.Validate(); err != nil {
		return err
	}
	start := w.Len()
	if err := s.pack(w); err != nil {
		w.Truncate(start)
		return err
	}
	return nil
}

func (s *Spec) pack(w *stream.Writer) error {
	if err := w.WriteInt(s.NumRods()); err != nil {
		return fmt.Errorf("error writing rod count: %w", err)
	}
	if err := w.WriteInt(s.masterIdx); err != nil {
		return fmt.Errorf("error writing master index: %w", err)
	}
	if err := w.WriteInts(s.peerIdxs); err != nil {
		return fmt.Errorf("error writing peer indices: %w", err)
	}
	for i := range s.materialParams {
		w.WriteDoubles(s.materialParams[i][:])
	}
	return nil
}

// rodSize is the packed size of one rod (peer index and parameter tuple)
const rodSize = stream.IntSize + NumMaterialParams*stream.DoubleSize

// dataStreamSize is the packed size of a spec with numRods rods:
// rod count and master index followed by one peer index and one parameter tuple per rod
func dataStreamSize(numRods int) int {
	return 2*stream.IntSize + numRods*rodSize
}

var _ streamable.Streamable = (*Spec)(nil)
