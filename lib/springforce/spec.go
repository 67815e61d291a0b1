package springforce

import (
	"errors"
	"fmt"

	"github.com/ValentinKolb/forcespec/lib/stream"
	"github.com/ValentinKolb/forcespec/lib/streamable"
)

// ErrLengthMismatch is returned when the per-spring sequences differ in length
var ErrLengthMismatch = errors.New("per-spring sequences differ in length")

// Spec holds the springs anchored at one master node
type Spec struct {
	masterIdx    int
	peerIdxs     []int
	forceFcnIdxs []int
	parameters   [][]float64
}

// NewSpecFrom creates a fully populated spec. All slices are copied.
func NewSpecFrom(masterIdx int, peerIdxs, forceFcnIdxs []int, parameters [][]float64) (*Spec, error) {
	s := &Spec{masterIdx: masterIdx}
	if err := s.SetSprings(peerIdxs, forceFcnIdxs, parameters); err != nil {
		return nil, err
	}
	return s, nil
}

// NumSprings returns the number of springs attached to the master node
func (s *Spec) NumSprings() int {
	return len(s.peerIdxs)
}

// MasterIndex returns the index of the node owning the springs
func (s *Spec) MasterIndex() int {
	return s.masterIdx
}

// SetMasterIndex renumbers the master node in place
func (s *Spec) SetMasterIndex(idx int) {
	s.masterIdx = idx
}

// PeerIndices returns the other endpoint of every spring (aliases storage)
func (s *Spec) PeerIndices() []int {
	return s.peerIdxs
}

// ForceFunctionIndices returns the force function index of every spring (aliases storage)
func (s *Spec) ForceFunctionIndices() []int {
	return s.forceFcnIdxs
}

// Parameters returns the parameter vector of every spring (aliases storage)
func (s *Spec) Parameters() [][]float64 {
	return s.parameters
}

// AddSpring appends a spring. The parameter slice is copied.
func (s *Spec) AddSpring(peerIdx, forceFcnIdx int, params []float64) {
	s.peerIdxs = append(s.peerIdxs, peerIdx)
	s.forceFcnIdxs = append(s.forceFcnIdxs, forceFcnIdx)
	s.parameters = append(s.parameters, append([]float64{}, params...))
}

// SetSprings replaces all springs. The slices are copied.
func (s *Spec) SetSprings(peerIdxs, forceFcnIdxs []int, parameters [][]float64) error {
	if len(peerIdxs) != len(forceFcnIdxs) || len(peerIdxs) != len(parameters) {
		return fmt.Errorf("%w: %d peers, %d force functions, %d parameter vectors",
			ErrLengthMismatch, len(peerIdxs), len(forceFcnIdxs), len(parameters))
	}
	s.peerIdxs = append(make([]int, 0, len(peerIdxs)), peerIdxs...)
	s.forceFcnIdxs = append(make([]int, 0, len(forceFcnIdxs)), forceFcnIdxs...)
	s.parameters = make([][]float64, len(parameters))
	for i, p := range parameters {
		s.parameters[i] = append([]float64{}, p...)
	}
	return nil
}

// Validate checks that all per-spring sequences have the same length
func (s *Spec) Validate() error {
	n := len(s.peerIdxs)
	if len(s.forceFcnIdxs) != n || len(s.parameters) != n {
		return fmt.Errorf("%w: %d peers, %d force functions, %d parameter vectors",
			ErrLengthMismatch, n, len(s.forceFcnIdxs), len(s.parameters))
	}
	return nil
}

// Clone returns a deep copy of the spec
func (s *Spec) Clone() *Spec {
	c := &Spec{masterIdx: s.masterIdx}
	c.peerIdxs = append([]int{}, s.peerIdxs...)
	c.forceFcnIdxs = append([]int{}, s.forceFcnIdxs...)
	c.parameters = make([][]float64, len(s.parameters))
	for i, p := range s.parameters {
		c.parameters[i] = append([]float64{}, p...)
	}
	return c
}

// --------------------------------------------------------------------------
// Interface Methods (docu see streamable.Streamable)
// --------------------------------------------------------------------------

func (s *Spec) StreamableClassID() int {
	return classID.Get()
}

// DataStreamSize returns the exact packed size of the spec
func (s *Spec) DataStreamSize() int {
	size := (2 + 2*len(s.peerIdxs)) * stream.IntSize
	for _, p := range s.parameters {
		size += stream.IntSize + len(p)*stream.DoubleSize
	}
	return size
}

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
	if err := w.WriteInt(s.NumSprings()); err != nil {
		return fmt.Errorf("error writing spring count: %w", err)
	}
	if err := w.WriteInt(s.masterIdx); err != nil {
		return fmt.Errorf("error writing master index: %w", err)
	}
	if err := w.WriteInts(s.peerIdxs); err != nil {
		return fmt.Errorf("error writing peer indices: %w", err)
	}
	if err := w.WriteInts(s.forceFcnIdxs); err != nil {
		return fmt.Errorf("error writing force function indices: %w", err)
	}
	for i, p := range s.parameters {
		if err := w.WriteInt(len(p)); err != nil {
			return fmt.Errorf("error writing parameter count of spring %d: %w", i, err)
		}
		w.WriteDoubles(p)
	}
	return nil
}

var _ streamable.Streamable = (*Spec)(nil)
