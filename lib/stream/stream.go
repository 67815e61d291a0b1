package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	// IntSize is the number of bytes an int occupies on the wire
	IntSize = 4
	// DoubleSize is the number of bytes a double occupies on the wire
	DoubleSize = 8
)

var (
	// ErrTruncated is returned when the stream holds fewer bytes than a read requires
	ErrTruncated = errors.New("stream truncated")
	// ErrInvalidLength is returned when a negative element count is requested
	ErrInvalidLength = errors.New("invalid element count")
	// ErrIntOverflow is returned when an int does not fit into the wire format
	ErrIntOverflow = errors.New("int out of range for stream encoding")
)

// --------------------------------------------------------------------------
// Writer
// --------------------------------------------------------------------------

// Writer appends typed values to an in-memory buffer
type Writer struct {
	buf []byte
}

// NewWriter creates a writer whose buffer is pre-allocated to capacityHint bytes.
// Callers that know an upper bound of the data they are going to write
// (e.g. from DataStreamSize) should pass it here to avoid reallocation.
func NewWriter(capacityHint int) *Writer {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Writer{buf: make([]byte, 0, capacityHint)}
}

// Len returns the number of bytes written so far
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the written data. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Truncate discards everything written after the first n bytes.
// It is used to roll back a partially written record.
func (w *Writer) Truncate(n int) {
	if n < 0 || n > len(w.buf) {
		panic(fmt.Sprintf("stream: truncate to %d out of range [0, %d]", n, len(w.buf)))
	}
	w.buf = w.buf[:n]
}

// WriteInt writes a single int
func (w *Writer) WriteInt(v int) error {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return fmt.Errorf("%w: %d", ErrIntOverflow, v)
	}
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(int32(v)))
	return nil
}

// WriteInts writes all values of vs in order. Nothing is written if any value is out of range.
func (w *Writer) WriteInts(vs []int) error {
	for _, v := range vs {
		if v < math.MinInt32 || v > math.MaxInt32 {
			return fmt.Errorf("%w: %d", ErrIntOverflow, v)
		}
	}
	w.grow(len(vs) * IntSize)
	for _, v := range vs {
		w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(int32(v)))
	}
	return nil
}

// WriteDouble writes a single double
func (w *Writer) WriteDouble(v float64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, math.Float64bits(v))
}

// WriteDoubles writes all values of vs in order
func (w *Writer) WriteDoubles(vs []float64) {
	w.grow(len(vs) * DoubleSize)
	for _, v := range vs {
		w.buf = binary.BigEndian.AppendUint64(w.buf, math.Float64bits(v))
	}
}

// grow makes sure at least n more bytes fit without reallocation
func (w *Writer) grow(n int) {
	if cap(w.buf)-len(w.buf) >= n {
		return
	}
	buf := make([]byte, len(w.buf), 2*cap(w.buf)+n)
	copy(buf, w.buf)
	w.buf = buf
}

// --------------------------------------------------------------------------
// Reader
// --------------------------------------------------------------------------

// Reader consumes typed values from a byte slice
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a reader positioned at the start of data
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the number of bytes consumed so far
func (r *Reader) Offset() int {
	return r.pos
}

// Remaining returns the number of bytes not yet consumed
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadInt reads a single int
func (r *Reader) ReadInt() (int, error) {
	if r.Remaining() < IntSize {
		return 0, fmt.Errorf("%w: data too short for int (%d bytes left)", ErrTruncated, r.Remaining())
	}
	v := int32(binary.BigEndian.Uint32(r.data[r.pos : r.pos+IntSize]))
	r.pos += IntSize
	return int(v), nil
}

// ReadInts reads n ints
func (r *Reader) ReadInts(n int) ([]int, error) {
	if err := r.check(n, IntSize, "ints"); err != nil {
		return nil, err
	}
	vs := make([]int, n)
	for i := range vs {
		vs[i] = int(int32(binary.BigEndian.Uint32(r.data[r.pos : r.pos+IntSize])))
		r.pos += IntSize
	}
	return vs, nil
}

// ReadDouble reads a single double
func (r *Reader) ReadDouble() (float64, error) {
	if r.Remaining() < DoubleSize {
		return 0, fmt.Errorf("%w: data too short for double (%d bytes left)", ErrTruncated, r.Remaining())
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(r.data[r.pos : r.pos+DoubleSize]))
	r.pos += DoubleSize
	return v, nil
}

// ReadDoubles reads n doubles
func (r *Reader) ReadDoubles(n int) ([]float64, error) {
	if err := r.check(n, DoubleSize, "doubles"); err != nil {
		return nil, err
	}
	vs := make([]float64, n)
	r.readDoubles(vs)
	return vs, nil
}

// ReadDoublesInto fills dst with len(dst) doubles without allocating
func (r *Reader) ReadDoublesInto(dst []float64) error {
	if err := r.check(len(dst), DoubleSize, "doubles"); err != nil {
		return err
	}
	r.readDoubles(dst)
	return nil
}

func (r *Reader) readDoubles(dst []float64) {
	for i := range dst {
		dst[i] = math.Float64frombits(binary.BigEndian.Uint64(r.data[r.pos : r.pos+DoubleSize]))
		r.pos += DoubleSize
	}
}

// check validates that n elements of the given size can be read.
// The division avoids overflowing n*size for corrupted counts.
func (r *Reader) check(n, size int, what string) error {
	if n < 0 {
		return fmt.Errorf("%w: %d %s", ErrInvalidLength, n, what)
	}
	if n > r.Remaining()/size {
		return fmt.Errorf("%w: data too short for %d %s (%d bytes left)", ErrTruncated, n, what, r.Remaining())
	}
	return nil
}
