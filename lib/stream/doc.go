// Package stream provides the byte-stream container used to pack and unpack
// node data records. A Writer appends typed values to a growing buffer and a
// Reader consumes them again with an advancing cursor.
//
// Wire Format:
//
//	All values are written big-endian without any framing or type markers;
//	the reader must know the schema of what it reads.
//
//	  int    4 bytes  two's-complement int32
//	  double 8 bytes  IEEE-754 float64 bits
//
// Truncation:
//
//	Every read checks the remaining length before touching the buffer or
//	allocating memory for the result. A read that cannot be satisfied returns
//	an error wrapping ErrTruncated and leaves the cursor where it was.
//
// Thread Safety:
//
//	Writers and Readers are not safe for concurrent use.
package stream
