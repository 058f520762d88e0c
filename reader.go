package turbopfor

import (
	"errors"
	"slices"
)

// Reader provides random access to a single decoded block, in the teacher's
// decode-once-then-index style (see the teacher's old reader.go). A Reader
// is not safe for concurrent use; create one per goroutine that needs
// access to the same block.
type Reader struct {
	values   []uint32
	pos      int
	count    int
	isSorted bool
	loaded   bool
}

// NewReader creates an empty Reader that must be loaded before use.
func NewReader() *Reader {
	return &Reader{}
}

// Load decodes a block written by EncodeBlock (n <= 127 values) starting
// from start, and makes the result available for random access.
func (r *Reader) Load(buf []byte, n int, start uint32) error {
	if cap(r.values) < n {
		r.values = make([]uint32, n)
	} else {
		r.values = r.values[:n]
	}
	if _, err := DecodeDeltaBlock(r.values, buf, n, start); err != nil {
		return err
	}
	return r.finishLoad(n)
}

// LoadBlock128v decodes a block written by EncodeBlock128v (exactly 128
// values) starting from start.
func (r *Reader) LoadBlock128v(buf []byte, start uint32) error {
	var out [128]uint32
	if _, err := DecodeDeltaBlock128v(&out, buf, start); err != nil {
		return err
	}
	r.values = append(r.values[:0], out[:]...)
	return r.finishLoad(128)
}

// LoadBlock256v decodes a block written by EncodeBlock256v (exactly 256
// values) starting from start.
func (r *Reader) LoadBlock256v(buf []byte, start uint32) error {
	var out [256]uint32
	if _, err := DecodeDeltaBlock256v(&out, buf, start); err != nil {
		return err
	}
	r.values = append(r.values[:0], out[:]...)
	return r.finishLoad(256)
}

func (r *Reader) finishLoad(n int) error {
	r.count = n
	r.pos = 0
	r.loaded = true
	r.isSorted = slices.IsSorted(r.values[:n])
	return nil
}

// IsLoaded returns whether the reader has been loaded with data.
func (r *Reader) IsLoaded() bool {
	return r.loaded
}

// Len returns the number of elements in the loaded block.
func (r *Reader) Len() int {
	return r.count
}

// Pos returns the current position for sequential iteration.
func (r *Reader) Pos() int {
	return r.pos
}

// Reset resets the reader position to the beginning for sequential iteration.
func (r *Reader) Reset() {
	r.pos = 0
}

// Get returns the value at the specified position.
func (r *Reader) Get(pos int) (uint32, error) {
	if !r.loaded {
		return 0, ErrNotLoaded
	}
	if pos < 0 || pos >= r.count {
		return 0, ErrPositionOutOfRange
	}
	return r.values[pos], nil
}

// GetSafe returns the value at the specified position and whether pos was
// in range. It returns (0, false) instead of an error.
func (r *Reader) GetSafe(pos int) (uint32, bool) {
	val, err := r.Get(pos)
	return val, err == nil
}

// Next returns the next value in sequence and its position, or
// (0, 0, false) once the block is exhausted.
func (r *Reader) Next() (value uint32, pos int, ok bool) {
	if !r.loaded || r.pos >= r.count {
		return 0, 0, false
	}
	value = r.values[r.pos]
	pos = r.pos
	r.pos++
	return value, pos, true
}

// SkipTo advances to, and returns, the first value >= req at or after the
// current position. Decoded delta-1 blocks are strictly increasing unless
// the running sum wraps past 2^32-1; SkipTo uses binary search when the
// loaded block is sorted and a linear scan otherwise.
func (r *Reader) SkipTo(req uint32) (value uint32, pos int, ok bool) {
	if !r.loaded || r.pos >= r.count {
		return 0, 0, false
	}
	if r.isSorted {
		idx, _ := slices.BinarySearch(r.values[r.pos:], req)
		absPos := r.pos + idx
		if absPos >= r.count {
			r.pos = r.count
			return 0, 0, false
		}
		r.pos = absPos + 1
		return r.values[absPos], absPos, true
	}
	for r.pos < r.count {
		v := r.values[r.pos]
		p := r.pos
		r.pos++
		if v >= req {
			return v, p, true
		}
	}
	return 0, 0, false
}

// Decode copies all decoded values into dst, growing it if necessary, and
// returns the (possibly reallocated) slice.
func (r *Reader) Decode(dst []uint32) []uint32 {
	if !r.loaded {
		return nil
	}
	if cap(dst) < r.count {
		dst = make([]uint32, r.count)
	} else {
		dst = dst[:r.count]
	}
	copy(dst, r.values)
	return dst
}

// IsSorted reports whether the decoded block is monotonically increasing.
func (r *Reader) IsSorted() bool {
	return r.isSorted
}

// ErrNotLoaded is returned when a Reader method is called before Load.
var ErrNotLoaded = errors.New("turbopfor: reader not loaded")

// ErrPositionOutOfRange is returned when accessing a position beyond the
// loaded block's length.
var ErrPositionOutOfRange = errors.New("turbopfor: position out of range")
