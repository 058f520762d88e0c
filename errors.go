package turbopfor

import "errors"

// ErrTruncatedInput is returned when a buffer ends before a block's declared
// payload has been fully consumed.
var ErrTruncatedInput = errors.New("turbopfor: truncated input")

// ErrMalformedHeader is returned when a control byte encodes a combination
// that cannot occur in a well-formed stream (for example a constant-block
// parameter greater than 32 bits).
var ErrMalformedHeader = errors.New("turbopfor: malformed header")

// ErrBufferTooSmall is returned when a caller-supplied destination buffer
// cannot hold the operation's output.
var ErrBufferTooSmall = errors.New("turbopfor: buffer too small")
