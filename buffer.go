package options

import "io"

// inputBuffer is the unread-byte window over one file's contents.
// Unlike the reference implementation, whose refill is a documented
// stub, this one actually pulls further bytes from src on demand: it
// appends to data (never relocating already-handed-out offsets, see
// SPEC_FULL.md §3) so that every token's first/size pair, computed
// once at scan time, stays valid for the token's entire lifetime on
// the stack.
type inputBuffer struct {
	data     []byte
	filled   int
	consumed int
	src      io.Reader
	eof      bool
}

// refill reads one more chunk from src, appending it to data. It
// returns whether any bytes were read. A string-backed buffer (src
// == nil) always reports eof immediately, matching the "buffer cannot
// grow" half of spec.md §4.2 for in-memory input.
func (b *inputBuffer) refill() (bool, error) {
	if b.src == nil {
		b.eof = true
		return false, nil
	}
	if b.eof {
		return false, nil
	}
	chunk := make([]byte, 4096)
	n, err := b.src.Read(chunk)
	if n > 0 {
		b.data = append(b.data, chunk[:n]...)
		b.filled += n
	}
	switch {
	case err == io.EOF:
		b.eof = true
		return n > 0, nil
	case err != nil:
		return n > 0, err
	default:
		return n > 0, nil
	}
}
