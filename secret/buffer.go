package secret

import "runtime"

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	// Keep b reachable until the loop has run so the stores are not elided.
	runtime.KeepAlive(b)
}

// Buffer owns a copy of password material for the duration of one
// operation.  Release zeroes it; call it with defer right after
// construction so it runs on every exit path:
//
//	buf := secret.NewBuffer(password)
//	defer buf.Release()
//
// Release is idempotent.  The zero value is an empty, released buffer.
type Buffer struct {
	b []byte
}

// NewBuffer takes ownership of b.  The caller must not use b afterwards.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{b: b}
}

// BufferFromString copies s into a new Buffer.  The string itself cannot be
// wiped; only the copy is.
func BufferFromString(s string) *Buffer {
	b := make([]byte, len(s))
	copy(b, s)
	return &Buffer{b: b}
}

// Bytes returns the underlying slice.  It is nil after Release.
func (b *Buffer) Bytes() []byte {
	return b.b
}

// Len returns the number of bytes held.
func (b *Buffer) Len() int {
	return len(b.b)
}

// Release zeroes and drops the underlying bytes.
func (b *Buffer) Release() {
	if b == nil || b.b == nil {
		return
	}
	Wipe(b.b)
	b.b = nil
}
