package fakeweb

import (
	"bytes"
	"sync"
)

// Output is the writable body of a fake response. Once closed, every operation returns
// ErrDisposed.
type Output struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

func NewOutput() *Output {
	return &Output{}
}

func (o *Output) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return 0, ErrDisposed
	}
	return o.buf.Write(p)
}

func (o *Output) WriteString(s string) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return 0, ErrDisposed
	}
	return o.buf.WriteString(s)
}

// ContentBytes returns a copy of everything written so far.
func (o *Output) ContentBytes() ([]byte, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil, ErrDisposed
	}
	return bytes.Clone(o.buf.Bytes()), nil
}

// ContentString returns everything written so far, decoded as UTF-8.
func (o *Output) ContentString() (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return "", ErrDisposed
	}
	return o.buf.String(), nil
}

func (o *Output) Len() (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return 0, ErrDisposed
	}
	return o.buf.Len(), nil
}

// Clear discards the content written so far.
func (o *Output) Clear() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return ErrDisposed
	}
	o.buf.Reset()
	return nil
}

// Close releases the buffer. Calling it more than once is harmless.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	o.buf = bytes.Buffer{}
	return nil
}

func (o *Output) IsClosed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}
