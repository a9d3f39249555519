package worker

import (
	"bytes"
	"context"
	"sync"
)

// cappedBuffer buffers subprocess output up to a byte limit. Hitting the
// limit cancels the subprocess context and discards further writes, so a
// runaway worker can neither exhaust memory nor deadlock the pipe copy.
type cappedBuffer struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	remaining int64
	truncated bool
	cancel    context.CancelFunc
}

func newCappedBuffer(limit int64, cancel context.CancelFunc) *cappedBuffer {
	return &cappedBuffer{remaining: limit, cancel: cancel}
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.truncated {
		return len(p), nil
	}
	if int64(len(p)) > b.remaining {
		b.buf.Write(p[:b.remaining])
		b.remaining = 0
		b.truncated = true
		if b.cancel != nil {
			b.cancel()
		}
		return len(p), nil
	}
	b.buf.Write(p)
	b.remaining -= int64(len(p))
	return len(p), nil
}

func (b *cappedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]byte, b.buf.Len())
	copy(out, b.buf.Bytes())
	return out
}

func (b *cappedBuffer) Truncated() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.truncated
}
