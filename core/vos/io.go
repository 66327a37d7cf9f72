package vos

import (
	"io"
	"sync"
)

// SyncWriter serializes writes to an underlying writer shared by several
// producers, such as a session and the line editor drawing its prompt.
type SyncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

var _ io.Writer = (*SyncWriter)(nil)

// NewSyncWriter wraps w, a nil w discards everything.
func NewSyncWriter(w io.Writer) *SyncWriter {
	return &SyncWriter{w: orDiscard(w)}
}

func (s *SyncWriter) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(b)
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return &devNull{}
	}
	return w
}

// devNull discards writes.
type devNull struct{}

var _ io.Writer = (*devNull)(nil)

func (*devNull) Write(b []byte) (int, error) {
	return len(b), nil
}
