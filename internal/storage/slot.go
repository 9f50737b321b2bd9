package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound reports that the slot holds no saved value yet.
var ErrNotFound = errors.New("slot value not found")

// Slot is a durable key-value cell holding the serialized cart.
// Save replaces the previous value; Load returns ErrNotFound when
// nothing has been saved under the key.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, value []byte) error
}

type memorySlot struct {
	mu    sync.Mutex
	value []byte
	set   bool
}

// NewMemorySlot returns a process-local Slot. Used as the default
// backend and in tests.
func NewMemorySlot() Slot {
	return &memorySlot{}
}

func (s *memorySlot) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.set {
		return nil, ErrNotFound
	}
	return append([]byte(nil), s.value...), nil
}

func (s *memorySlot) Save(ctx context.Context, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = append([]byte(nil), value...)
	s.set = true
	return nil
}
