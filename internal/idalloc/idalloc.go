// Package idalloc provides the typed-prefix id allocation service consumed by
// the genome aggregate. Each prefix (e.g. "83333.1.CDS") owns a monotonic
// integer sequence; an allocation reserves a half-open range and returns its
// first value. Backends must never hand overlapping ranges to concurrent
// callers of the same prefix.
package idalloc

import (
	"context"
	"fmt"
	"sync"
)

// Allocator reserves ranges of ids for typed prefixes.
type Allocator interface {
	// AllocateIDRange reserves count consecutive ids for prefix and returns
	// the first. Sequences start at 1 and only ever move forward.
	AllocateIDRange(ctx context.Context, prefix string, count int) (int, error)
}

// Memory is a process-local Allocator. Suitable for tests and single-shot
// imports where persistence across restarts does not matter.
type Memory struct {
	mu   sync.Mutex
	next map[string]int
}

// NewMemory returns an empty in-memory allocator.
func NewMemory() *Memory {
	return &Memory{next: make(map[string]int)}
}

// AllocateIDRange reserves count ids for prefix.
func (m *Memory) AllocateIDRange(_ context.Context, prefix string, count int) (int, error) {
	if err := validateRequest(prefix, count); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	start, ok := m.next[prefix]
	if !ok {
		start = 1
	}
	m.next[prefix] = start + count
	return start, nil
}

func validateRequest(prefix string, count int) error {
	if prefix == "" {
		return fmt.Errorf("allocate id range: empty prefix")
	}
	if count < 1 {
		return fmt.Errorf("allocate id range %s: count %d < 1", prefix, count)
	}
	return nil
}
