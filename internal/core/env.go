package core

import (
	"os"
	"time"

	"github.com/google/uuid"
)

// Environment bundles the ambient capabilities the aggregate needs: wall
// clock, machine hostname, and unique-id generation. Operations never reach
// for these globally, so tests can pin all three.
type Environment struct {
	Now      func() time.Time
	Hostname func() string
	NewID    func() string
}

// DefaultEnvironment returns the production capability set: UTC wall clock,
// os.Hostname, and random UUIDs.
func DefaultEnvironment() Environment {
	return Environment{
		Now: func() time.Time { return time.Now().UTC() },
		Hostname: func() string {
			h, err := os.Hostname()
			if err != nil {
				return "localhost"
			}
			return h
		},
		NewID: uuid.NewString,
	}
}

// normalize fills any nil capability with its default so partial test
// environments stay usable.
func (e Environment) normalize() Environment {
	def := DefaultEnvironment()
	if e.Now == nil {
		e.Now = def.Now
	}
	if e.Hostname == nil {
		e.Hostname = def.Hostname
	}
	if e.NewID == nil {
		e.NewID = def.NewID
	}
	return e
}
