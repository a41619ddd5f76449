package engine

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// RunTokenGenerator draws the token that names a run. An Engine calls it
// exactly once.
type RunTokenGenerator interface {
	Generate() string
}

// UUIDv7Generator draws UUIDv7 tokens. Their leading bits are a millisecond
// timestamp, which is what lets the history list runs newest first by
// comparing tokens.
type UUIDv7Generator struct{}

// Generate returns a hyphenated UUIDv7. It panics only if the system
// random source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Sequencer stamps artifacts with their seq. Values must increase
// strictly within one run.
type Sequencer interface {
	Next() int64
}

// Clock is the default Sequencer. The first seq it hands out is 1.
// Safe for concurrent use.
type Clock struct {
	last atomic.Int64
}

// NewClock returns a clock that has handed out nothing yet.
func NewClock() *Clock {
	return &Clock{}
}

func (c *Clock) Next() int64 {
	return c.last.Add(1)
}
