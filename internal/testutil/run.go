package testutil

import "sync"

// RunToken is a run token generator that always yields the same token, so
// every engine built from it records identical artifact IDs.
type RunToken string

// DefaultRunToken is used when a case names no token.
const DefaultRunToken RunToken = "test-run-default"

// Generate implements engine.RunTokenGenerator.
func (r RunToken) Generate() string {
	if r == "" {
		return string(DefaultRunToken)
	}
	return string(r)
}

// SeqClock is an engine.Sequencer that can be rewound between runs.
type SeqClock struct {
	mu  sync.Mutex
	seq int64
}

func NewSeqClock() *SeqClock { return &SeqClock{} }

func (c *SeqClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Rewind makes the next seq 1 again.
func (c *SeqClock) Rewind() {
	c.mu.Lock()
	c.seq = 0
	c.mu.Unlock()
}
