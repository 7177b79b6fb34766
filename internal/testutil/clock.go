// Package testutil holds deterministic helpers shared by package tests and
// the conformance harness.
package testutil

import "sync"

// SeqClock is a resettable logical clock. It satisfies pipeline.Sequencer,
// so a scenario can be replayed with identical seq values.
type SeqClock struct {
	mu    sync.Mutex
	start int64
	seq   int64
}

// NewSeqClock returns a clock whose first Next is start+1.
func NewSeqClock(start int64) *SeqClock {
	return &SeqClock{start: start, seq: start}
}

// Next increments and returns the sequence number.
func (c *SeqClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the last value handed out, or start.
func (c *SeqClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds to the starting value.
func (c *SeqClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = c.start
}
