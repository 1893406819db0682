package driver

import (
	"sync"

	"github.com/sarchlab/instclass/classify"
)

// Sink receives the result of each classified function.
type Sink interface {
	// Deliver takes one result. Returning an error stops the run.
	Deliver(res *classify.Result) error
}

// MemorySink keeps results in delivery order.
type MemorySink struct {
	mu      sync.Mutex
	results []*classify.Result
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Deliver appends the result.
func (s *MemorySink) Deliver(res *classify.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = append(s.results, res)
	return nil
}

// Results returns the delivered results.
func (s *MemorySink) Results() []*classify.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*classify.Result, len(s.results))
	copy(out, s.results)
	return out
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(res *classify.Result) error

// Deliver calls f(res).
func (f SinkFunc) Deliver(res *classify.Result) error {
	return f(res)
}
