package lrgen

import (
	"sync/atomic"

	"github.com/npillmayer/lrgen/lr/lr1"
)

// Snapshot holds the pipeline currently in use. Store replaces it
// atomically; parses already running continue with the pipeline they
// started with.
type Snapshot struct {
	current atomic.Pointer[Pipeline]
}

// NewSnapshot creates a snapshot holding p, which may be nil.
func NewSnapshot(p *Pipeline) *Snapshot {
	s := &Snapshot{}
	if p != nil {
		s.current.Store(p)
	}
	return s
}

// Load returns the current pipeline, or nil.
func (s *Snapshot) Load() *Pipeline {
	return s.current.Load()
}

// Store replaces the current pipeline and returns the previous one.
func (s *Snapshot) Store(p *Pipeline) *Pipeline {
	return s.current.Swap(p)
}

// Parse parses tokens with the current pipeline. Without a pipeline, the
// result carries lr1.ErrNotInitialized.
func (s *Snapshot) Parse(tokens []string) Result {
	p := s.current.Load()
	if p == nil {
		return Result{Err: lr1.ErrNotInitialized}
	}
	return p.Parse(tokens)
}
