package handlers

import (
	"context"
	"fmt"

	"github.com/caigo-ai/caigo/providers/ai"
)

// Fanout delivers every fragment to a list of sinks in declared order. The
// first sink error stops delivery for that fragment and fails the stream;
// later sinks do not see the fragment.
type Fanout struct {
	sinks []ai.MutHandler
}

// NewFanout returns a Fanout over the given sinks. Order is preserved.
func NewFanout(sinks ...ai.MutHandler) *Fanout {
	return &Fanout{sinks: sinks}
}

// HandleMut implements [ai.MutHandler].
func (f *Fanout) HandleMut(ctx context.Context, fragment string) error {
	for i, sink := range f.sinks {
		if err := sink.HandleMut(ctx, fragment); err != nil {
			return fmt.Errorf("fanout sink %d failed: %w", i, err)
		}
	}
	return nil
}
