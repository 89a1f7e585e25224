// Package handlers provides ready-made sinks for streamed response
// fragments. All of them satisfy [ai.MutHandler]; Printer additionally
// satisfies the read-only [ai.Handler].
package handlers

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
)

// Printer writes fragments to a writer as they arrive, flushing after each
// one so partial responses show up immediately.
type Printer struct {
	mu  sync.Mutex
	out *bufio.Writer
}

// NewPrinter returns a Printer writing to stdout.
func NewPrinter() *Printer {
	return NewPrinterTo(os.Stdout)
}

// NewPrinterTo returns a Printer writing to w.
func NewPrinterTo(w io.Writer) *Printer {
	return &Printer{out: bufio.NewWriter(w)}
}

// Handle implements [ai.Handler].
func (p *Printer) Handle(_ context.Context, fragment string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.out.WriteString(fragment); err != nil {
		return err
	}
	return p.out.Flush()
}

// HandleMut implements [ai.MutHandler].
func (p *Printer) HandleMut(ctx context.Context, fragment string) error {
	return p.Handle(ctx, fragment)
}
