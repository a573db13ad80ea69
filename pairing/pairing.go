// Package pairing implements the look-ahead rule that pairs a Master
// physical frame with its following Slave reply, or with nothing when the
// next frame is itself a Master.
package pairing

import (
	"github.com/mvbdecode/mvbdecode/errs"
	"github.com/mvbdecode/mvbdecode/physical"
)

// Record is one paired output: a Master frame and its optional Slave reply.
type Record struct {
	Master *physical.Frame
	Slave  *physical.Frame // nil when no slave frame followed
}

// Reader is anything that can produce the next decoded physical frame.
type Reader interface {
	ReadFrame() (*physical.Frame, error)
}

// Pairer buffers at most one look-ahead frame to implement the pairing
// rule: a master with no slave reply is immediately followed by the next
// master.
type Pairer struct {
	r        Reader
	pending  *physical.Frame
	drained  bool // a dangling master was already emitted; next call is EndOfStream
}

// NewPairer creates a Pairer reading frames from r.
func NewPairer(r Reader) *Pairer {
	return &Pairer{r: r}
}

// Next produces the next pairing Record. On a recoverable error (framing
// or protocol), the caller should log it and call Next again; pairing
// state is already drained by the time Next returns an error.
func (p *Pairer) Next() (*Record, error) {
	if p.drained {
		return nil, physical.ErrEndOfStream
	}

	a := p.pending
	p.pending = nil
	if a == nil {
		f, err := p.r.ReadFrame()
		if err != nil {
			return nil, err
		}
		a = f
	}

	if a.Kind != physical.Master {
		return nil, errs.NewProtocol("expected master frame, got %s", a.Kind)
	}

	b, err := p.r.ReadFrame()
	if err != nil {
		if err == physical.ErrEndOfStream {
			// A dangling master with no slave reply because the
			// stream ended is still a valid, emittable record;
			// report EndOfStream on the following call.
			p.drained = true
			return &Record{Master: a}, nil
		}
		return nil, err
	}

	if b.Kind == physical.Master {
		p.pending = b
		return &Record{Master: a}, nil
	}

	return &Record{Master: a, Slave: b}, nil
}
