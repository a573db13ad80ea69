// Package pipeline wires SampleSource/CSV input through the physical
// decoder, pairing, and telegram parser into a stream of paired telegram
// Records, applying a fixed error disposition: clean termination on
// EndOfStream, a fatal abort on InvalidSkip, and log-and-resume for
// FramingError/CrcMismatch/ProtocolError.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mvbdecode/mvbdecode/aggregator"
	"github.com/mvbdecode/mvbdecode/crc"
	"github.com/mvbdecode/mvbdecode/errs"
	"github.com/mvbdecode/mvbdecode/physical"
	"github.com/mvbdecode/mvbdecode/sample"
	"github.com/mvbdecode/mvbdecode/telegram"
)

// Record is one fully parsed pairing record: a master telegram and its
// optional slave reply.
type Record struct {
	T      float64
	Master *telegram.MasterFrame
	Slave  telegram.Telegram // nil when no slave frame was paired or it failed to parse

	// RawMaster/RawSlave are the frame byte payloads behind Master/Slave,
	// retained so callers can re-emit the intermediate bit-exact CSV
	// format alongside the parsed telegram view.
	RawMaster []byte
	RawSlave  []byte
}

// Pipeline turns a RecordReader's raw byte records into parsed Records,
// recovering from FramingError/CrcMismatch/ProtocolError by logging each one
// to stderr and carrying on.
type Pipeline struct {
	rr     RecordReader
	stderr io.Writer
	agg    *aggregator.Aggregator
}

// New builds a Pipeline. agg may be nil if process variable tracking isn't
// needed (e.g. the "decode"/"parse" render paths, as opposed to "stats").
func New(rr RecordReader, stderr io.Writer, agg *aggregator.Aggregator) *Pipeline {
	return &Pipeline{rr: rr, stderr: stderr, agg: agg}
}

// Next returns the next successfully parsed Record. It returns
// physical.ErrEndOfStream on clean termination, or a fatal error
// (*sample.InvalidSkipError, or an underlying I/O error) that the caller
// must abort on with a non-zero exit code.
func (p *Pipeline) Next() (*Record, error) {
	for {
		t, masterBytes, slaveBytes, err := p.rr.Next()
		if err != nil {
			if err == physical.ErrEndOfStream || err == sample.ErrEndOfStream {
				return nil, physical.ErrEndOfStream
			}
			var invalidSkip *sample.InvalidSkipError
			if errors.As(err, &invalidSkip) {
				return nil, invalidSkip
			}
			if !isRecoverable(err) {
				return nil, err
			}
			p.logRecoverable(t, err)
			continue
		}

		master, err := telegram.ParseMasterFrame(t, masterBytes)
		if err != nil {
			p.logRecoverable(t, err)
			continue
		}

		var slaveTelegram telegram.Telegram
		if slaveBytes != nil {
			slaveTelegram, err = telegram.ParseSlaveFrame(slaveBytes, master)
			if err != nil {
				p.logRecoverable(t, err)
				slaveTelegram = nil
			}
		}

		if p.agg != nil {
			if pd, ok := slaveTelegram.(*telegram.ProcessDataResponse); ok {
				p.agg.Observe(pd.Port, t, pd.Data)
			}
		}

		return &Record{T: t, Master: master, Slave: slaveTelegram, RawMaster: masterBytes, RawSlave: slaveBytes}, nil
	}
}

// isRecoverable reports whether err is one of the recoverable kinds
// (FramingError, CrcMismatch, ProtocolError) rather than an unexpected
// fatal source error (e.g. a broken pipe on a live device).
func isRecoverable(err error) bool {
	if errs.IsFraming(err) || errs.IsProtocol(err) {
		return true
	}
	var mismatch *crc.MismatchError
	return errors.As(err, &mismatch)
}

func errorKind(err error) string {
	var mismatch *crc.MismatchError
	switch {
	case errors.As(err, &mismatch):
		return "CrcMismatch"
	case errs.IsFraming(err):
		return "FramingError"
	case errs.IsProtocol(err):
		return "ProtocolError"
	default:
		return "Error"
	}
}

func (p *Pipeline) logRecoverable(t float64, err error) {
	fmt.Fprintf(p.stderr, "t=%gs :: %s: %s\n", t, errorKind(err), err)
}

// Run drives the Pipeline until EndOfStream, a fatal error, or ctx is
// cancelled, calling render for each produced Record. maxRecords <= 0 means
// unbounded. ctx is polled only at record boundaries: this is the
// idiomatic shape of "stop after the current record" for Ctrl-C handling,
// not a concurrent-cancellation of work in flight.
func Run(ctx context.Context, p *Pipeline, maxRecords int, render func(*Record) error) error {
	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if maxRecords > 0 && count >= maxRecords {
			return nil
		}

		rec, err := p.Next()
		if err != nil {
			if err == physical.ErrEndOfStream {
				return nil
			}
			return err
		}

		if err := render(rec); err != nil {
			return err
		}
		count++
	}
}
