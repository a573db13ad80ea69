package pipeline

import (
	"bufio"
	"io"

	"github.com/mvbdecode/mvbdecode/pairing"
	"github.com/mvbdecode/mvbdecode/physical"
	"github.com/mvbdecode/mvbdecode/sample"
	"github.com/mvbdecode/mvbdecode/telegram"
)

// RecordReader produces the raw byte payload of successive pairing records:
// a master frame's bytes and, when present, its paired slave frame's bytes.
// On error, t is a best-effort current stream time suitable for a stderr
// diagnostic.
type RecordReader interface {
	Next() (t float64, master, slave []byte, err error)
}

// decodeReader drives SampleSource -> PhysicalDecoder -> Pairing, the
// "decode" command's full raw-sample path.
type decodeReader struct {
	pairer *pairing.Pairer
	lastT  float64
}

// NewDecodeReader builds a RecordReader over a raw sample source.
func NewDecodeReader(src sample.Source) RecordReader {
	return &decodeReader{pairer: pairing.NewPairer(physical.NewDecoder(src))}
}

func (d *decodeReader) Next() (float64, []byte, []byte, error) {
	rec, err := d.pairer.Next()
	if err != nil {
		return d.lastT, nil, nil, err
	}
	d.lastT = rec.Master.TStart
	var slave []byte
	if rec.Slave != nil {
		slave = rec.Slave.Bytes
	}
	return rec.Master.TStart, rec.Master.Bytes, slave, nil
}

// csvReader drives the intermediate-CSV-only path used by the "parse"
// command, skipping physical decode entirely.
type csvReader struct {
	scanner *bufio.Scanner
	lastT   float64
}

// NewCSVReader builds a RecordReader over lines of the intermediate
// "t,master_hex,slave_hex" format.
func NewCSVReader(r io.Reader) RecordReader {
	return &csvReader{scanner: bufio.NewScanner(r)}
}

func (c *csvReader) Next() (float64, []byte, []byte, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return c.lastT, nil, nil, err
		}
		return c.lastT, nil, nil, physical.ErrEndOfStream
	}

	line := c.scanner.Text()
	if line == "" {
		return c.Next()
	}

	t, master, slave, err := telegram.DecodeCSVLine(line)
	if err != nil {
		return c.lastT, nil, nil, err
	}
	c.lastT = t
	return t, master, slave, nil
}
