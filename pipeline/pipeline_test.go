package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/mvbdecode/mvbdecode/aggregator"
	"github.com/mvbdecode/mvbdecode/crc"
	"github.com/mvbdecode/mvbdecode/physical"
	"github.com/mvbdecode/mvbdecode/telegram"
)

// fakeReader replays a fixed sequence of raw records and errors.
type fakeReader struct {
	ts      []float64
	masters [][]byte
	slaves  [][]byte
	errs    []error
	i       int
}

func (f *fakeReader) Next() (float64, []byte, []byte, error) {
	if f.i >= len(f.masters) && (f.errs == nil || f.i >= len(f.errs)) {
		return 0, nil, nil, physical.ErrEndOfStream
	}
	idx := f.i
	f.i++
	if f.errs != nil && idx < len(f.errs) && f.errs[idx] != nil {
		return f.ts[idx], nil, nil, f.errs[idx]
	}
	return f.ts[idx], f.masters[idx], f.slaves[idx], nil
}

// fcode 0: AddressLogical, ProcessData, 16-bit slave payload.
func masterBytes(port int) []byte {
	b0 := byte(0<<4) | byte((port>>8)&0x0f)
	b1 := byte(port & 0xff)
	c := crc.Compute([]byte{b0, b1})
	return []byte{b0, b1, c}
}

func slaveBytes16(data []byte) []byte {
	c := crc.Compute(data)
	return append(append([]byte{}, data...), c)
}

func TestPipelineNextParsesMasterAndSlave(t *testing.T) {
	r := &fakeReader{
		ts:      []float64{1.0},
		masters: [][]byte{masterBytes(0x10)},
		slaves:  [][]byte{slaveBytes16([]byte{0xaa, 0xbb})},
	}
	var stderr bytes.Buffer
	p := New(r, &stderr, nil)

	rec, err := p.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if rec.Master.Address != 0x10 {
		t.Errorf("Address = 0x%x, want 0x10", rec.Master.Address)
	}
	pd, ok := rec.Slave.(*telegram.ProcessDataResponse)
	if !ok {
		t.Fatalf("Slave = %+v (%T), want *telegram.ProcessDataResponse", rec.Slave, rec.Slave)
	}
	if len(pd.Data) != 2 {
		t.Errorf("len(pd.Data) = %d, want 2", len(pd.Data))
	}
}

func TestPipelineNextSkipsBadMasterCRC(t *testing.T) {
	bad := masterBytes(0x10)
	bad[2] ^= 0xff // corrupt CRC
	good := masterBytes(0x20)

	r := &fakeReader{
		ts:      []float64{1.0, 2.0},
		masters: [][]byte{bad, good},
		slaves:  [][]byte{nil, nil},
	}
	var stderr bytes.Buffer
	p := New(r, &stderr, nil)

	rec, err := p.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if rec.Master.Address != 0x20 {
		t.Errorf("Address = 0x%x, want 0x20 (bad record should be skipped)", rec.Master.Address)
	}
	if stderr.Len() == 0 {
		t.Error("expected a recoverable-error line on stderr")
	}
}

func TestPipelineNextReturnsEndOfStream(t *testing.T) {
	r := &fakeReader{}
	var stderr bytes.Buffer
	p := New(r, &stderr, nil)

	_, err := p.Next()
	if err != physical.ErrEndOfStream {
		t.Fatalf("Next() error = %v, want ErrEndOfStream", err)
	}
}

func TestPipelineUpdatesAggregator(t *testing.T) {
	r := &fakeReader{
		ts:      []float64{1.0, 2.0},
		masters: [][]byte{masterBytes(0x10), masterBytes(0x10)},
		slaves:  [][]byte{slaveBytes16([]byte{1, 2}), slaveBytes16([]byte{1, 2})},
	}
	var stderr bytes.Buffer
	agg := aggregator.New()
	p := New(r, &stderr, agg)

	if _, err := p.Next(); err != nil {
		t.Fatalf("Next() #1 error = %v", err)
	}
	if _, err := p.Next(); err != nil {
		t.Fatalf("Next() #2 error = %v", err)
	}

	pvs := agg.Sorted()
	if len(pvs) != 1 {
		t.Fatalf("len(pvs) = %d, want 1", len(pvs))
	}
	if pvs[0].N != 2 {
		t.Errorf("N = %d, want 2", pvs[0].N)
	}
}

func TestRunStopsAtMaxRecords(t *testing.T) {
	r := &fakeReader{
		ts:      []float64{1.0, 2.0, 3.0},
		masters: [][]byte{masterBytes(0x1), masterBytes(0x2), masterBytes(0x3)},
		slaves:  [][]byte{nil, nil, nil},
	}
	var stderr bytes.Buffer
	p := New(r, &stderr, nil)

	var got []int
	err := Run(context.Background(), p, 2, func(rec *Record) error {
		got = append(got, rec.Master.Address)
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
}

func TestRunReturnsNilOnCleanEndOfStream(t *testing.T) {
	r := &fakeReader{
		ts:      []float64{1.0},
		masters: [][]byte{masterBytes(0x1)},
		slaves:  [][]byte{nil},
	}
	var stderr bytes.Buffer
	p := New(r, &stderr, nil)

	count := 0
	err := Run(context.Background(), p, 0, func(rec *Record) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}
