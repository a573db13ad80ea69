package pairing

import (
	"testing"

	"github.com/mvbdecode/mvbdecode/errs"
	"github.com/mvbdecode/mvbdecode/physical"
)

// fakeReader replays a fixed sequence of frames and errors.
type fakeReader struct {
	frames []*physical.Frame
	errs   []error // errs[i] returned instead of frames[i] when non-nil
	i      int
}

func (f *fakeReader) ReadFrame() (*physical.Frame, error) {
	if f.i >= len(f.frames) {
		return nil, physical.ErrEndOfStream
	}
	idx := f.i
	f.i++
	if f.errs != nil && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	return f.frames[idx], nil
}

func master(t float64) *physical.Frame {
	return &physical.Frame{TStart: t, Kind: physical.Master, Bytes: []byte{0, 0, 0}}
}

func slave(t float64) *physical.Frame {
	return &physical.Frame{TStart: t, Kind: physical.Slave, Bytes: []byte{0, 0, 0}}
}

func TestPairerMasterThenSlave(t *testing.T) {
	r := &fakeReader{frames: []*physical.Frame{master(1), slave(2)}}
	p := NewPairer(r)

	rec, err := p.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if rec.Master == nil || rec.Slave == nil {
		t.Fatalf("rec = %+v, want both master and slave", rec)
	}
}

func TestPairerTwoConsecutiveMasters(t *testing.T) {
	r := &fakeReader{frames: []*physical.Frame{master(1), master(2)}}
	p := NewPairer(r)

	rec1, err := p.Next()
	if err != nil {
		t.Fatalf("Next() #1 error = %v", err)
	}
	if rec1.Slave != nil {
		t.Errorf("rec1.Slave = %+v, want nil", rec1.Slave)
	}

	rec2, err := p.Next()
	if err != nil {
		t.Fatalf("Next() #2 error = %v", err)
	}
	if rec2.Master.TStart != 2 {
		t.Errorf("rec2.Master.TStart = %v, want 2", rec2.Master.TStart)
	}
	if rec2.Slave != nil {
		t.Errorf("rec2.Slave = %+v, want nil", rec2.Slave)
	}
}

func TestPairerSlaveWithNoMasterIsProtocolError(t *testing.T) {
	r := &fakeReader{frames: []*physical.Frame{slave(1)}}
	p := NewPairer(r)

	_, err := p.Next()
	if !errs.IsProtocol(err) {
		t.Fatalf("Next() error = %v, want ProtocolError", err)
	}
}

func TestPairerDanglingMasterThenEndOfStream(t *testing.T) {
	r := &fakeReader{frames: []*physical.Frame{master(1)}}
	p := NewPairer(r)

	rec, err := p.Next()
	if err != nil {
		t.Fatalf("Next() #1 error = %v", err)
	}
	if rec.Master == nil || rec.Slave != nil {
		t.Fatalf("rec = %+v, want dangling master only", rec)
	}

	_, err = p.Next()
	if err != physical.ErrEndOfStream {
		t.Fatalf("Next() #2 error = %v, want ErrEndOfStream", err)
	}
}
