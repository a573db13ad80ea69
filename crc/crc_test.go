package crc

import "testing"

func TestComputeVerifyRoundTrip(t *testing.T) {
	cases := [][]byte{
		{0x0f, 0x21},
		{0x00, 0x00},
		{0xff, 0xff, 0xff, 0xff},
		{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0},
	}

	for _, data := range cases {
		got := Compute(data)
		if err := Verify(data, got); err != nil {
			t.Errorf("Verify(%x, Compute(%x)=%02x) = %v, want nil", data, data, got, err)
		}
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	data := []byte{0x0f, 0x21}
	good := Compute(data)

	corrupted := good ^ 0x01
	if err := Verify(data, corrupted); err == nil {
		t.Errorf("Verify(%x, %02x) = nil, want mismatch error", data, corrupted)
	}

	var mismatch *MismatchError
	err := Verify(data, corrupted)
	if err == nil {
		t.Fatal("expected error")
	}
	if me, ok := err.(*MismatchError); !ok {
		t.Errorf("error type = %T, want *MismatchError", err)
	} else {
		mismatch = me
	}
	if mismatch.Got != good {
		t.Errorf("MismatchError.Got = %02x, want %02x", mismatch.Got, good)
	}
}

func TestComputeDeterministic(t *testing.T) {
	data := []byte{0xaa, 0x55, 0x01, 0x02}
	a := Compute(data)
	b := Compute(data)
	if a != b {
		t.Errorf("Compute not deterministic: %02x != %02x", a, b)
	}
}
