package telegram

import (
	"strings"
	"testing"

	"github.com/mvbdecode/mvbdecode/crc"
)

func masterBytes(fcodeIdx int, addr int) []byte {
	b0 := byte(fcodeIdx<<4) | byte((addr>>8)&0x0f)
	b1 := byte(addr & 0xff)
	c := crc.Compute([]byte{b0, b1})
	return []byte{b0, b1, c}
}

func TestParseMasterFrameProcessData(t *testing.T) {
	bytes := masterBytes(0, 0x123)
	m, err := ParseMasterFrame(1.5, bytes)
	if err != nil {
		t.Fatalf("ParseMasterFrame() error = %v", err)
	}
	if m.FCode.MasterRequest != RequestProcessData {
		t.Errorf("MasterRequest = %v, want RequestProcessData", m.FCode.MasterRequest)
	}
	if m.Address != 0x123 {
		t.Errorf("Address = 0x%x, want 0x123", m.Address)
	}
	if m.T != 1.5 {
		t.Errorf("T = %v, want 1.5", m.T)
	}
}

func TestParseMasterFrameDeviceStatus(t *testing.T) {
	bytes := masterBytes(15, 0x042)
	m, err := ParseMasterFrame(0, bytes)
	if err != nil {
		t.Fatalf("ParseMasterFrame() error = %v", err)
	}
	if m.FCode.MasterRequest != RequestDeviceStatus {
		t.Errorf("MasterRequest = %v, want RequestDeviceStatus", m.FCode.MasterRequest)
	}
	if m.FCode.AddressType != AddressDevice {
		t.Errorf("AddressType = %v, want AddressDevice", m.FCode.AddressType)
	}
}

func TestParseMasterFrameWrongLength(t *testing.T) {
	_, err := ParseMasterFrame(0, []byte{0, 0})
	if err == nil {
		t.Fatal("ParseMasterFrame() error = nil, want error for wrong length")
	}
}

func TestParseMasterFrameBadCRC(t *testing.T) {
	bytes := masterBytes(0, 0x123)
	bytes[2] ^= 0xff
	_, err := ParseMasterFrame(0, bytes)
	if err == nil {
		t.Fatal("ParseMasterFrame() error = nil, want CRC mismatch")
	}
}

func TestMasterFrameStringIncludesRequestAndAddress(t *testing.T) {
	m, err := ParseMasterFrame(0, masterBytes(0, 0x100))
	if err != nil {
		t.Fatalf("ParseMasterFrame() error = %v", err)
	}
	s := m.String()
	if !strings.Contains(s, "PROCESS_DATA") || !strings.Contains(s, "0x100") {
		t.Errorf("String() = %q, want request name PROCESS_DATA and address 0x100", s)
	}
}
