package telegram

import (
	"fmt"

	"github.com/mvbdecode/mvbdecode/crc"
	"github.com/mvbdecode/mvbdecode/errs"
)

// MasterFrame is the semantic decode of a 3-byte Master physical frame
// (IEC 61375-3-1 §3.4.1.1, §3.5.2.1).
type MasterFrame struct {
	T       float64
	FCode   FCode
	Address int // 12-bit field, interpretation depends on FCode.AddressType
}

// ParseMasterFrame decodes the 3-byte payload of a Master physical frame.
func ParseMasterFrame(t float64, bytes []byte) (*MasterFrame, error) {
	if len(bytes) != 3 {
		return nil, errs.NewProtocol("master frame: want 3 bytes, got %d", len(bytes))
	}
	if err := crc.Verify(bytes[:2], bytes[2]); err != nil {
		return nil, err
	}

	fcode := FCodes[(bytes[0]>>4)&0x0f]
	address := int(bytes[0]&0x0f)<<8 | int(bytes[1])

	return &MasterFrame{T: t, FCode: fcode, Address: address}, nil
}

func (m *MasterFrame) String() string {
	return fmt.Sprintf("MASTER [%s] -> %s", masterRequestName(m.FCode.MasterRequest), m.describeAddress())
}

func (m *MasterFrame) describeAddress() string {
	if m.FCode.AddressType == AddressLogical {
		return fmt.Sprintf("[port 0x%03x]", m.Address)
	}
	return fmt.Sprintf("[physical 0x%03x]", m.Address)
}

func masterRequestName(r MasterRequest) string {
	switch r {
	case RequestProcessData:
		return "PROCESS_DATA"
	case RequestReserved:
		return "RESERVED"
	case RequestMastershipTransfer:
		return "MASTERSHIP_TRANSFER"
	case RequestGeneralEvent:
		return "GENERAL_EVENT"
	case RequestMessageData:
		return "MESSAGE_DATA"
	case RequestGroupEvent:
		return "GROUP_EVENT"
	case RequestSingleEvent:
		return "SINGLE_EVENT"
	case RequestDeviceStatus:
		return "DEVICE_STATUS"
	default:
		return "UNKNOWN"
	}
}
