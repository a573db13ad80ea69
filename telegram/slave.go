package telegram

import (
	"fmt"

	"github.com/mvbdecode/mvbdecode/crc"
	"github.com/mvbdecode/mvbdecode/errs"
)

// crcSpan is a (start, crcIndex) pair: bytes[start:crcIndex] is one CRC'd
// data slice, with the Check Sequence byte at bytes[crcIndex].
type crcSpan struct {
	start, crcIndex int
}

// slaveFormats is the §3.4.1.2 length dispatch table: raw slave byte count
// -> CRC span list.
var slaveFormats = map[int][]crcSpan{
	3:  {{0, 2}},
	5:  {{0, 4}},
	9:  {{0, 8}},
	18: {{0, 8}, {9, 17}},
	36: {{0, 8}, {9, 17}, {18, 26}, {27, 35}},
}

// SlaveFrame is the generic decode of a slave reply when the master
// request type has no dedicated telegram (e.g. MASTERSHIP_TRANSFER,
// *_EVENT requests).
type SlaveFrame struct {
	Data []byte
}

func (s *SlaveFrame) String() string {
	return fmt.Sprintf("SLAVE (%2db): %s", len(s.Data), toHex(s.Data))
}

// ProcessDataResponse is the §3.5.4.1 Process Data telegram.
type ProcessDataResponse struct {
	T    float64
	Port int
	Data []byte
}

func (p *ProcessDataResponse) String() string {
	return fmt.Sprintf("SLAVE (%2db): %s", len(p.Data), toHex(p.Data))
}

// MessageDataResponse is the §3.5.4.2 Message Data telegram.
type MessageDataResponse struct {
	DeviceAddress int
	Data          []byte
}

func (m *MessageDataResponse) String() string {
	return fmt.Sprintf("SLAVE MessageDataResponse %d bytes", len(m.Data))
}

// DeviceStatusResponse is the §3.6.4.1.1 Device_Status telegram.
type DeviceStatusResponse struct {
	DeviceAddress int
	SP, BA, GW, MD int
	ClassSpecific  [4]int
	LAT, RLD, SSD, SDD, ERD, FRC, DNR, SER int
}

func (d *DeviceStatusResponse) String() string {
	return fmt.Sprintf("SLAVE %+v", *d)
}

func toBits(n byte) [8]int {
	var bits [8]int
	for i := 0; i < 8; i++ {
		bits[i] = int((n >> uint(7-i)) & 1)
	}
	return bits
}

// Telegram is any of the decoded slave-frame variants.
type Telegram interface {
	String() string
}

// ParseSlaveFrame decodes a Slave physical frame's bytes against the
// master frame that elicited it, dispatching on master.FCode.MasterRequest.
func ParseSlaveFrame(bytes []byte, master *MasterFrame) (Telegram, error) {
	spans, ok := slaveFormats[len(bytes)]
	if !ok {
		return nil, errs.NewFraming("slave frame: unsupported length %d", len(bytes))
	}

	var data []byte
	for _, span := range spans {
		if span.crcIndex >= len(bytes) {
			return nil, errs.NewFraming("slave frame: CRC index %d out of range for length %d", span.crcIndex, len(bytes))
		}
		chunk := bytes[span.start:span.crcIndex]
		if err := crc.Verify(chunk, bytes[span.crcIndex]); err != nil {
			return nil, err
		}
		data = append(data, chunk...)
	}

	if len(data)*8 != master.FCode.SlaveFrameSizeBits {
		return nil, errs.NewFraming("slave frame: invalid data length %d bits, want %d", len(data)*8, master.FCode.SlaveFrameSizeBits)
	}

	switch master.FCode.MasterRequest {
	case RequestProcessData:
		return &ProcessDataResponse{T: master.T, Port: master.Address, Data: data}, nil
	case RequestMessageData:
		return &MessageDataResponse{DeviceAddress: master.Address, Data: data}, nil
	case RequestDeviceStatus:
		return parseDeviceStatus(data, master.Address)
	default:
		return &SlaveFrame{Data: data}, nil
	}
}

func parseDeviceStatus(data []byte, deviceAddress int) (*DeviceStatusResponse, error) {
	if len(data) != 2 {
		return nil, errs.NewFraming("device status: want 2 data bytes, got %d", len(data))
	}
	b0 := toBits(data[0])
	b1 := toBits(data[1])

	return &DeviceStatusResponse{
		DeviceAddress: deviceAddress,
		SP:            b0[0],
		BA:            b0[1],
		GW:            b0[2],
		MD:            b0[3],
		ClassSpecific: [4]int{b0[4], b0[5], b0[6], b0[7]},
		LAT:           b1[0],
		RLD:           b1[1],
		SSD:           b1[2],
		SDD:           b1[3],
		ERD:           b1[4],
		FRC:           b1[5],
		DNR:           b1[6],
		SER:           b1[7],
	}, nil
}

func toHex(data []byte) string {
	s := "0x"
	for _, b := range data {
		s += fmt.Sprintf("%02x", b)
	}
	return s
}
