package sample

import (
	"fmt"

	"go.bug.st/serial"
)

// SerialDevice identifies a logic analyzer that exposes a serial/USB-CDC
// capture interface.
type SerialDevice struct {
	VendorID  string
	ProductID string
	BaudRate  int
}

// SerialSource streams raw samples from a serial-attached logic analyzer
// via go.bug.st/serial, exposing the same Source interface as FileSource.
type SerialSource struct {
	*FileSource

	port serial.Port
}

// OpenSerialSource opens portName at dev.BaudRate and streams it as a raw
// sample source.
func OpenSerialSource(portName string, dev SerialDevice, polarity Polarity) (*SerialSource, error) {
	mode := &serial.Mode{BaudRate: dev.BaudRate}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("sample: open serial port %s: %w", portName, err)
	}

	return &SerialSource{
		FileSource: NewFileSource(port, polarity),
		port:       port,
	}, nil
}

// Close releases the serial port.
func (s *SerialSource) Close() error {
	return s.port.Close()
}
