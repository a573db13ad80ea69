package sample

import (
	"fmt"

	"github.com/google/gousb"
)

// USBDevice identifies a USB bulk-endpoint logic analyzer.
type USBDevice struct {
	VendorID  gousb.ID
	ProductID gousb.ID
	Endpoint  int
}

// USBSource streams raw samples from a USB bulk-endpoint logic analyzer
// via github.com/google/gousb, exposing the same Source interface as
// FileSource so the decoding pipeline is agnostic to live vs captured
// input.
type USBSource struct {
	*FileSource

	ctx    *gousb.Context
	dev    *gousb.Device
	cfg    *gousb.Config
	intf   *gousb.Interface
	stream *gousb.ReadStream
}

// OpenUSBSource opens the first USB device matching dev and streams its
// bulk IN endpoint as a raw sample source.
func OpenUSBSource(dev USBDevice, polarity Polarity) (*USBSource, error) {
	ctx := gousb.NewContext()

	device, err := ctx.OpenDeviceWithVIDPID(dev.VendorID, dev.ProductID)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("sample: open USB device %s:%s: %w", dev.VendorID, dev.ProductID, err)
	}
	if device == nil {
		ctx.Close()
		return nil, fmt.Errorf("sample: no USB device matching %s:%s", dev.VendorID, dev.ProductID)
	}

	if err := device.SetAutoDetach(true); err != nil {
		device.Close()
		ctx.Close()
		return nil, fmt.Errorf("sample: set auto detach: %w", err)
	}

	cfg, err := device.Config(1)
	if err != nil {
		device.Close()
		ctx.Close()
		return nil, fmt.Errorf("sample: claim config: %w", err)
	}

	intf, err := cfg.Interface(0, 0)
	if err != nil {
		cfg.Close()
		device.Close()
		ctx.Close()
		return nil, fmt.Errorf("sample: claim interface: %w", err)
	}

	ep, err := intf.InEndpoint(dev.Endpoint)
	if err != nil {
		intf.Close()
		cfg.Close()
		device.Close()
		ctx.Close()
		return nil, fmt.Errorf("sample: open bulk endpoint %d: %w", dev.Endpoint, err)
	}

	stream, err := ep.NewStream(blockSize, 4)
	if err != nil {
		intf.Close()
		cfg.Close()
		device.Close()
		ctx.Close()
		return nil, fmt.Errorf("sample: open read stream: %w", err)
	}

	return &USBSource{
		FileSource: NewFileSource(stream, polarity),
		ctx:        ctx,
		dev:        device,
		cfg:        cfg,
		intf:       intf,
		stream:     stream,
	}, nil
}

// Close releases the USB interface, claimed configuration, and device
// handle.
func (s *USBSource) Close() error {
	s.stream.Close()
	s.intf.Close()
	s.cfg.Close()
	s.dev.Close()
	s.ctx.Close()
	return nil
}
