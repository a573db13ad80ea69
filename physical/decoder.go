// Package physical implements the Manchester-style bit recovery and
// framing state machine that turns a raw sample stream into validated
// PhysicalFrame values (IEC 61375-3-1 §3.3.1).
package physical

import (
	"github.com/mvbdecode/mvbdecode/sample"
)

// BT is the nominal MVB bit time: 666.7ns, i.e. 1/1.5Mb/s.
const BT = 666.7e-9

// Frame is a validated physical frame: a Start Delimiter (consumed into
// Kind) followed by data/CRC bytes, up to the End Delimiter.
type Frame struct {
	TStart float64
	Kind   Kind
	Bytes  []byte
}

// Decoder performs bit recovery, symbol classification, delimiter
// detection, and byte accumulation against a sample.Source.
type Decoder struct {
	src sample.Source
}

// NewDecoder creates a Decoder reading from src.
func NewDecoder(src sample.Source) *Decoder {
	return &Decoder{src: src}
}

// readBit samples the line at t+BT/4 and t+3*BT/4, classifies the pair,
// then aligns the cursor to the next bit boundary at t+BT.
func (d *Decoder) readBit(t float64) (Symbol, error) {
	_, v1, err := d.src.SkipUntil(t + BT/4)
	if err != nil {
		return 0, err
	}
	_, v2, err := d.src.SkipUntil(t + 3*BT/4)
	if err != nil {
		return 0, err
	}
	if _, _, err := d.src.SkipUntil(t + BT); err != nil {
		return 0, err
	}
	return classify(v1, v2), nil
}

// byteResult is the outcome of reading one 8-symbol byte window.
type byteResult struct {
	delimiterSymbols [8]Symbol // populated only when reading the Start Delimiter
	value            byte      // populated only for ordinary data bytes
	isDelimiter      bool
	isEndDelimiter   bool
}

// readByte reads 8 symbols starting at byteStart. When isDelimiter is set
// (the frame's first byte), all 8 raw symbols are returned unfiltered. For
// a data byte, a non-data symbol in bit position 0 signals an End
// Delimiter (§3.3.1.6); in any other position it is a FramingError.
func (d *Decoder) readByte(byteStart float64, isDelimiter bool) (byteResult, error) {
	var res byteResult
	res.isDelimiter = isDelimiter

	var bits [8]Symbol
	var value byte

	for i := 0; i < 8; i++ {
		sym, err := d.readBit(byteStart + float64(i)*BT)
		if err != nil {
			return res, err
		}

		if !isDelimiter && (sym == NH || sym == NL) {
			if i != 0 {
				return res, newFramingError("unexpected non-data symbol %s at bit %d", sym, i)
			}
			if sym != NL {
				return res, newFramingError("end delimiter: expected NL, got %s", sym)
			}
			second, err := d.readBit(byteStart + BT)
			if err != nil {
				return res, err
			}
			if second != NH {
				return res, newFramingError("end delimiter: expected NH, got %s", second)
			}
			// One more bit is part of the delimiter but discarded. A frame
			// whose discarded bit is the last thing in the stream is still
			// complete, so end of stream here does not fail the frame.
			if _, err := d.readBit(byteStart + 2*BT); err != nil && err != ErrEndOfStream {
				return res, err
			}
			res.isEndDelimiter = true
			return res, nil
		}

		bits[i] = sym
		if !isDelimiter {
			bit := byte(0)
			if sym == B1 {
				bit = 1
			}
			value = (value << 1) | bit
		}
	}

	if isDelimiter {
		res.delimiterSymbols = bits
	} else {
		res.value = value
	}
	return res, nil
}

// ReadFrame searches for the next Start Bit, then decodes one complete
// physical frame through its End Delimiter.
func (d *Decoder) ReadFrame() (*Frame, error) {
	// The Start Bit is B1 (high, then low): find its mid-bit falling edge
	// and back off BT/2 to the start of the bit.
	start, _, err := d.src.FindTransition(0, BT)
	if err != nil {
		return nil, err
	}

	startBit, err := d.readBit(start)
	if err != nil {
		return nil, err
	}
	if startBit != B1 {
		return nil, newFramingError("start bit should be 1, got %s", startBit)
	}

	var kind Kind
	var kindSet bool
	var data []byte

	for i := 0; ; i++ {
		byteStart := start + BT + float64(i)*8*BT
		res, err := d.readByte(byteStart, i == 0)
		if err != nil {
			return nil, err
		}
		if res.isEndDelimiter {
			break
		}
		if i == 0 {
			k, ok := delimiterKind(res.delimiterSymbols)
			if !ok {
				return nil, newFramingError("bad start delimiter %v", res.delimiterSymbols)
			}
			kind = k
			kindSet = true
			continue
		}
		data = append(data, res.value)
	}

	if !kindSet {
		return nil, newFramingError("no start delimiter found")
	}
	if len(data) == 0 {
		return nil, newFramingError("no data")
	}

	return &Frame{TStart: start, Kind: kind, Bytes: data}, nil
}
