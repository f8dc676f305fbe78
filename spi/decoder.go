// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package spi

// State is the state of a Decoder.
//
type State int

// Decoder states.
const (
	// Idle waits for chip-select to be asserted.
	Idle State = iota
	// ShiftAddress shifts in the direction bit and the 7 address bits.
	ShiftAddress
	// ShiftPayload shifts in the 8 payload bits.
	ShiftPayload
	// Commit holds a completed frame until chip-select is released. Any serial
	// clock activity in this state is ignored.
	Commit
)

var stateNames = [...]string{"Idle", "ShiftAddress", "ShiftPayload", "Commit"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "State(?)"
	}
	return stateNames[s]
}

// A Decoder reconstructs frames from the serial lines. It is a level sensitive
// sampler: Clock is called once per system clock cycle with the current line
// levels, and serial clock edges are detected by comparing with the previous
// sample. The serial clock must therefore stay at each level for at least one
// system clock cycle.
//
// The zero value is an idle decoder.
//
type Decoder struct {
	state State
	count int    // bits shifted in the current state
	shift uint16 // shift register, MSB first
	sclk  bool   // previous serial clock sample
}

// State returns the current decoder state.
//
func (d *Decoder) State() State { return d.state }

// Count returns the number of bits shifted in the current state.
//
func (d *Decoder) Count() int { return d.count }

// Reset puts the decoder back in the Idle state and discards any partial frame.
//
func (d *Decoder) Reset() {
	*d = Decoder{}
}

// Clock samples the serial lines for one system clock cycle. ncs is the active
// low chip-select. When the 16th bit of a frame is sampled, Clock returns the
// frame and true; it returns false on every other call, including when a frame
// is aborted by chip-select going high early.
//
func (d *Decoder) Clock(ncs, sclk, copi bool) (f Frame, ok bool) {
	rising := sclk && !d.sclk
	d.sclk = sclk

	if ncs {
		if d.state == ShiftAddress || d.state == ShiftPayload {
			framesAbortedTotal.Inc()
		}
		d.state, d.count, d.shift = Idle, 0, 0
		return Frame{}, false
	}

	switch d.state {
	case Idle:
		d.state, d.count, d.shift = ShiftAddress, 0, 0
		if rising {
			d.shiftIn(copi)
		}
	case ShiftAddress, ShiftPayload:
		if rising {
			d.shiftIn(copi)
		}
	case Commit:
		return Frame{}, false
	}

	if d.state != Commit {
		return Frame{}, false
	}
	f = DecodeFrame(d.shift)
	framesCommittedTotal.WithLabelValues(direction(f)).Inc()
	return f, true
}

func (d *Decoder) shiftIn(bit bool) {
	d.shift <<= 1
	if bit {
		d.shift |= 1
	}
	d.count++
	if d.count < 8 {
		return
	}
	d.count = 0
	switch d.state {
	case ShiftAddress:
		d.state = ShiftPayload
	case ShiftPayload:
		d.state = Commit
	}
}

func direction(f Frame) string {
	if f.Write {
		return "write"
	}
	return "read"
}
