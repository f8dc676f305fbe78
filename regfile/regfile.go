// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package regfile implements the peripheral's register file: a handful of 8 bit
// registers at fixed 7 bit addresses. Writes to any other address are dropped
// without a trace on the wire, and reads of them return 0.
//
package regfile

import "fmt"

// Register addresses.
const (
	AddrOutputEnable = 0x00 // bit i enables output bit i
	AddrOutputData   = 0x01 // static output level, mirrored on the secondary bus
	AddrPWMEnable    = 0x02 // bit i routes the PWM signal to output bit i
	AddrDutyCycle    = 0x04 // PWM duty cycle, d/255
)

// Addrs lists the valid register addresses in ascending order.
//
var Addrs = [...]uint8{AddrOutputEnable, AddrOutputData, AddrPWMEnable, AddrDutyCycle}

// index maps a valid address to its storage slot.
//
func index(addr uint8) (int, bool) {
	for i, a := range Addrs {
		if a == addr {
			return i, true
		}
	}
	return 0, false
}

// Valid returns true if addr is backed by a register.
//
func Valid(addr uint8) bool {
	_, ok := index(addr)
	return ok
}

// A File holds the register values. The zero value is a file in its reset
// state.
//
type File struct {
	regs [len(Addrs)]uint8
}

// Write sets the register at addr to v. It returns false, leaving every
// register untouched, if addr is not a valid address.
//
func (f *File) Write(addr, v uint8) bool {
	i, ok := index(addr)
	if !ok {
		return false
	}
	f.regs[i] = v
	return true
}

// Read returns the value of the register at addr. Invalid addresses read as 0
// with ok set to false.
//
func (f *File) Read(addr uint8) (v uint8, ok bool) {
	i, ok := index(addr)
	if !ok {
		return 0, false
	}
	return f.regs[i], true
}

// Reset clears all registers.
//
func (f *File) Reset() {
	f.regs = [len(Addrs)]uint8{}
}

// Snapshot returns a copy of all register values.
//
func (f *File) Snapshot() Snapshot {
	return Snapshot{
		OutputEnable: f.regs[0],
		OutputData:   f.regs[1],
		PWMEnable:    f.regs[2],
		DutyCycle:    f.regs[3],
	}
}

// Snapshot is a copy of the register file contents.
//
type Snapshot struct {
	OutputEnable uint8
	OutputData   uint8
	PWMEnable    uint8
	DutyCycle    uint8
}

func (s Snapshot) String() string {
	return fmt.Sprintf("oe=0x%02x data=0x%02x pwmen=0x%02x duty=0x%02x",
		s.OutputEnable, s.OutputData, s.PWMEnable, s.DutyCycle)
}
