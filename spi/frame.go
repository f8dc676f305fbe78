// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package spi implements the peripheral side of the serial command protocol:
// a chip-select gated, MSB first, 16 bit frame carrying a direction bit, a 7 bit
// register address and an 8 bit payload.
//
//	bit 15     direction (1 = write, 0 = read)
//	bits 14-8  address
//	bits 7-0   payload
//
// The decoder samples the data line on rising edges of the serial clock while
// chip-select is held low. There is no response path: read requests are
// decoded and reported, but nothing is shifted back out.
//
package spi

import (
	"fmt"

	"github.com/pkg/errors"
)

// Frame sizes.
const (
	FrameBits = 16
	AddrBits  = 7
	DataBits  = 8
	MaxAddr   = 1<<AddrBits - 1
)

const writeBit = 1 << (FrameBits - 1)

// A Frame is one decoded serial transaction.
//
type Frame struct {
	Write bool
	Addr  uint8
	Data  uint8
}

// NewFrame returns a frame for the given request. It fails if addr does not fit
// in 7 bits.
//
func NewFrame(write bool, addr, data uint8) (Frame, error) {
	if addr > MaxAddr {
		return Frame{}, errors.Errorf("address 0x%02x out of range (0x00-0x%02x)", addr, MaxAddr)
	}
	return Frame{Write: write, Addr: addr, Data: data}, nil
}

// DecodeFrame splits a raw 16 bit frame into its fields.
//
func DecodeFrame(v uint16) Frame {
	return Frame{
		Write: v&writeBit != 0,
		Addr:  uint8(v>>DataBits) & MaxAddr,
		Data:  uint8(v),
	}
}

// Encode returns the raw 16 bit frame.
//
func (f Frame) Encode() uint16 {
	v := uint16(f.Addr&MaxAddr)<<DataBits | uint16(f.Data)
	if f.Write {
		v |= writeBit
	}
	return v
}

// Bytes returns the frame in wire order.
//
func (f Frame) Bytes() [2]byte {
	v := f.Encode()
	return [2]byte{byte(v >> 8), byte(v)}
}

func (f Frame) String() string {
	dir := "read"
	if f.Write {
		dir = "write"
	}
	return fmt.Sprintf("%s addr=0x%02x data=0x%02x", dir, f.Addr, f.Data)
}
