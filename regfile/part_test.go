// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package regfile_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/db47h/spipwm/hwlib"
	"github.com/db47h/spipwm/hwsim"
	"github.com/db47h/spipwm/regfile"
)

type regBench struct {
	c               *hwsim.Circuit
	f               regfile.File
	we, re, rstN    bool
	addr, data      int64
	oe, out, en, dc int64
}

func newRegBench(t *testing.T) *regBench {
	b := &regBench{rstN: true}
	c, err := hwsim.NewCircuit(1, 8,
		hwlib.Input(func() bool { return b.we })("out=we"),
		hwlib.Input(func() bool { return b.re })("out=re"),
		hwlib.Input(func() bool { return b.rstN })("out=rst_n"),
		hwlib.InputN(7, func() int64 { return b.addr })("out=addr"),
		hwlib.InputN(8, func() int64 { return b.data })("out=data"),
		regfile.Registers(&b.f, zerolog.Nop())("we=we, re=re, rst_n=rst_n, addr=addr, data=data, "+
			"oe=oe, out=out, pwmen=pwmen, duty=duty"),
		hwlib.OutputN(8, func(v int64) { b.oe = v })("in=oe"),
		hwlib.OutputN(8, func(v int64) { b.out = v })("in=out"),
		hwlib.OutputN(8, func(v int64) { b.en = v })("in=pwmen"),
		hwlib.OutputN(8, func(v int64) { b.dc = v })("in=duty"),
	)
	if err != nil {
		t.Fatal(err)
	}
	b.c = c
	return b
}

// write presents a write request for one cycle, then lets it settle.
func (b *regBench) write(addr, data int64) {
	b.we, b.addr, b.data = true, addr, data
	b.c.TickTock()
	b.we = false
	b.c.TickTock()
	b.c.TickTock()
}

func TestRegisters(t *testing.T) {
	b := newRegBench(t)
	defer b.c.Dispose()

	b.write(regfile.AddrOutputEnable, 0x0F)
	b.write(regfile.AddrOutputData, 0xCC)
	b.write(regfile.AddrPWMEnable, 0x01)
	b.write(regfile.AddrDutyCycle, 0x80)
	if b.oe != 0x0F || b.out != 0xCC || b.en != 0x01 || b.dc != 0x80 {
		t.Fatalf("got oe=%02x out=%02x pwmen=%02x duty=%02x", b.oe, b.out, b.en, b.dc)
	}

	// invalid addresses and reads change nothing.
	b.write(0x03, 0xFF)
	b.write(0x7F, 0xFF)
	b.re, b.addr = true, regfile.AddrOutputData
	b.c.TickTock()
	b.re = false
	b.c.TickTock()
	if b.oe != 0x0F || b.out != 0xCC || b.en != 0x01 || b.dc != 0x80 {
		t.Fatalf("got oe=%02x out=%02x pwmen=%02x duty=%02x", b.oe, b.out, b.en, b.dc)
	}

	b.rstN = false
	b.c.TickTock()
	b.rstN = true
	b.c.TickTock()
	if b.oe != 0 || b.out != 0 || b.en != 0 || b.dc != 0 {
		t.Fatalf("registers not cleared by reset: oe=%02x out=%02x pwmen=%02x duty=%02x", b.oe, b.out, b.en, b.dc)
	}
}

// A part sampling the register outputs on the commit edge sees the old value.
func TestRegisters_registeredOutputs(t *testing.T) {
	var (
		f       regfile.File
		we      bool
		sampled []uint8
	)
	sampler := (&hwsim.PartSpec{
		Name:   "SAMPLER",
		Inputs: []string{"in[0]", "in[1]", "in[2]", "in[3]", "in[4]", "in[5]", "in[6]", "in[7]"},
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			in := s.Bus("in")
			return []hwsim.Component{func(c *hwsim.Circuit) {
				if c.AtTick() {
					sampled = append(sampled, uint8(hwlib.Int64(c, in)))
				}
			}}
		}}).NewPart
	c, err := hwsim.NewCircuit(1, 8,
		hwlib.Input(func() bool { return we })("out=we"),
		regfile.Registers(&f, zerolog.Nop())("we=we, re=false, rst_n=true, addr[0]=true, data=true, out=out"),
		sampler("in=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	c.TickTock()
	we = true
	c.TickTock() // the register sees we on the next edge
	we = false
	c.TickTock()
	c.TickTock()

	// edges 0, 1: nothing written. edge 2: commit, the sampler still reads 0.
	// edge 3: the sampler reads the new value.
	exp := []uint8{0, 0, 0, 0xFF}
	for i := range exp {
		if sampled[i] != exp[i] {
			t.Fatalf("edge %d: sampled %02x, expected %02x (all: %x)", i, sampled[i], exp[i], sampled)
		}
	}
	if f.Snapshot().OutputData != 0xFF {
		t.Fatalf("register not written: %v", f.Snapshot())
	}
}

// A write strobe and a reset on the same edge leave every register cleared.
func TestRegisters_resetPreemptsWrite(t *testing.T) {
	b := newRegBench(t)
	defer b.c.Dispose()

	b.write(regfile.AddrOutputData, 0x11)
	b.write(regfile.AddrDutyCycle, 0x22)
	if b.out != 0x11 || b.dc != 0x22 {
		t.Fatalf("got out=%02x duty=%02x", b.out, b.dc)
	}

	// we and rst_n are both seen on the next rising edge.
	b.we, b.rstN, b.addr, b.data = true, false, regfile.AddrOutputData, 0xAB
	b.c.TickTock()
	b.c.TickTock()
	b.we, b.rstN = false, true
	b.c.TickTock()
	b.c.TickTock()

	if b.out != 0 || b.dc != 0 {
		t.Fatalf("got out=%02x duty=%02x after reset with a pending write", b.out, b.dc)
	}
	if s := b.f.Snapshot(); s != (regfile.Snapshot{}) {
		t.Fatalf("registers not cleared: %v", s)
	}
}
