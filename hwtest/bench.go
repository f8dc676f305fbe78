// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"time"

	"github.com/pkg/errors"
	"tinygo.org/x/drivers"

	"github.com/db47h/spipwm"
	"github.com/db47h/spipwm/hwlib"
	"github.com/db47h/spipwm/hwsim"
	"github.com/db47h/spipwm/spi"
)

// BenchConfig configures the bench timing. All durations are in system clock
// cycles.
//
type BenchConfig struct {
	// Number of simulation workers. See hwsim.NewCircuit.
	Workers int
	// Simulation steps per clock cycle. See hwsim.NewCircuit.
	StepsPerCycle uint
	// Serial clock half period.
	HalfPeriod int
	// Cycles spent with chip-select released after each transaction.
	IdleCycles int
	// Cycles rst_n is held low, then high, by Reset.
	ResetCycles int
}

// DefaultBenchConfig returns the timing of the reference test harness: a 50µs
// serial clock half period and 60µs of idle time after each transaction at
// 10 MHz, and a 5 cycle reset.
//
func DefaultBenchConfig() BenchConfig {
	return BenchConfig{
		Workers:       1,
		StepsPerCycle: 8,
		HalfPeriod:    500,
		IdleCycles:    600,
		ResetCycles:   5,
	}
}

// A Bench drives a controller mounted in its own circuit. It acts as the SPI
// master: it implements drivers.SPI and drives chip-select with Select and
// Deselect.
//
// A Bench is not safe for concurrent use.
//
type Bench struct {
	cfg  BenchConfig
	ctrl *spipwm.Controller
	c    *hwsim.Circuit

	ui   uint8 // ui_in
	rstN bool
	uo   uint8 // uo_out
	uio  uint8 // uio_out
}

var _ drivers.SPI = (*Bench)(nil)

// NewBench mounts ctrl in a new circuit. Callers must call Dispose once done.
//
func NewBench(ctrl *spipwm.Controller, cfg BenchConfig) (*Bench, error) {
	if cfg.HalfPeriod < 1 {
		return nil, errors.Errorf("invalid serial clock half period %d", cfg.HalfPeriod)
	}
	b := &Bench{
		cfg:  cfg,
		ctrl: ctrl,
		ui:   1 << spipwm.PinNCS,
		rstN: true,
	}
	c, err := hwsim.NewCircuit(cfg.Workers, cfg.StepsPerCycle,
		hwlib.InputN(8, func() int64 { return int64(b.ui) })("out=ui_in"),
		hwlib.Input(func() bool { return b.rstN })("out=rst_n"),
		ctrl.NewPart("ui_in=ui_in, rst_n=rst_n, uo_out=uo_out, uio_out=uio_out"),
		hwlib.OutputN(8, func(v int64) { b.uo = uint8(v) })("in=uo_out"),
		hwlib.OutputN(8, func(v int64) { b.uio = uint8(v) })("in=uio_out"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build bench circuit")
	}
	b.c = c
	return b, nil
}

// Dispose releases the bench's circuit.
//
func (b *Bench) Dispose() { b.c.Dispose() }

// Controller returns the controller under test.
//
func (b *Bench) Controller() *spipwm.Controller { return b.ctrl }

// Config returns the bench configuration.
//
func (b *Bench) Config() BenchConfig { return b.cfg }

// Cycle runs the simulation for n clock cycles.
//
func (b *Bench) Cycle(n int) {
	for i := 0; i < n; i++ {
		b.c.TickTock()
	}
}

// Now returns the number of clock cycles run so far.
//
func (b *Bench) Now() uint64 { return b.c.Cycles() }

// Duration converts a number of clock cycles to time.
//
func (b *Bench) Duration(cycles uint64) time.Duration {
	return time.Duration(cycles * uint64(time.Second) / uint64(b.ctrl.Config().ClockHz))
}

// Reset holds rst_n low for ResetCycles cycles, then runs ResetCycles more
// cycles with rst_n released. Chip-select is released during reset.
//
func (b *Bench) Reset() {
	b.ui = 1 << spipwm.PinNCS
	b.rstN = false
	b.Cycle(b.cfg.ResetCycles)
	b.rstN = true
	b.Cycle(b.cfg.ResetCycles)
}

// SetReset drives rst_n directly.
//
func (b *Bench) SetReset(asserted bool) { b.rstN = !asserted }

// Output returns the value of uo_out.
//
func (b *Bench) Output() uint8 { return b.uo }

// SecondaryOutput returns the value of uio_out.
//
func (b *Bench) SecondaryOutput() uint8 { return b.uio }

// Select asserts chip-select with the serial clock low and waits one cycle.
//
func (b *Bench) Select() {
	b.ui &^= 1<<spipwm.PinNCS | 1<<spipwm.PinSCLK
	b.Cycle(1)
}

// Deselect releases chip-select and leaves the bus idle for IdleCycles cycles.
//
func (b *Bench) Deselect() {
	b.ui = 1 << spipwm.PinNCS
	b.Cycle(b.cfg.IdleCycles)
}

// bit shifts one bit out: data is set up with the serial clock low, then held
// for the high half period.
//
func (b *Bench) bit(v bool) {
	b.ui &^= 1<<spipwm.PinSCLK | 1<<spipwm.PinCOPI
	if v {
		b.ui |= 1 << spipwm.PinCOPI
	}
	b.Cycle(b.cfg.HalfPeriod)
	b.ui |= 1 << spipwm.PinSCLK
	b.Cycle(b.cfg.HalfPeriod)
}

// Transfer shifts out one byte, MSB first. The peripheral has no data output,
// so the returned byte is always 0. Chip-select is not touched.
//
func (b *Bench) Transfer(w byte) (byte, error) {
	for i := 7; i >= 0; i-- {
		b.bit(w&(1<<uint(i)) != 0)
	}
	return 0, nil
}

// Tx shifts out w. If r is not nil, it is filled with zeroes; if w is nil,
// len(r) zero bytes are shifted out. Chip-select is not touched.
//
func (b *Bench) Tx(w, r []byte) error {
	if w != nil && r != nil && len(w) != len(r) {
		return errors.Errorf("tx: write and read buffer lengths differ (%d != %d)", len(w), len(r))
	}
	n := len(w)
	if w == nil {
		n = len(r)
	}
	for i := 0; i < n; i++ {
		var v byte
		if w != nil {
			v = w[i]
		}
		rv, _ := b.Transfer(v)
		if r != nil {
			r[i] = rv
		}
	}
	return nil
}

// Transaction sends one complete frame framed by chip-select.
//
func (b *Bench) Transaction(write bool, addr, data uint8) error {
	f, err := spi.NewFrame(write, addr, data)
	if err != nil {
		return err
	}
	bs := f.Bytes()
	b.Select()
	err = b.Tx(bs[:], nil)
	b.Deselect()
	return err
}

// Write sends a write frame.
//
func (b *Bench) Write(addr, data uint8) error { return b.Transaction(true, addr, data) }

// Read sends a read frame. Nothing is returned by the peripheral.
//
func (b *Bench) Read(addr uint8) error { return b.Transaction(false, addr, 0) }

// PartialTransaction sends only the first bits bits of f before releasing
// chip-select.
//
func (b *Bench) PartialTransaction(f spi.Frame, bits int) {
	v := f.Encode()
	b.Select()
	for i := 0; i < bits && i < spi.FrameBits; i++ {
		b.bit(v&(1<<uint(spi.FrameBits-1-i)) != 0)
	}
	b.Deselect()
}
