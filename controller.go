// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package spipwm

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/db47h/spipwm/hwlib"
	"github.com/db47h/spipwm/hwsim"
	"github.com/db47h/spipwm/outmux"
	"github.com/db47h/spipwm/pwm"
	"github.com/db47h/spipwm/regfile"
	"github.com/db47h/spipwm/spi"
)

// Input bus bit positions.
const (
	PinSCLK = 0
	PinCOPI = 1
	PinNCS  = 2
)

// Chip pin specifications.
const (
	Inputs  = "ui_in[8], rst_n"
	Outputs = "uo_out[8], uio_out[8]"
)

// A Controller is an instance of the peripheral. It owns the state of the
// decoder, register file and PWM generator so that tests can inspect it between
// simulation steps.
//
type Controller struct {
	cfg  Config
	dec  spi.Decoder
	regs regfile.File
	gen  *pwm.Generator
	part hwsim.NewPartFn
}

// New returns a new controller for the given configuration.
//
func New(cfg Config, log zerolog.Logger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	c := &Controller{
		cfg: cfg,
		gen: pwm.NewGenerator(cfg.PWMModulus()),
	}
	fn, err := hwsim.Chip("SPIPWM", Inputs, Outputs,
		hwlib.ResetSync("rst_n=rst_n, out=rst"),
		spi.Deserializer(&c.dec, log)(
			"sclk=ui_in[0], copi=ui_in[1], ncs=ui_in[2], rst_n=rst, "+
				"we=we, re=re, addr=addr, data=wdata"),
		regfile.Registers(&c.regs, log)(
			"we=we, re=re, addr=addr, data=wdata, rst_n=rst, "+
				"oe=oe, out=uio_out, pwmen=pwmen, duty=duty"),
		pwm.Part(c.gen)("duty=duty, rst_n=rst, out=pwm"),
		outmux.Gates("oe=oe, pwmen=pwmen, data=uio_out, pwm=pwm, out=uo_out"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build controller chip")
	}
	c.part = fn
	log.Info().
		Uint32("clock-hz", cfg.ClockHz).
		Uint32("modulus", cfg.PWMModulus()).
		Float64("pwm-hz", cfg.PWMFrequency()).
		Msg("controller configured")
	return c, nil
}

// NewPart returns the controller chip wired with the given connections. See
// Inputs and Outputs for the chip's pins. A controller must be mounted in a
// single circuit, once.
//
func (c *Controller) NewPart(connections string) hwsim.Part {
	return c.part(connections)
}

// Config returns the controller configuration.
//
func (c *Controller) Config() Config { return c.cfg }

// Registers returns the current register values.
//
func (c *Controller) Registers() regfile.Snapshot { return c.regs.Snapshot() }

// Read returns the value of the register at addr, bypassing the serial
// interface. Invalid addresses read as 0 with ok set to false.
//
func (c *Controller) Read(addr uint8) (v uint8, ok bool) { return c.regs.Read(addr) }

// DecoderState returns the state of the serial decoder.
//
func (c *Controller) DecoderState() spi.State { return c.dec.State() }

// Counter returns the PWM counter value.
//
func (c *Controller) Counter() uint32 { return c.gen.Counter() }
