// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package driver is a register level driver for the SPI PWM peripheral. It
// talks to the device over any tinygo.org/x/drivers SPI bus, be it a real
// microcontroller bus or the simulated bench in package hwtest.
//
// The peripheral has no response path: every operation is a write from the
// driver's point of view, and register values cannot be read back.
//
package driver

import (
	"github.com/pkg/errors"
	"tinygo.org/x/drivers"

	"github.com/db47h/spipwm/regfile"
	"github.com/db47h/spipwm/spi"
)

// ChipSelect drives the active low chip-select line. Select pulls it low,
// Deselect releases it.
//
type ChipSelect interface {
	Select()
	Deselect()
}

// Device is a handle on one peripheral.
//
type Device struct {
	bus drivers.SPI
	cs  ChipSelect
	w   [2]byte
}

// New returns a new device on the given bus.
//
func New(bus drivers.SPI, cs ChipSelect) *Device {
	return &Device{bus: bus, cs: cs}
}

func (d *Device) send(f spi.Frame) error {
	d.w = f.Bytes()
	d.cs.Select()
	err := d.bus.Tx(d.w[:], nil)
	d.cs.Deselect()
	if err != nil {
		return errors.Wrapf(err, "spi transfer failed (%v)", f)
	}
	return nil
}

// WriteRegister writes v to the register at addr. Writes to addresses that are
// not backed by a register are sent anyway and ignored by the device.
//
func (d *Device) WriteRegister(addr, v uint8) error {
	f, err := spi.NewFrame(true, addr, v)
	if err != nil {
		return err
	}
	return d.send(f)
}

// RequestRead sends a read request for addr. The device acknowledges nothing.
//
func (d *Device) RequestRead(addr uint8) error {
	f, err := spi.NewFrame(false, addr, 0)
	if err != nil {
		return err
	}
	return d.send(f)
}

// EnableOutputs sets the output enable mask.
//
func (d *Device) EnableOutputs(mask uint8) error {
	return d.WriteRegister(regfile.AddrOutputEnable, mask)
}

// SetOutputData sets the static output data.
//
func (d *Device) SetOutputData(v uint8) error {
	return d.WriteRegister(regfile.AddrOutputData, v)
}

// EnablePWM selects which outputs carry the PWM signal.
//
func (d *Device) EnablePWM(mask uint8) error {
	return d.WriteRegister(regfile.AddrPWMEnable, mask)
}

// SetDutyCycle sets the PWM duty cycle to duty/255.
//
func (d *Device) SetDutyCycle(duty uint8) error {
	return d.WriteRegister(regfile.AddrDutyCycle, duty)
}

// Config is a full device configuration.
//
type Config struct {
	OutputEnable uint8
	PWMEnable    uint8
	OutputData   uint8
	DutyCycle    uint8
}

// Configure writes every register. Outputs are enabled last so that they never
// show a partially configured state.
//
func (d *Device) Configure(cfg Config) error {
	if err := d.SetDutyCycle(cfg.DutyCycle); err != nil {
		return err
	}
	if err := d.SetOutputData(cfg.OutputData); err != nil {
		return err
	}
	if err := d.EnablePWM(cfg.PWMEnable); err != nil {
		return err
	}
	return d.EnableOutputs(cfg.OutputEnable)
}
