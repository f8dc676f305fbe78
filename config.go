// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package spipwm

import (
	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/pkg/errors"

	"github.com/db47h/spipwm/pwm"
)

// Default configuration values.
const (
	DefaultClockHz        = 10000000
	DefaultPWMFrequencyHz = 3000
)

// Config holds the controller's build time parameters.
//
type Config struct {
	// System clock frequency in Hz.
	ClockHz uint32
	// Target PWM output frequency in Hz. Used to derive the counter modulus
	// when Modulus is 0.
	PWMFrequencyHz uint32
	// PWM counter modulus. If 0, it is derived from ClockHz and PWMFrequencyHz.
	Modulus uint32
}

// DefaultConfig returns a 10 MHz controller producing a 3 kHz PWM signal.
//
func DefaultConfig() Config {
	return Config{
		ClockHz:        DefaultClockHz,
		PWMFrequencyHz: DefaultPWMFrequencyHz,
	}
}

// PWMModulus returns the PWM counter modulus.
//
func (c Config) PWMModulus() uint32 {
	if c.Modulus != 0 {
		return c.Modulus
	}
	return pwm.Modulus(c.ClockHz, c.PWMFrequencyHz)
}

// PWMFrequency returns the actual PWM output frequency in Hz.
//
func (c Config) PWMFrequency() float64 {
	m := c.PWMModulus()
	if m == 0 {
		return 0
	}
	return float64(c.ClockHz) / float64(m)
}

// Validate checks the configuration and reports every problem found.
//
func (c Config) Validate() error {
	var ae aerr.AggregateError
	if c.ClockHz == 0 {
		ae.Add(errors.New("clock frequency must be positive"))
	}
	if c.Modulus == 0 {
		switch {
		case c.PWMFrequencyHz == 0:
			ae.Add(errors.New("PWM frequency must be positive"))
		case c.PWMFrequencyHz > c.ClockHz:
			ae.Add(errors.Errorf("PWM frequency %d Hz above clock frequency %d Hz", c.PWMFrequencyHz, c.ClockHz))
		}
	}
	if m := c.PWMModulus(); m == 1 {
		ae.Add(errors.New("PWM modulus must be at least 2"))
	}
	return ae.AsError()
}
