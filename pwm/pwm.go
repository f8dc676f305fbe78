// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package pwm implements a free-running counter/comparator PWM generator.
//
// The counter counts 0 .. M-1 once per system clock cycle and wraps, so the
// output frequency is clock/M. The output is high while the counter is below a
// threshold derived from the 8 bit duty register, scaled so that duty 0 never
// drives the output high and duty 255 never drives it low.
//
package pwm

import "math"

// MaxDuty is the duty register value for a permanently high output.
const MaxDuty = 255

// Modulus returns the counter modulus producing freqHz from a clockHz system
// clock, rounded to the nearest integer. It returns 0 if freqHz is 0 or larger
// than clockHz.
//
func Modulus(clockHz, freqHz uint32) uint32 {
	if freqHz == 0 || freqHz > clockHz {
		return 0
	}
	return uint32(math.Round(float64(clockHz) / float64(freqHz)))
}

// Scale maps an 8 bit duty value linearly onto [0, m].
//
func Scale(duty uint8, m uint32) uint32 {
	return uint32(uint64(duty) * uint64(m) / MaxDuty)
}

// A Generator is the PWM counter and comparator.
//
// The comparison threshold is latched from the duty value when the counter
// wraps to 0, so a new duty value takes effect at the start of the next period
// and a period is never cut short or stretched.
//
type Generator struct {
	m         uint32
	counter   uint32
	threshold uint32
	out       bool
}

// NewGenerator returns a generator with counter modulus m. It panics if m is 0.
//
func NewGenerator(m uint32) *Generator {
	if m == 0 {
		panic("pwm: zero modulus")
	}
	return &Generator{m: m}
}

// Modulus returns the counter modulus.
//
func (g *Generator) Modulus() uint32 { return g.m }

// Counter returns the current counter value.
//
func (g *Generator) Counter() uint32 { return g.counter }

// Threshold returns the latched comparison threshold.
//
func (g *Generator) Threshold() uint32 { return g.threshold }

// Out returns the output computed by the last call to Clock.
//
func (g *Generator) Out() bool { return g.out }

// Reset clears the counter and the latched threshold. The output is low until
// the next call to Clock.
//
func (g *Generator) Reset() {
	g.counter, g.threshold, g.out = 0, 0, false
}

// Clock advances the generator by one clock cycle and returns the output for
// the current counter value.
//
func (g *Generator) Clock(duty uint8) bool {
	if g.counter == 0 {
		g.threshold = Scale(duty, g.m)
		thresholdCycles.Set(float64(g.threshold))
	}
	g.out = g.counter < g.threshold
	g.counter++
	if g.counter == g.m {
		g.counter = 0
		periodsTotal.Inc()
	}
	return g.out
}
