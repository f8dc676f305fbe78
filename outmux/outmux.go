// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package outmux routes either the PWM signal or the static output data onto
// each bit of the output bus, gated by the output enable register.
//
// For every bit i:
//
//	out[i] = oe[i] ? (pwmen[i] ? pwm : data[i]) : 0
//
package outmux

import (
	"strconv"

	"github.com/db47h/spipwm/hwlib"
	"github.com/db47h/spipwm/hwsim"
)

// Width is the output bus width.
const Width = 8

// Select is the reference function of the multiplexer.
//
func Select(oe, pwmen, data uint8, pwm bool) uint8 {
	var p uint8
	if pwm {
		p = 0xff
	}
	return oe & (pwmen&p | ^pwmen&data)
}

var (
	inputs  = pinList("oe", "pwmen", "data")
	outputs = pinList("out")
)

func pinList(names ...string) []string {
	var l []string
	for _, n := range names {
		for i := 0; i < Width; i++ {
			l = append(l, hwsim.BusPinName(n, i))
		}
	}
	return l
}

var mux = hwsim.PartSpec{
	Name:    "OUTMUX",
	Inputs:  append(inputs[:len(inputs):len(inputs)], "pwm"),
	Outputs: outputs,
	Mount: func(s *hwsim.Socket) []hwsim.Component {
		oe, pwmen, data := s.Bus("oe"), s.Bus("pwmen"), s.Bus("data")
		pwm, out := s.Pin("pwm"), s.Bus("out")
		return []hwsim.Component{func(c *hwsim.Circuit) {
			v := Select(uint8(hwlib.Int64(c, oe)), uint8(hwlib.Int64(c, pwmen)), uint8(hwlib.Int64(c, data)), c.Get(pwm))
			hwlib.SetInt64(c, out, int64(v))
		}}
	},
}

// Mux returns the behavioral output multiplexer.
//
//	Inputs: oe[8], pwmen[8], data[8], pwm
//	Outputs: out[8]
//
func Mux(w string) hwsim.Part { return mux.NewPart(w) }

// Gates is the gate level output multiplexer: one Mux per output bit selecting
// between data and pwm, then an 8 bit And gate with oe. It has the same pins as
// Mux.
//
var Gates = gates()

func and(a, b bool) bool { return a && b }

func gates() hwsim.NewPartFn {
	var parts hwsim.Parts
	for i := 0; i < Width; i++ {
		n := strconv.Itoa(i)
		parts = append(parts,
			hwlib.Mux("a=data["+n+"], b=pwm, sel=pwmen["+n+"], out=sel["+n+"]"))
	}
	parts = append(parts, hwlib.GateN("AND", Width, and)("a=sel, b=oe, out=out"))
	fn, err := hwsim.Chip("OUTMUXGATES", "oe[8], pwmen[8], data[8], pwm", "out[8]", parts...)
	if err != nil {
		panic(err)
	}
	return fn
}
