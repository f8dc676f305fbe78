// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/spipwm/hwsim"
)

// DFF returns a clocked data flip flop.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
func DFF(w string) hwsim.Part { return dff.NewPart(w) }

var dff = hwsim.PartSpec{
	Name:    "DFF",
	Inputs:  []string{pIn},
	Outputs: []string{pOut},
	Mount: func(s *hwsim.Socket) []hwsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		var curOut bool
		return []hwsim.Component{
			func(c *hwsim.Circuit) {
				// raising edge?
				if c.AtTick() {
					curOut = c.Get(in)
				}
				c.Set(out, curOut)
			}}
	},
}

// DFFN returns an N-bits register built from data flip flops.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i](t) = in[i](t-1) }
//
func DFFN(bits int) hwsim.NewPartFn {
	return (&hwsim.PartSpec{
		Name:    "DFF" + strconv.Itoa(bits),
		Inputs:  bus(bits, pIn),
		Outputs: bus(bits, pOut),
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			in, out := s.Bus(pIn), s.Bus(pOut)
			cur := make([]bool, bits)
			return []hwsim.Component{
				func(c *hwsim.Circuit) {
					if c.AtTick() {
						for i := range in {
							cur[i] = c.Get(in[i])
						}
					}
					for i := range out {
						c.Set(out[i], cur[i])
					}
				}}
		}}).NewPart
}

// DFFR returns a data flip flop with an asynchronous active-low clear.
// Clearing does not wait for a clock edge: out goes low on the step following
// rst_n going low and stays low for as long as rst_n is held.
//
//	Inputs: in, rst_n
//	Outputs: out
//	Function: if !rst_n { out = 0 } else { out(t) = in(t-1) }
//
func DFFR(w string) hwsim.Part { return dffr.NewPart(w) }

var dffr = hwsim.PartSpec{
	Name:    "DFFR",
	Inputs:  []string{pIn, pRstN},
	Outputs: []string{pOut},
	Mount: func(s *hwsim.Socket) []hwsim.Component {
		in, rst, out := s.Pin(pIn), s.Pin(pRstN), s.Pin(pOut)
		var curOut bool
		return []hwsim.Component{
			func(c *hwsim.Circuit) {
				switch {
				case !c.Get(rst):
					curOut = false
				case c.AtTick():
					curOut = c.Get(in)
				}
				c.Set(out, curOut)
			}}
	},
}

var resetSync = must(hwsim.Chip("RESETSYNC", pRstN, pOut,
	DFFR("in=true, rst_n=rst_n, out=q0"),
	DFFR("in=q0, rst_n=rst_n, out=out"),
))

// ResetSync returns a two stage reset synchronizer. Assertion of rst_n
// propagates to out without waiting for the clock; release is synchronous and
// becomes visible on out after the second rising edge with rst_n high.
//
//	Inputs: rst_n
//	Outputs: out
//
func ResetSync(w string) hwsim.Part { return resetSync(w) }

func must(fn hwsim.NewPartFn, err error) hwsim.NewPartFn {
	if err != nil {
		panic(err)
	}
	return fn
}
