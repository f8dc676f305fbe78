// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pwm

import (
	"github.com/db47h/spipwm/hwlib"
	"github.com/db47h/spipwm/hwsim"
)

type part struct {
	Duty [8]int `hw:"in"`
	RstN int    `hw:"in,rst_n"`
	Out  int    `hw:"out"`

	g *Generator
}

func (p *part) Update(c *hwsim.Circuit) {
	switch {
	case !c.Get(p.RstN):
		p.g.Reset()
	case c.AtTick():
		p.g.Clock(uint8(hwlib.Int64(c, p.Duty[:])))
	}
	c.Set(p.Out, p.g.Out())
}

// Part returns a part wrapping g. The generator is clocked on every rising edge
// and its output is registered. rst_n low resets the generator on any step.
//
//	Inputs: duty[8], rst_n
//	Outputs: out
//
// g must not be mounted more than once.
//
func Part(g *Generator) hwsim.NewPartFn {
	sp := hwsim.MakePart(&part{g: g})
	sp.Name = "PWM"
	return sp.NewPart
}
