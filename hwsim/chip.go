// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"github.com/pkg/errors"
)

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs
// and outputs of the chip. Any other wire name used in the parts' connections
// is an internal wire of the chip.
//
// An Xor gate could be created like this:
//
//	xor, err := Chip("XOR", "a, b", "out",
//		hwlib.Nand("a=a, b=b, out=nandAB"),
//		hwlib.Nand("a=a, b=nandAB, out=w0"),
//		hwlib.Nand("a=b, b=nandAB, out=w1"),
//		hwlib.Nand("a=w0, b=w1, out=out"),
//	)
//
// The returned value is a function of type NewPartFn that can be used to
// compose the new part with others into other chips:
//
//	xnor, err := Chip("XNOR", "a, b", "out",
//		xor("a=a, b=b, out=xorAB"),
//		hwlib.Not("in=xorAB, out=out"),
//	)
//
// Every wire must be driven by exactly one part output or chip input. Chip
// outputs may also be read by the chip's own parts. Part inputs left
// unconnected read false.
//
func Chip(name string, inputs string, outputs string, parts ...Part) (NewPartFn, error) {
	ins, err := ParseIOSpec(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+": invalid input specification")
	}
	outs, err := ParseIOSpec(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+": invalid output specification")
	}

	// drivers maps wire names to the pin driving them.
	drivers := make(map[string]string, len(ins)+len(outs))
	for _, n := range ins {
		if IsConstant(n) {
			return nil, errors.Errorf("%s: input pin %q shadows a constant", name, n)
		}
		if _, ok := drivers[n]; ok {
			return nil, errors.Errorf("%s: duplicate input pin %q", name, n)
		}
		drivers[n] = name + "." + n
	}
	for _, n := range outs {
		if IsConstant(n) {
			return nil, errors.Errorf("%s: output pin %q shadows a constant", name, n)
		}
		if _, ok := drivers[n]; ok {
			return nil, errors.Errorf("%s: pin %q declared twice", name, n)
		}
	}

	for _, p := range parts {
		used := make(map[string]bool, len(p.Conns))
		for _, cn := range p.Conns {
			if used[cn.PP] {
				return nil, errors.Errorf("%s: pin %s.%s connected more than once", name, p.Name, cn.PP)
			}
			used[cn.PP] = true
			if !p.isOutput(cn.PP) {
				continue
			}
			if IsConstant(cn.CP) {
				return nil, errors.Errorf("%s: output pin %s.%s connected to constant %q", name, p.Name, cn.PP, cn.CP)
			}
			if d, ok := drivers[cn.CP]; ok {
				return nil, errors.Errorf("%s: wire %q driven by both %s and %s.%s", name, cn.CP, d, p.Name, cn.PP)
			}
			drivers[cn.CP] = p.Name + "." + cn.PP
		}
	}

	for _, n := range outs {
		if _, ok := drivers[n]; !ok {
			return nil, errors.Errorf("%s: output pin %q not connected to any part output", name, n)
		}
	}
	for _, p := range parts {
		for _, cn := range p.Conns {
			if !p.isInput(cn.PP) || IsConstant(cn.CP) {
				continue
			}
			if _, ok := drivers[cn.CP]; !ok {
				return nil, errors.Errorf("%s: pin %s.%s reads wire %q which is not connected to any output", name, p.Name, cn.PP, cn.CP)
			}
		}
	}

	spec := &PartSpec{
		Name:    name,
		Inputs:  ins,
		Outputs: outs,
	}
	spec.Mount = func(s *Socket) []Component {
		inner := newSocket(s.c)
		for _, n := range ins {
			inner.m[n] = s.Pin(n)
		}
		for _, n := range outs {
			inner.m[n] = s.Pin(n)
		}
		var cs []Component
		for _, p := range parts {
			sub := newSocket(s.c)
			for _, cn := range p.Conns {
				sub.m[cn.PP] = inner.PinOrNew(cn.CP)
			}
			// unconnected inputs read false, unconnected outputs dangle.
			for _, n := range p.Inputs {
				if _, ok := sub.m[n]; !ok {
					sub.m[n] = cstFalse
				}
			}
			for _, n := range p.Outputs {
				if _, ok := sub.m[n]; !ok {
					sub.m[n] = s.c.allocPin()
				}
			}
			cs = append(cs, p.Mount(sub)...)
		}
		return cs
	}
	return spec.NewPart, nil
}
