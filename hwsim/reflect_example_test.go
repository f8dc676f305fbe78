// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim_test

import (
	"fmt"

	"github.com/db47h/spipwm/hwlib"
	hw "github.com/db47h/spipwm/hwsim"
)

// mux4 is a custom 4 bits mux.
//
type mux4Impl struct {
	A   [4]int `hw:"in"`     // input bus "a"
	B   [4]int `hw:"in"`     // input bus "b"
	S   int    `hw:"in,sel"` // single pin, the second tag value forces the pin name to "sel"
	Out [4]int `hw:"out"`    // output bus "out"
}

// Update implements Updater.
//
func (m *mux4Impl) Update(c *hw.Circuit) {
	src := m.A
	if c.Get(m.S) {
		src = m.B
	}
	for i := range src {
		c.Set(m.Out[i], c.Get(src[i]))
	}
}

// no need to import reflect, just cast a nil pointer to mux4
var m4Spec = hw.MakePart((*mux4Impl)(nil))

// Mux4 wraps m4Spec.NewPart in order to use it like the built-ins in hwlib.
func Mux4(c string) hw.Part { return m4Spec.NewPart(c) }

// MakePart example with a custom Mux4
func ExampleMakePart() {
	var a, b, out int64
	var sel bool
	c, err := hw.NewCircuit(1, 8,
		// IOs to test the circuit
		hwlib.InputN(4, func() int64 { return a })("out=in_a"),
		hwlib.InputN(4, func() int64 { return b })("out=in_b"),
		hwlib.Input(func() bool { return sel })("out=in_sel"),
		// our custom Mux4
		Mux4("a=in_a, b=in_b, sel=in_sel, out=mux_out"),
		// IOs continued...
		hwlib.OutputN(4, func(v int64) { out = v })("in=mux_out"),
	)
	if err != nil {
		panic(err)
	}
	defer c.Dispose()

	a, b, sel = 1, 15, false
	c.TickTock()
	fmt.Printf("a=%d, b=%d, sel=%v => out=%d\n", a, b, sel, out)
	sel = true
	c.TickTock()
	fmt.Printf("a=%d, b=%d, sel=%v => out=%d\n", a, b, sel, out)

	// Output:
	// a=1, b=15, sel=false => out=1
	// a=1, b=15, sel=true => out=15
}
