// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits, and a bench
// that drives the controller through its serial interface.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/spipwm/hwlib"
	"github.com/db47h/spipwm/hwsim"
)

// connString connects inputs to wires of the same name, and outputs to wires
// with the given prefix.
//
func connString(ps *hwsim.PartSpec, prefix string) string {
	var b strings.Builder
	for _, n := range ps.Inputs {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(n)
	}
	for _, n := range ps.Outputs {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(prefix)
		b.WriteString(n)
	}
	return b.String()
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same Input/Output interface. Inputs are all false,
// then all true, then random.
//
func ComparePart(t *testing.T, tpc uint, part1 hwsim.NewPartFn, part2 hwsim.NewPartFn) {
	t.Helper()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	ps1, ps2 := part1("").PartSpec, part2("").PartSpec

	// compare specs
	if len(ps1.Inputs) != len(ps2.Inputs) {
		t.Fatal("len(ps1.Inputs) != len(ps2.Inputs)")
	}
	if len(ps1.Outputs) != len(ps2.Outputs) {
		t.Fatal("len(ps1.Outputs) != len(ps2.Outputs)")
	}
	for i := range ps1.Inputs {
		if ps1.Inputs[i] != ps2.Inputs[i] {
			t.Fatalf("ps1.Inputs[i] = %q != ps2.Inputs[i] = %q", ps1.Inputs[i], ps2.Inputs[i])
		}
	}
	for i := range ps1.Outputs {
		if ps1.Outputs[i] != ps2.Outputs[i] {
			t.Fatalf("ps1.Outputs[i] = %q != ps2.Outputs[i] = %q", ps1.Outputs[i], ps2.Outputs[i])
		}
	}

	inputs := make([]bool, len(ps1.Inputs))
	outputs := make([][2]bool, len(ps1.Outputs))

	var parts hwsim.Parts
	for i, n := range ps1.Inputs {
		k := i
		parts = append(parts, hwlib.Input(func() bool { return inputs[k] })("out="+n))
	}
	parts = append(parts, part1(connString(ps1, "p1_")), part2(connString(ps2, "p2_")))
	for i, n := range ps1.Outputs {
		k := i
		parts = append(parts,
			hwlib.Output(func(b bool) { outputs[k][0] = b })("in=p1_"+n),
			hwlib.Output(func(b bool) { outputs[k][1] = b })("in=p2_"+n))
	}

	c, err := hwsim.NewCircuit(1, tpc, parts...)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	errString := func(oname string, ex, got bool) string {
		var b strings.Builder
		for i, n := range ps1.Inputs {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", n, inputs[i])
		}
		return fmt.Sprintf("\n%s: %s => %s=%v\n%s: got %v", ps1.Name, b.String(), oname, ex, ps2.Name, got)
	}
	check := func() {
		t.Helper()
		c.TickTock()
		for o, out := range outputs {
			if out[0] != out[1] {
				t.Fatal(errString(ps1.Outputs[o], out[0], out[1]))
			}
		}
	}

	// try all 0
	check()
	// try all 1
	for in := range inputs {
		inputs[in] = true
	}
	check()

	iter := len(ps1.Inputs)
	if iter > 12 {
		iter = 12
	}
	iter = 1 << uint(iter)

	start := time.Now()
	for i := 0; i < iter; i++ {
		for in := range inputs {
			inputs[in] = rnd.Int63()&(1<<62) != 0
		}
		check()
	}

	elapsed := time.Since(start)
	t.Logf("%d components. %d steps in %v. %d clock ticks => %.2f Hz", c.Size(), c.Steps(), elapsed, c.Cycles(), float64(c.Cycles())/elapsed.Seconds())
}
