// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pwm_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/spipwm/hwlib"
	"github.com/db47h/spipwm/hwsim"
	"github.com/db47h/spipwm/pwm"
)

func TestModulus(t *testing.T) {
	data := []struct {
		clk, freq, m uint32
	}{
		{10000000, 3000, 3333},
		{10000000, 3001, 3332},
		{10000000, 1000, 10000},
		{100, 100, 1},
		{100, 0, 0},
		{100, 101, 0},
		{10, 4, 3}, // 2.5 rounds up
	}
	for _, d := range data {
		if m := pwm.Modulus(d.clk, d.freq); m != d.m {
			t.Errorf("Modulus(%d, %d) = %d, expected %d", d.clk, d.freq, m, d.m)
		}
	}
}

func TestScale(t *testing.T) {
	f := func(m uint32) bool {
		m = m%100000 + 1
		return pwm.Scale(0, m) == 0 && pwm.Scale(pwm.MaxDuty, m) == m
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
	if s := pwm.Scale(0x80, 3333); s != 1673 {
		t.Fatalf("Scale(0x80, 3333) = %d, expected 1673", s)
	}
	// monotonic
	for d := 1; d <= pwm.MaxDuty; d++ {
		if pwm.Scale(uint8(d), 3333) < pwm.Scale(uint8(d-1), 3333) {
			t.Fatalf("Scale not monotonic at %d", d)
		}
	}
}

func highCount(g *pwm.Generator, duty uint8, n int) int {
	cnt := 0
	for i := 0; i < n; i++ {
		if g.Clock(duty) {
			cnt++
		}
	}
	return cnt
}

func TestGenerator_duty(t *testing.T) {
	const m = 3333
	for _, duty := range []uint8{0x00, 0x01, 0x80, 0xCF, 0xFE, 0xFF} {
		g := pwm.NewGenerator(m)
		if h := highCount(g, duty, 2*m); h != 2*int(pwm.Scale(duty, m)) {
			t.Errorf("duty %02x: %d high cycles over two periods, expected %d", duty, h, 2*pwm.Scale(duty, m))
		}
	}
	// edge cases: never high, never low.
	g := pwm.NewGenerator(m)
	if h := highCount(g, 0, 3*m); h != 0 {
		t.Errorf("duty 0: output high for %d cycles", h)
	}
	g = pwm.NewGenerator(m)
	if h := highCount(g, 0xFF, 3*m); h != 3*m {
		t.Errorf("duty 255: output low for %d cycles", 3*m-h)
	}
}

func TestGenerator_counter(t *testing.T) {
	g := pwm.NewGenerator(7)
	if g.Modulus() != 7 {
		t.Fatalf("Modulus() = %d", g.Modulus())
	}
	for i := 1; i <= 30; i++ {
		g.Clock(uint8(i))
		if c := g.Counter(); c != uint32(i%7) {
			t.Fatalf("after %d clocks: counter = %d, expected %d", i, c, i%7)
		}
	}
}

// A duty change takes effect at the start of the next period.
func TestGenerator_latch(t *testing.T) {
	const m = 10
	g := pwm.NewGenerator(m)
	g.Clock(0xFF)
	if g.Threshold() != m {
		t.Fatalf("threshold %d, expected %d", g.Threshold(), m)
	}
	// rest of the period stays high with duty 0.
	for i := 1; i < m; i++ {
		if !g.Clock(0) {
			t.Fatalf("cycle %d: output dropped mid-period", i)
		}
	}
	for i := 0; i < m; i++ {
		if g.Clock(0) {
			t.Fatalf("cycle %d of the next period: output high", i)
		}
	}
	if g.Threshold() != 0 {
		t.Fatalf("threshold %d, expected 0", g.Threshold())
	}
}

func TestGenerator_Reset(t *testing.T) {
	g := pwm.NewGenerator(10)
	highCount(g, 0xFF, 15)
	g.Reset()
	if g.Counter() != 0 || g.Threshold() != 0 || g.Out() {
		t.Fatalf("counter %d, threshold %d, out %v after Reset", g.Counter(), g.Threshold(), g.Out())
	}
}

func TestNewGenerator_zero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewGenerator(0) did not panic")
		}
	}()
	pwm.NewGenerator(0)
}

func TestPart(t *testing.T) {
	const m = 20
	g := pwm.NewGenerator(m)
	var (
		duty int64 = 0x80
		rstN       = true
		out  bool
	)
	c, err := hwsim.NewCircuit(1, 8,
		hwlib.InputN(8, func() int64 { return duty })("out=duty"),
		hwlib.Input(func() bool { return rstN })("out=rst_n"),
		pwm.Part(g)("duty=duty, rst_n=rst_n, out=pwm"),
		hwlib.Output(func(v bool) { out = v })("in=pwm"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	// skip to a period boundary.
	c.TickTock()
	for g.Counter() != 0 {
		c.TickTock()
	}
	high := 0
	for i := 0; i < m; i++ {
		c.TickTock()
		if out {
			high++
		}
	}
	if exp := int(pwm.Scale(0x80, m)); high != exp {
		t.Fatalf("got %d high cycles, expected %d", high, exp)
	}

	rstN = false
	c.TickTock()
	if g.Counter() != 0 || out {
		t.Fatalf("counter %d, out %v during reset", g.Counter(), out)
	}
}
