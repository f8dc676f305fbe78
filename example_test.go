// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package spipwm_test

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/db47h/spipwm"
	"github.com/db47h/spipwm/driver"
	"github.com/db47h/spipwm/hwtest"
)

// Configure a controller through the register driver, on a bench with a fast
// serial clock.
//
func Example() {
	ctrl, err := spipwm.New(spipwm.DefaultConfig(), zerolog.Nop())
	if err != nil {
		panic(err)
	}
	cfg := hwtest.DefaultBenchConfig()
	cfg.HalfPeriod, cfg.IdleCycles = 2, 8
	b, err := hwtest.NewBench(ctrl, cfg)
	if err != nil {
		panic(err)
	}
	defer b.Dispose()
	b.Reset()

	d := driver.New(b, b)
	if err = d.Configure(driver.Config{OutputEnable: 0x01, PWMEnable: 0x01, DutyCycle: 0x80}); err != nil {
		panic(err)
	}
	fmt.Println(ctrl.Registers())

	m, err := b.MeasurePWM(2 * uint64(ctrl.Config().PWMModulus()))
	if err != nil {
		panic(err)
	}
	fmt.Println(m.PeriodCycles, m.HighCycles)

	// Output:
	// oe=0x01 data=0x00 pwmen=0x01 duty=0x80
	// 3333 1673
}
