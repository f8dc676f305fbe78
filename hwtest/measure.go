// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"github.com/pkg/errors"
)

// PWMBit is the primary output bit sampled by WaitEdge and MeasurePWM.
const PWMBit = 0

func (b *Bench) pwmOut() bool { return b.uo&(1<<PWMBit) != 0 }

// WaitEdge runs the simulation one cycle at a time until bit 0 of uo_out has a
// rising (or falling) edge. It returns the cycle count at which the edge was
// observed and true, or the current cycle count and false if no edge happened
// within timeout cycles.
//
func (b *Bench) WaitEdge(rising bool, timeout uint64) (uint64, bool) {
	prev := b.pwmOut()
	for i := uint64(0); i < timeout; i++ {
		b.Cycle(1)
		cur := b.pwmOut()
		if cur != prev && cur == rising {
			return b.Now(), true
		}
		prev = cur
	}
	return b.Now(), false
}

// A Measurement is the timing of one PWM period observed on uo_out[0].
//
type Measurement struct {
	PeriodCycles uint64
	HighCycles   uint64
	// Frequency in Hz, based on the controller's clock frequency.
	Frequency float64
	// High time to period ratio, in [0, 1].
	Duty float64
}

// MeasurePWM waits for a rising edge, a falling edge and the next rising edge
// on uo_out[0]. timeout applies to each edge.
//
func (b *Bench) MeasurePWM(timeout uint64) (Measurement, error) {
	t0, ok := b.WaitEdge(true, timeout)
	if !ok {
		return Measurement{}, errors.Errorf("no rising edge within %d cycles", timeout)
	}
	t1, ok := b.WaitEdge(false, timeout)
	if !ok {
		return Measurement{}, errors.Errorf("no falling edge within %d cycles", timeout)
	}
	t2, ok := b.WaitEdge(true, timeout)
	if !ok {
		return Measurement{}, errors.Errorf("no second rising edge within %d cycles", timeout)
	}
	m := Measurement{
		PeriodCycles: t2 - t0,
		HighCycles:   t1 - t0,
	}
	m.Frequency = float64(b.ctrl.Config().ClockHz) / float64(m.PeriodCycles)
	m.Duty = float64(m.HighCycles) / float64(m.PeriodCycles)
	return m, nil
}
