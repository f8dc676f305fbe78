// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pwm

import "github.com/db47h/spipwm/internal/metrics"

var (
	// Number of counter wraps
	periodsTotal = metrics.MustRegisterCounter("pwm",
		"periods_total",
		"Number of completed PWM counter periods")
	// Threshold latched at the last counter wrap
	thresholdCycles = metrics.MustRegisterGauge("pwm",
		"threshold_cycles",
		"Number of high cycles per period latched at the last counter wrap")
)
