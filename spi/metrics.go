// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package spi

import "github.com/db47h/spipwm/internal/metrics"

const subSystem = "spi"

var (
	// Number of frames received with all 16 bits, per direction
	framesCommittedTotal = metrics.MustRegisterCounterVec(subSystem,
		"frames_committed_total",
		"Number of complete frames decoded",
		"direction")
	// Number of frames discarded by an early chip-select release
	framesAbortedTotal = metrics.MustRegisterCounter(subSystem,
		"frames_aborted_total",
		"Number of partial frames discarded by chip-select release")
)
