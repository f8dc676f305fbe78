// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package regfile

import "github.com/db47h/spipwm/internal/metrics"

const subSystem = "regfile"

var (
	writesCommittedTotal = metrics.MustRegisterCounter(subSystem,
		"writes_committed_total",
		"Number of writes stored in a register")
	writesDroppedTotal = metrics.MustRegisterCounter(subSystem,
		"writes_dropped_total",
		"Number of writes to invalid addresses")
	readRequestsTotal = metrics.MustRegisterCounter(subSystem,
		"read_requests_total",
		"Number of read requests received")
)
