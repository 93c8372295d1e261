// SPDX-License-Identifier: MIT

package summary

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the root of every summary validation failure.
var ErrConfiguration = errors.New("summary: configuration error")

var (
	// ErrReportBeforeStart indicates a report grid starting before the first observation.
	ErrReportBeforeStart = fmt.Errorf("%w: report time before first observation", ErrConfiguration)

	// ErrLengthMismatch indicates a series whose length differs from its times.
	ErrLengthMismatch = fmt.Errorf("%w: series and times differ in length", ErrConfiguration)

	// ErrEmpty indicates no observations.
	ErrEmpty = fmt.Errorf("%w: no observations", ErrConfiguration)
)
