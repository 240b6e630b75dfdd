// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package logmerge

import (
	"fmt"

	"go.opentelemetry.io/otel"
	otelmetric "go.opentelemetry.io/otel/metric"
)

var (
	linesInCounter      otelmetric.Int64Counter
	linesOutCounter     otelmetric.Int64Counter
	linesDroppedCounter otelmetric.Int64Counter
	filesFailedCounter  otelmetric.Int64Counter
)

func init() {
	meter := otel.Meter("github.com/vprotasov/armory-take-home/internal/logmerge")

	var err error
	linesInCounter, err = meter.Int64Counter(
		"logmerge.lines.in",
		otelmetric.WithDescription("Number of well-formed lines read from input files"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create lines.in counter: %w", err))
	}

	linesOutCounter, err = meter.Int64Counter(
		"logmerge.lines.out",
		otelmetric.WithDescription("Number of lines emitted by the merge engine"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create lines.out counter: %w", err))
	}

	linesDroppedCounter, err = meter.Int64Counter(
		"logmerge.lines.dropped",
		otelmetric.WithDescription("Number of input lines dropped due to invalid data"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create lines.dropped counter: %w", err))
	}

	filesFailedCounter, err = meter.Int64Counter(
		"logmerge.files.failed",
		otelmetric.WithDescription("Number of input files abandoned after a read error"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create files.failed counter: %w", err))
	}
}
