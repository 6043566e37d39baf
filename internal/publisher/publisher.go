// Package publisher pushes finished reports to downstream consumers.
package publisher

import (
	"context"
	"errors"

	"github.com/XavierBriggs/Pythia/internal/report"
)

// ErrNoReport is returned when no report has been published for a sport
var ErrNoReport = errors.New("no report published")

// Publisher receives every finished report
type Publisher interface {
	Publish(ctx context.Context, r *report.Report) error
}

// LatestSource serves the rows of the most recent report as JSON
type LatestSource interface {
	Latest(ctx context.Context, sportKey string) ([]byte, error)
}

// Nop discards reports. Used when no Redis address is configured.
type Nop struct{}

// Publish does nothing
func (Nop) Publish(context.Context, *report.Report) error {
	return nil
}
