// Package telemetry exports simulation counters through OpenTelemetry
// The global meter provider is a no-op unless the host installs one
package telemetry

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/lixenwraith/mazecar"

// Meter holds the instruments written by the simulation
type Meter struct {
	bounces  metric.Int64Counter
	rejected metric.Int64Counter
	ticks    metric.Int64Counter
}

// NewGlobal creates instruments on the global meter provider
func NewGlobal() (*Meter, error) {
	return New(otel.Meter(meterName))
}

// New creates instruments on m
func New(m metric.Meter) (*Meter, error) {
	var (
		t   Meter
		err error
	)

	t.bounces, err = m.Int64Counter(
		"mazecar.bounces",
		metric.WithDescription("Bounces detected, by collision source"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating bounce counter")
	}

	t.rejected, err = m.Int64Counter(
		"mazecar.rotations.rejected",
		metric.WithDescription("Bounce rotations rejected because a turn was already animating"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating rejection counter")
	}

	t.ticks, err = m.Int64Counter(
		"mazecar.ticks",
		metric.WithDescription("Simulation ticks executed"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating tick counter")
	}

	return &t, nil
}

// Bounce records one detected bounce from source
func (t *Meter) Bounce(ctx context.Context, source string) {
	t.bounces.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// Rejected records one rejected rotation
func (t *Meter) Rejected(ctx context.Context) {
	t.rejected.Add(ctx, 1)
}

// Tick records one simulation tick
func (t *Meter) Tick(ctx context.Context) {
	t.ticks.Add(ctx, 1)
}
