// Package telemetry reports prediction corrections as OpenTelemetry metrics.
//
// Instruments are created on the provider from Setup, or on whatever global
// provider the process installed.
package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/automoto/doomerang-predict/prediction"
)

const meterName = "github.com/automoto/doomerang-predict/prediction"

// Recorder is a prediction.StatsObserver backed by OpenTelemetry
// instruments. It also keeps the largest correction seen for the HUD.
type Recorder struct {
	corrections metric.Int64Counter
	distance    metric.Float64Histogram
	replayed    metric.Int64Counter
	attrs       metric.MeasurementOption

	mu   sync.Mutex
	peak float64
}

var _ prediction.StatsObserver = (*Recorder)(nil)

// NewRecorder creates the instruments on mp. A nil mp uses the global
// provider.
func NewRecorder(mp metric.MeterProvider, player string) (*Recorder, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	corrections, err := meter.Int64Counter(correctionsName,
		metric.WithDescription("Authoritative corrections applied to the local body"))
	if err != nil {
		return nil, fmt.Errorf("corrections counter: %w", err)
	}
	distance, err := meter.Float64Histogram(distanceName,
		metric.WithDescription("Distance between predicted and authoritative position"),
		metric.WithUnit("m"))
	if err != nil {
		return nil, fmt.Errorf("distance histogram: %w", err)
	}
	replayed, err := meter.Int64Counter(replayedName,
		metric.WithDescription("Pending inputs replayed after a correction"))
	if err != nil {
		return nil, fmt.Errorf("replay counter: %w", err)
	}

	return &Recorder{
		corrections: corrections,
		distance:    distance,
		replayed:    replayed,
		attrs:       metric.WithAttributes(attribute.String("player", player)),
	}, nil
}

func (r *Recorder) ObserveCorrection(_ prediction.Vec3, distance float64) {
	ctx := context.Background()
	r.corrections.Add(ctx, 1, r.attrs)
	r.distance.Record(ctx, distance, r.attrs)

	r.mu.Lock()
	if distance > r.peak {
		r.peak = distance
	}
	r.mu.Unlock()
}

func (r *Recorder) ObserveReplay(n int) {
	if n <= 0 {
		return
	}
	r.replayed.Add(context.Background(), int64(n), r.attrs)
}

// Peak returns the largest correction distance observed so far.
func (r *Recorder) Peak() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.peak
}

// ResetPeak clears the largest observed correction, e.g. after a respawn.
func (r *Recorder) ResetPeak() {
	r.mu.Lock()
	r.peak = 0
	r.mu.Unlock()
}
