package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	correctionsName = "prediction.corrections"
	distanceName    = "prediction.correction.distance"
	replayedName    = "prediction.inputs.replayed"
)

// Metrics is an in-process meter provider whose readings are pulled on
// demand, so the client can show them without an external collector.
type Metrics struct {
	provider *sdkmetric.MeterProvider
	reader   *sdkmetric.ManualReader
}

// Totals are the cumulative prediction metrics read back from the provider.
type Totals struct {
	Corrections   int64
	Replayed      int64
	DistanceCount uint64
	DistanceSum   float64
	DistanceMax   float64
}

// MeanDistance is the average correction distance, or 0 with no corrections.
func (t Totals) MeanDistance() float64 {
	if t.DistanceCount == 0 {
		return 0
	}
	return t.DistanceSum / float64(t.DistanceCount)
}

// Setup creates the meter provider and registers it globally.
//
// Call Shutdown when done.
func Setup(ctx context.Context, serviceName string) (*Metrics, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics resource: %w", err)
	}

	m := newMetrics(sdkmetric.WithResource(res))
	otel.SetMeterProvider(m.provider)
	return m, nil
}

func newMetrics(opts ...sdkmetric.Option) *Metrics {
	reader := sdkmetric.NewManualReader()
	opts = append(opts, sdkmetric.WithReader(reader))
	return &Metrics{
		provider: sdkmetric.NewMeterProvider(opts...),
		reader:   reader,
	}
}

// MeterProvider returns the provider to create instruments on.
func (m *Metrics) MeterProvider() metric.MeterProvider {
	return m.provider
}

// Collect reads the current totals of every prediction instrument.
func (m *Metrics) Collect(ctx context.Context) (Totals, error) {
	var rm metricdata.ResourceMetrics
	if err := m.reader.Collect(ctx, &rm); err != nil {
		return Totals{}, fmt.Errorf("collect metrics: %w", err)
	}

	var t Totals
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			switch data := md.Data.(type) {
			case metricdata.Sum[int64]:
				var total int64
				for _, dp := range data.DataPoints {
					total += dp.Value
				}
				switch md.Name {
				case correctionsName:
					t.Corrections = total
				case replayedName:
					t.Replayed = total
				}
			case metricdata.Histogram[float64]:
				if md.Name != distanceName {
					continue
				}
				for _, dp := range data.DataPoints {
					t.DistanceCount += dp.Count
					t.DistanceSum += dp.Sum
					if max, ok := dp.Max.Value(); ok && max > t.DistanceMax {
						t.DistanceMax = max
					}
				}
			}
		}
	}
	return t, nil
}

// Shutdown flushes and stops the provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
