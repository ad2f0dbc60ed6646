package telemetry

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-lotes/internal/application/inventory"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// durationBuckets límites en milisegundos para stock_movement_duration_ms.
var durationBuckets = []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500}

var _ inventory.MovementObserver = (*StockMetrics)(nil)

// StockMetrics implementa inventory.MovementObserver sobre instrumentos OpenTelemetry.
type StockMetrics struct {
	movements   metric.Int64Counter
	duration    metric.Float64Histogram
	errors      metric.Int64Counter
	allocations metric.Int64Counter
}

// NewStockMetrics registra los instrumentos en meter.
func NewStockMetrics(meter metric.Meter) (*StockMetrics, error) {
	movements, err := meter.Int64Counter("stock_movements_total",
		metric.WithDescription("Movimientos de stock procesados"),
		metric.WithUnit("{movement}"))
	if err != nil {
		return nil, fmt.Errorf("crear contador stock_movements_total: %w", err)
	}
	duration, err := meter.Float64Histogram("stock_movement_duration_ms",
		metric.WithDescription("Duración de un movimiento de stock"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(durationBuckets...))
	if err != nil {
		return nil, fmt.Errorf("crear histograma stock_movement_duration_ms: %w", err)
	}
	errs, err := meter.Int64Counter("stock_movement_errors_total",
		metric.WithDescription("Movimientos de stock rechazados o fallidos"),
		metric.WithUnit("{error}"))
	if err != nil {
		return nil, fmt.Errorf("crear contador stock_movement_errors_total: %w", err)
	}
	allocations, err := meter.Int64Counter("fefo_allocations_total",
		metric.WithDescription("Planificaciones FEFO"),
		metric.WithUnit("{allocation}"))
	if err != nil {
		return nil, fmt.Errorf("crear contador fefo_allocations_total: %w", err)
	}
	return &StockMetrics{movements: movements, duration: duration, errors: errs, allocations: allocations}, nil
}

func status(ok bool) string {
	if ok {
		return statusSuccess
	}
	return statusFailure
}

// MovementApplied implementa inventory.MovementObserver.
func (m *StockMetrics) MovementApplied(ctx context.Context, out inventory.MovementOutcome) {
	attrs := metric.WithAttributes(
		attribute.String("venue_id", out.VenueID),
		attribute.String("movement_type", string(out.MovementType)),
		attribute.String("status", status(out.Success)),
	)
	m.movements.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(out.Duration.Microseconds())/1000, attrs)
	if !out.Success {
		m.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("error_type", out.ErrorKind)))
	}
}

// AllocationPlanned implementa inventory.MovementObserver.
func (m *StockMetrics) AllocationPlanned(ctx context.Context, out inventory.AllocationOutcome) {
	m.allocations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("venue_id", out.VenueID),
		attribute.String("status", status(out.Success)),
	))
}
