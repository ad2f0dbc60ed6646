// Package telemetry configura OpenTelemetry (métricas y trazas OTLP/gRPC) y el observador de movimientos de stock.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-lotes/pkg/config"
	"github.com/jhoicas/Inventario-lotes/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// Providers proveedores de métricas y trazas con ciclo de vida. Con la telemetría
// deshabilitada quedan los proveedores globales no-op.
type Providers struct {
	meter  *sdkmetric.MeterProvider
	tracer *sdktrace.TracerProvider
	log    *logger.Logger
}

// Constructores de exportadores OTLP/gRPC; los tests los reemplazan.
var (
	newMetricExporter = func(ctx context.Context, cfg config.TelemetryConfig) (sdkmetric.Exporter, error) {
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		return otlpmetricgrpc.New(ctx, opts...)
	}
	newTraceExporter = func(ctx context.Context, cfg config.TelemetryConfig) (sdktrace.SpanExporter, error) {
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		return otlptracegrpc.New(ctx, opts...)
	}
)

// Setup crea los exportadores OTLP habilitados y registra los proveedores globales.
func Setup(ctx context.Context, serviceName string, cfg config.TelemetryConfig, log *logger.Logger) (*Providers, error) {
	p := &Providers{log: log}
	if !cfg.MetricsEnabled && !cfg.TracesEnabled {
		log.Info().Msg("telemetría deshabilitada")
		return p, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("crear resource: %w", err)
	}

	if cfg.MetricsEnabled {
		exporter, err := newMetricExporter(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("crear exportador de métricas: %w", err)
		}
		p.meter = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.Interval))),
		)
	}

	if cfg.TracesEnabled {
		exporter, err := newTraceExporter(ctx, cfg)
		if err != nil {
			// el lector periódico de métricas ya está corriendo
			if p.meter != nil {
				if serr := p.meter.Shutdown(ctx); serr != nil {
					log.Warn().Err(serr).Msg("cerrar proveedor de métricas")
				}
			}
			return nil, fmt.Errorf("crear exportador de trazas: %w", err)
		}
		p.tracer = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRatio))),
		)
	}

	// Registro global solo cuando todos los exportadores quedaron creados
	if p.meter != nil {
		otel.SetMeterProvider(p.meter)
	}
	if p.tracer != nil {
		otel.SetTracerProvider(p.tracer)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	log.Info().
		Str("endpoint", cfg.Endpoint).
		Bool("metrics", cfg.MetricsEnabled).
		Bool("traces", cfg.TracesEnabled).
		Dur("interval", cfg.Interval).
		Msg("OpenTelemetry inicializado")
	return p, nil
}

// Meter devuelve un meter del proveedor propio o del global.
func (p *Providers) Meter(name string) metric.Meter {
	if p.meter == nil {
		return otel.GetMeterProvider().Meter(name)
	}
	return p.meter.Meter(name)
}

// Shutdown exporta lo pendiente y libera los exportadores.
func (p *Providers) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var errs []error
	if p.meter != nil {
		errs = append(errs, p.meter.Shutdown(ctx))
	}
	if p.tracer != nil {
		errs = append(errs, p.tracer.Shutdown(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		p.log.Error().Err(err).Msg("error cerrando OpenTelemetry")
		return err
	}
	return nil
}
