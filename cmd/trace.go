// Copyright © 2024 The gmlfmt authors

package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// tracerProvider is set when --trace is given.
var (
	tracerProvider trace.TracerProvider
	sdkProvider    *sdktrace.TracerProvider
)

// setupTracing installs a tracer provider which logs every formatting span
// when tracing is enabled.
func setupTracing() error {
	if !viper.GetBool(keyTrace) || sdkProvider != nil {
		return nil
	}
	sdkProvider = sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(&logExporter{log: logrus.StandardLogger()}),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	tracerProvider = sdkProvider
	return nil
}

func shutdownTracing() {
	if sdkProvider == nil {
		return
	}
	if err := sdkProvider.Shutdown(context.Background()); err != nil {
		logrus.WithError(err).Warn("tracer shutdown")
	}
	sdkProvider = nil
	tracerProvider = nil
}

// logExporter writes each ended span as a log entry.
type logExporter struct {
	log logrus.FieldLogger
}

func (e *logExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		fields := logrus.Fields{
			"span":     span.Name(),
			"duration": span.EndTime().Sub(span.StartTime()),
		}
		for _, attr := range span.Attributes() {
			fields[string(attr.Key)] = attr.Value.Emit()
		}
		entry := e.log.WithFields(fields)
		if status := span.Status(); status.Description != "" {
			entry = entry.WithField("error", status.Description)
		}
		entry.Info("trace")
	}
	return nil
}

func (e *logExporter) Shutdown(context.Context) error {
	return nil
}
