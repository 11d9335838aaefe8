package echoapi

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/tundavala/escola/core"
)

const meterName = "github.com/tundavala/escola/apps/api/echo"

// metrics counts the form submissions accepted by the API.
type metrics struct {
	contacts      metric.Int64Counter
	calculations  metric.Int64Counter
	visits        metric.Int64Counter
	statusChanges metric.Int64Counter
}

// newMetrics creates the counters on `meter`. A counter that cannot be created is logged and replaced by a no-op.
func newMetrics(meter metric.Meter, logger core.Logger) *metrics {
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			logger.Error(fmt.Sprintf("creating counter %q: %v", name, err), err)
		}
		if c == nil {
			return noop.Int64Counter{}
		}
		return c
	}

	return &metrics{
		contacts:      counter("contacts.received", "Number of contact messages received"),
		calculations:  counter("tuition.calculations", "Number of tuition calculations"),
		visits:        counter("visits.scheduled", "Number of visit appointments scheduled"),
		statusChanges: counter("visits.status_changes", "Number of appointment status updates"),
	}
}

func (m *metrics) contactReceived(ctx context.Context) {
	m.contacts.Add(ctx, 1)
}

func (m *metrics) tuitionCalculated(ctx context.Context, level, mode string) {
	m.calculations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("education_level", level),
		attribute.String("payment_mode", mode),
	))
}

func (m *metrics) visitScheduled(ctx context.Context, visitType string) {
	m.visits.Add(ctx, 1, metric.WithAttributes(attribute.String("visit_type", visitType)))
}

func (m *metrics) statusChanged(ctx context.Context, status string) {
	m.statusChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
