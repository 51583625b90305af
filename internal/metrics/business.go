package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics defines the interface for recording access-control metrics.
// Implementations track token lifecycle operations and authorization decisions.
type BusinessMetrics interface {
	// RecordTokenOperation records a token lifecycle operation with its status.
	// Operation examples: "issue", "verify", "invalidate"
	// Status examples: "success", "error"
	RecordTokenOperation(ctx context.Context, operation, status string)

	// RecordAuthzDecision records the outcome of a permission check.
	// ResourceType examples: "course", "user"
	// Decision is "allowed" or "denied".
	RecordAuthzDecision(ctx context.Context, resourceType, permission, decision string)
}

// businessMetrics implements BusinessMetrics using OpenTelemetry metrics.
type businessMetrics struct {
	tokenCounter    metric.Int64Counter
	decisionCounter metric.Int64Counter
}

// NewBusinessMetrics creates a new BusinessMetrics implementation using the provided meter provider.
// The namespace parameter is used as a prefix for all metric names (e.g., "courses").
// Returns error if meters cannot be initialized.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	// Create counter for token lifecycle operations
	tokenCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_token_operations_total", namespace),
		metric.WithDescription("Total number of token lifecycle operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token operation counter: %w", err)
	}

	// Create counter for authorization decisions
	decisionCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_authz_decisions_total", namespace),
		metric.WithDescription("Total number of authorization decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create authz decision counter: %w", err)
	}

	return &businessMetrics{
		tokenCounter:    tokenCounter,
		decisionCounter: decisionCounter,
	}, nil
}

// RecordTokenOperation increments the token operation counter with operation and status labels.
func (b *businessMetrics) RecordTokenOperation(ctx context.Context, operation, status string) {
	b.tokenCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// RecordAuthzDecision increments the decision counter with resource type, permission and decision labels.
func (b *businessMetrics) RecordAuthzDecision(ctx context.Context, resourceType, permission, decision string) {
	b.decisionCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("resource_type", resourceType),
			attribute.String("permission", permission),
			attribute.String("decision", decision),
		),
	)
}

// NoOpBusinessMetrics is a no-op implementation of BusinessMetrics for when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// RecordTokenOperation does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordTokenOperation(ctx context.Context, operation, status string) {
	// No-op
}

// RecordAuthzDecision does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordAuthzDecision(ctx context.Context, resourceType, permission, decision string) {
	// No-op
}
