package usecase

import (
	"context"

	authDomain "github.com/allisson/courses/internal/auth/domain"
	"github.com/allisson/courses/internal/metrics"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for token issuance operations.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	output, err := t.next.Issue(ctx, issueTokenInput)

	status := "success"
	if err != nil {
		status = "error"
	}
	t.metrics.RecordTokenOperation(ctx, "issue", status)

	return output, err
}

// Verify records metrics for token verification operations.
func (t *tokenUseCaseWithMetrics) Verify(ctx context.Context, accessToken string) (*authDomain.Identity, error) {
	identity, err := t.next.Verify(ctx, accessToken)

	status := "success"
	if err != nil {
		status = "error"
	}
	t.metrics.RecordTokenOperation(ctx, "verify", status)

	return identity, err
}

// Invalidate records metrics for token invalidation operations.
func (t *tokenUseCaseWithMetrics) Invalidate(ctx context.Context, identity *authDomain.Identity) error {
	err := t.next.Invalidate(ctx, identity)

	status := "success"
	if err != nil {
		status = "error"
	}
	t.metrics.RecordTokenOperation(ctx, "invalidate", status)

	return err
}
