package authz

import (
	"context"
	"fmt"
	"log/slog"

	authDomain "github.com/allisson/courses/internal/auth/domain"
	apperrors "github.com/allisson/courses/internal/errors"
	"github.com/allisson/courses/internal/metrics"
	userDomain "github.com/allisson/courses/internal/user/domain"
)

// ErrUnknownResourceType indicates a permission check against a resource type
// with no registered evaluator. This is a deployment fault, not a caller
// mistake: the decision is a deny, never a silent allow.
var ErrUnknownResourceType = apperrors.Wrap(apperrors.ErrInternal, "no evaluator registered for resource type")

// Dispatcher routes permission checks to the evaluator registered for the
// resource type. It applies the coarse authority gate before consulting any
// evaluator, so an identity lacking the permission outright is denied without
// touching the resource.
type Dispatcher struct {
	evaluators map[string]Evaluator
	metrics    metrics.BusinessMetrics
	logger     *slog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(m metrics.BusinessMetrics, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		evaluators: make(map[string]Evaluator),
		metrics:    m,
		logger:     logger,
	}
}

// Register adds an evaluator to the registry. Registering a second evaluator
// for the same type tag is a configuration mistake and fails.
func (d *Dispatcher) Register(evaluator Evaluator) error {
	tag := evaluator.ResourceType()
	if _, exists := d.evaluators[tag]; exists {
		return fmt.Errorf("evaluator already registered for resource type %q", tag)
	}
	d.evaluators[tag] = evaluator
	return nil
}

// HasPermission decides whether the identity holds the permission on a loaded
// resource instance.
//
// The decision order is fixed: nil identity or resource denies, the coarse
// authority gate denies before any evaluator runs, an unregistered resource
// type denies with ErrUnknownResourceType, and only then does the evaluator's
// predicate decide.
func (d *Dispatcher) HasPermission(
	ctx context.Context,
	identity *authDomain.Identity,
	resourceType string,
	resource any,
	permission userDomain.Permission,
) (bool, error) {
	if identity == nil || resource == nil {
		d.record(ctx, resourceType, permission, false)
		return false, nil
	}

	if !identity.HasPermission(permission) {
		d.record(ctx, resourceType, permission, false)
		return false, nil
	}

	evaluator, ok := d.evaluators[resourceType]
	if !ok {
		d.logger.ErrorContext(ctx, "permission check against unregistered resource type",
			slog.String("resource_type", resourceType),
			slog.String("permission", string(permission)),
		)
		d.record(ctx, resourceType, permission, false)
		return false, apperrors.Wrap(ErrUnknownResourceType, resourceType)
	}

	allowed, err := evaluator.Evaluate(ctx, identity, resource, permission)
	if err != nil {
		d.record(ctx, resourceType, permission, false)
		return false, err
	}

	d.record(ctx, resourceType, permission, allowed)
	return allowed, nil
}

// HasPermissionByID decides whether the identity holds the permission on the
// resource with the given ID, loading the instance through the evaluator. A
// missing resource is a plain deny so callers cannot probe for existence.
func (d *Dispatcher) HasPermissionByID(
	ctx context.Context,
	identity *authDomain.Identity,
	resourceType string,
	id string,
	permission userDomain.Permission,
) (bool, error) {
	if identity == nil {
		d.record(ctx, resourceType, permission, false)
		return false, nil
	}

	if !identity.HasPermission(permission) {
		d.record(ctx, resourceType, permission, false)
		return false, nil
	}

	evaluator, ok := d.evaluators[resourceType]
	if !ok {
		d.logger.ErrorContext(ctx, "permission check against unregistered resource type",
			slog.String("resource_type", resourceType),
			slog.String("permission", string(permission)),
		)
		d.record(ctx, resourceType, permission, false)
		return false, apperrors.Wrap(ErrUnknownResourceType, resourceType)
	}

	resource, err := evaluator.Load(ctx, id)
	if err != nil {
		d.record(ctx, resourceType, permission, false)
		return false, err
	}
	if resource == nil {
		d.record(ctx, resourceType, permission, false)
		return false, nil
	}

	allowed, err := evaluator.Evaluate(ctx, identity, resource, permission)
	if err != nil {
		d.record(ctx, resourceType, permission, false)
		return false, err
	}

	d.record(ctx, resourceType, permission, allowed)
	return allowed, nil
}

func (d *Dispatcher) record(ctx context.Context, resourceType string, permission userDomain.Permission, allowed bool) {
	decision := "denied"
	if allowed {
		decision = "allowed"
	}
	d.metrics.RecordAuthzDecision(ctx, resourceType, string(permission), decision)
}
