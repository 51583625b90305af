// Package authz implements the authorization decision engine.
//
// Decisions happen in two stages: a coarse gate over the identity's authority
// set, then a fine-grained per-resource predicate supplied by an Evaluator
// registered for the resource type. Every guarded resource type registers its
// own evaluator; the dispatcher never embeds resource-specific knowledge.
package authz

import (
	"context"

	authDomain "github.com/allisson/courses/internal/auth/domain"
	userDomain "github.com/allisson/courses/internal/user/domain"
)

// Evaluator decides fine-grained permissions for one resource type.
type Evaluator interface {
	// ResourceType returns the type tag this evaluator handles. Tags are
	// unique across the registry.
	ResourceType() string

	// Evaluate reports whether the identity holds the permission on the given
	// resource instance. The resource is the concrete domain type of this
	// evaluator; any other type is a programming error and yields a deny.
	Evaluate(
		ctx context.Context,
		identity *authDomain.Identity,
		resource any,
		permission userDomain.Permission,
	) (bool, error)

	// Load fetches the resource instance for ID-only dispatch. A missing
	// resource returns a nil instance and no error so the decision stays a
	// plain deny without leaking existence.
	Load(ctx context.Context, id string) (any, error)
}
