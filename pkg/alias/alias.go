// Package alias defines the provider-neutral view of a forwarding
// alias and the capability set the scan engine needs from an alias
// provider.
package alias

import "context"

// Alias is a read-only view of one alias record. Records are created
// and mutated by the provider only; the engine reads these fields and
// requests state changes through Service.
type Alias interface {
	ID() string
	Email() string
	Description() string
	IsActive() bool
}

// Service lists aliases and deactivates one by id. An implementation
// holds only what it needs to address and authenticate requests (base
// host, credential, HTTP transport), all fixed at construction.
type Service interface {
	// ListAliases returns every alias visible to the configured
	// credential, active or not. Ordering is provider-defined.
	ListAliases(ctx context.Context) ([]Alias, error)

	// Deactivate asks the provider to transition the alias with the
	// given id to inactive. Callers treat any error as a hard failure
	// for that alias and do not retry.
	Deactivate(ctx context.Context, id string) error
}
