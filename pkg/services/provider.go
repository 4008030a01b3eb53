package services

import "context"

// ScopeProvider hands out database-scoped contexts. It matches
// database.ScopeProvider via Go's implicit interfaces so services can be
// tested without a live pool.
type ScopeProvider interface {
	WithScope(ctx context.Context) context.Context
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
