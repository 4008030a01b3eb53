package database

import (
	"context"
)

type contextKey string

const (
	// ScopeKey is the context key for storing the scoped database querier.
	ScopeKey contextKey = "dbScope"
)

// GetScope retrieves the database scope from context.
// Returns nil and false if not present.
func GetScope(ctx context.Context) (*Scope, bool) {
	scope, ok := ctx.Value(ScopeKey).(*Scope)
	return scope, ok
}

// SetScope stores the database scope in context.
func SetScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, ScopeKey, scope)
}

// ScopeProvider creates scoped contexts for database operations.
// Services depend on its method set through implicit interfaces, which keeps
// them testable without a live pool.
type ScopeProvider struct {
	db *DB
}

// NewScopeProvider creates a ScopeProvider for the given database.
func NewScopeProvider(db *DB) *ScopeProvider {
	return &ScopeProvider{db: db}
}

// WithScope returns a context whose repository calls run directly on the pool.
func (p *ScopeProvider) WithScope(ctx context.Context) context.Context {
	return SetScope(ctx, p.db.NewScope())
}

// InTransaction runs fn with a context whose repository calls share one
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise, so fn's writes are all-or-nothing.
func (p *ScopeProvider) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	txScope, err := p.db.BeginScope(ctx)
	if err != nil {
		return err
	}
	defer txScope.Rollback(ctx)

	if err := fn(SetScope(ctx, &txScope.Scope)); err != nil {
		return err
	}
	return txScope.Commit(ctx)
}
