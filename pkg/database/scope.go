package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx operations repositories issue. Both the
// connection pool and a transaction satisfy it, so repository code does not
// care whether it runs inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Scope carries the querier a repository call must use. A plain scope runs
// statements against the pool; a transactional scope pins them to one
// transaction so a multi-statement operation commits or rolls back as a unit.
type Scope struct {
	Conn Querier
}

// TxScope is a Scope bound to an open transaction.
type TxScope struct {
	Scope
	tx pgx.Tx
}

// Commit commits the transaction and releases its connection.
func (s *TxScope) Commit(ctx context.Context) error {
	return s.tx.Commit(ctx)
}

// Rollback aborts the transaction. Calling it after a successful Commit is a
// no-op, so it is safe to defer.
func (s *TxScope) Rollback(ctx context.Context) {
	_ = s.tx.Rollback(ctx)
}

// NewScope returns a scope that runs statements directly on the pool.
func (db *DB) NewScope() *Scope {
	return &Scope{Conn: db.Pool}
}

// BeginScope opens a transaction and returns a scope bound to it.
// The returned TxScope MUST be finished with Commit or a deferred Rollback.
func (db *DB) BeginScope(ctx context.Context) (*TxScope, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &TxScope{Scope: Scope{Conn: tx}, tx: tx}, nil
}
