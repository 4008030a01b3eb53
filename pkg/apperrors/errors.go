// Package apperrors defines the error taxonomy callers can program against:
// constraint violations, not-found, and conflict. Repositories translate
// PostgreSQL errors into these sentinels so service code never inspects
// SQLSTATE codes.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidReference  = errors.New("referenced row does not exist")
	ErrInvalidDateRange  = errors.New("upcoming date must be after the recent date")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCheckViolation    = errors.New("check constraint violated")
)

// PostgreSQL SQLSTATE codes for constraint violations.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// Constraint names from the schema that map to specific sentinels.
const (
	constraintStockNonnegative = "parts_stock_nonnegative"
	constraintDatesOrdered     = "maintenance_dates_ordered"
)

// FromPostgres maps a PostgreSQL constraint violation to a sentinel error,
// preserving the violated constraint's name. It returns nil when err is not a
// recognized constraint violation; callers then wrap err themselves.
func FromPostgres(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgForeignKeyViolation:
		return fmt.Errorf("%w (%s)", ErrInvalidReference, pgErr.ConstraintName)
	case pgUniqueViolation:
		return fmt.Errorf("%w (%s)", ErrConflict, pgErr.ConstraintName)
	case pgCheckViolation:
		switch pgErr.ConstraintName {
		case constraintStockNonnegative:
			return ErrInsufficientStock
		case constraintDatesOrdered:
			return ErrInvalidDateRange
		default:
			return fmt.Errorf("%w (%s)", ErrCheckViolation, pgErr.ConstraintName)
		}
	}
	return nil
}
