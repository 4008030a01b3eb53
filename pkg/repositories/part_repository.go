package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/apperrors"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/database"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
)

// PartRepository provides data access for the parts inventory.
type PartRepository interface {
	Create(ctx context.Context, part *models.Part) error
	GetByID(ctx context.Context, partID uuid.UUID) (*models.Part, error)
	List(ctx context.Context) ([]*models.Part, error)
	UpdatePrice(ctx context.Context, partID uuid.UUID, unitPrice float64) error
	// AdjustStock changes stock by delta (positive to restock, negative to
	// correct). A result below zero violates the stock check and returns
	// ErrInsufficientStock; the row is unchanged.
	AdjustStock(ctx context.Context, partID uuid.UUID, delta int) (*models.Part, error)
	Delete(ctx context.Context, partID uuid.UUID) error
}

type partRepository struct{}

// NewPartRepository creates a new PartRepository.
func NewPartRepository() PartRepository {
	return &partRepository{}
}

var _ PartRepository = (*partRepository)(nil)

func (r *partRepository) Create(ctx context.Context, part *models.Part) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `
		INSERT INTO parts (name, stock_quantity, unit_price)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := scope.Conn.QueryRow(ctx, query,
		part.Name,
		part.StockQuantity,
		part.UnitPrice,
	).Scan(&part.ID, &part.CreatedAt, &part.UpdatedAt)
	if err != nil {
		if mapped := apperrors.FromPostgres(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create part: %w", err)
	}

	return nil
}

func (r *partRepository) GetByID(ctx context.Context, partID uuid.UUID) (*models.Part, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT id, name, stock_quantity, unit_price, created_at, updated_at
		FROM parts
		WHERE id = $1`

	part, err := scanPart(scope.Conn.QueryRow(ctx, query, partID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return part, nil
}

func (r *partRepository) List(ctx context.Context) ([]*models.Part, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT id, name, stock_quantity, unit_price, created_at, updated_at
		FROM parts
		ORDER BY name`

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query parts: %w", err)
	}
	defer rows.Close()

	var parts []*models.Part
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parts: %w", err)
	}

	return parts, nil
}

func (r *partRepository) UpdatePrice(ctx context.Context, partID uuid.UUID, unitPrice float64) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `
		UPDATE parts
		SET unit_price = $2, updated_at = now()
		WHERE id = $1`

	result, err := scope.Conn.Exec(ctx, query, partID, unitPrice)
	if err != nil {
		if mapped := apperrors.FromPostgres(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update part price: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *partRepository) AdjustStock(ctx context.Context, partID uuid.UUID, delta int) (*models.Part, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		UPDATE parts
		SET stock_quantity = stock_quantity + $2, updated_at = now()
		WHERE id = $1
		RETURNING id, name, stock_quantity, unit_price, created_at, updated_at`

	part, err := scanPart(scope.Conn.QueryRow(ctx, query, partID, delta))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		if mapped := apperrors.FromPostgres(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to adjust part stock: %w", err)
	}

	return part, nil
}

func (r *partRepository) Delete(ctx context.Context, partID uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `DELETE FROM parts WHERE id = $1`

	result, err := scope.Conn.Exec(ctx, query, partID)
	if err != nil {
		// Deleting a part with usage history violates the FK restriction.
		if mapped := apperrors.FromPostgres(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to delete part: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func scanPart(row pgx.Row) (*models.Part, error) {
	var p models.Part
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.StockQuantity,
		&p.UnitPrice,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		if mapped := apperrors.FromPostgres(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to scan part: %w", err)
	}
	return &p, nil
}
