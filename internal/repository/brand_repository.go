package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/ajaymaurya90/ecompointer-backend/pkg/database"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const brandColumns = `id, owner_id, name, description, tagline, logo_url, status, created_at, updated_at`

type brandRepository struct {
	db *database.Postgres
}

// NewBrandRepository creates a new brand repository
func NewBrandRepository(db *database.Postgres) BrandRepository {
	return &brandRepository{db: db}
}

func scanBrand(row rowScanner) (*domain.Brand, error) {
	brand := &domain.Brand{}
	var description, tagline, logoURL sql.NullString

	err := row.Scan(
		&brand.ID,
		&brand.OwnerID,
		&brand.Name,
		&description,
		&tagline,
		&logoURL,
		&brand.Status,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		brand.Description = &description.String
	}
	if tagline.Valid {
		brand.Tagline = &tagline.String
	}
	if logoURL.Valid {
		brand.LogoURL = &logoURL.String
	}

	return brand, nil
}

// Create inserts a new brand
func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	if brand.ID == "" {
		brand.ID = uuid.New().String()
	}
	if brand.Status == "" {
		brand.Status = domain.BrandActive
	}

	now := time.Now()
	brand.CreatedAt, brand.UpdatedAt = now, now

	_, err := r.db.DB.ExecContext(ctx, `
		INSERT INTO product_brands (id, owner_id, name, description, tagline, logo_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		brand.ID,
		brand.OwnerID,
		brand.Name,
		brand.Description,
		brand.Tagline,
		brand.LogoURL,
		brand.Status,
		brand.CreatedAt,
		brand.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}

	return nil
}

// GetByID retrieves a brand by ID
func (r *brandRepository) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("brand with id %s not found: %w", id, ErrNotFound)
	}

	query := `SELECT ` + brandColumns + ` FROM product_brands WHERE id = $1`

	brand, err := scanBrand(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("brand with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	return brand, nil
}

// List returns the brands visible under scope, newest first
func (r *brandRepository) List(ctx context.Context, scope domain.OwnerScope) ([]*domain.Brand, error) {
	if !scope.All && len(scope.OwnerIDs) == 0 {
		return []*domain.Brand{}, nil
	}

	var (
		rows *sql.Rows
		err  error
	)
	if scope.All {
		rows, err = r.db.DB.QueryContext(ctx,
			`SELECT `+brandColumns+` FROM product_brands ORDER BY created_at DESC`)
	} else {
		rows, err = r.db.DB.QueryContext(ctx,
			`SELECT `+brandColumns+` FROM product_brands WHERE owner_id = ANY($1) ORDER BY created_at DESC`,
			pq.Array(scope.OwnerIDs))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := []*domain.Brand{}
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, brand)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate brands: %w", err)
	}

	return brands, nil
}

// Update applies the non-nil fields of update and returns the stored brand
func (r *brandRepository) Update(ctx context.Context, id string, update domain.BrandUpdate) (*domain.Brand, error) {
	query := `
		UPDATE product_brands
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    tagline     = COALESCE($4, tagline),
		    logo_url    = COALESCE($5, logo_url),
		    status      = COALESCE($6, status),
		    updated_at  = NOW()
		WHERE id = $1
		RETURNING ` + brandColumns

	var status *string
	if update.Status != nil {
		s := string(*update.Status)
		status = &s
	}

	brand, err := scanBrand(r.db.DB.QueryRowContext(ctx, query,
		id,
		update.Name,
		update.Description,
		update.Tagline,
		update.LogoURL,
		status,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("brand with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}

	return brand, nil
}

// Delete removes a brand
func (r *brandRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM product_brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	return expectRow(result, "brand", id)
}
