package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/ajaymaurya90/ecompointer-backend/pkg/database"
)

type brandOwnerRepository struct {
	db *database.Postgres
}

// NewBrandOwnerRepository creates a new brand owner repository
func NewBrandOwnerRepository(db *database.Postgres) BrandOwnerRepository {
	return &brandOwnerRepository{db: db}
}

// GetByUserID retrieves the brand-owner profile of a user
func (r *brandOwnerRepository) GetByUserID(ctx context.Context, userID string) (*domain.BrandOwner, error) {
	query := `
		SELECT id, user_id, business_name, created_at, updated_at
		FROM brand_owners
		WHERE user_id = $1
	`

	owner := &domain.BrandOwner{}
	err := r.db.DB.QueryRowContext(ctx, query, userID).Scan(
		&owner.ID,
		&owner.UserID,
		&owner.BusinessName,
		&owner.CreatedAt,
		&owner.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("brand owner for user %s not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get brand owner: %w", err)
	}

	return owner, nil
}
