package repository

import (
	"context"
	"fmt"

	"github.com/ajaymaurya90/ecompointer-backend/pkg/database"
)

type shopLinkRepository struct {
	db *database.Postgres
}

// NewShopLinkRepository creates a new shop link repository
func NewShopLinkRepository(db *database.Postgres) ShopLinkRepository {
	return &shopLinkRepository{db: db}
}

// HasActiveLink reports whether the shop owner is currently linked to the brand owner
func (r *shopLinkRepository) HasActiveLink(ctx context.Context, shopOwnerUserID, brandOwnerID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM brand_owner_shops
			WHERE shop_owner_id = $1 AND brand_owner_id = $2 AND is_active
		)
	`

	var exists bool
	if err := r.db.DB.QueryRowContext(ctx, query, shopOwnerUserID, brandOwnerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check shop link: %w", err)
	}
	return exists, nil
}

// LinkedBrandOwnerIDs returns the brand-owner profiles the shop owner is actively linked to
func (r *shopLinkRepository) LinkedBrandOwnerIDs(ctx context.Context, shopOwnerUserID string) ([]string, error) {
	query := `
		SELECT brand_owner_id
		FROM brand_owner_shops
		WHERE shop_owner_id = $1 AND is_active
		ORDER BY created_at
	`

	rows, err := r.db.DB.QueryContext(ctx, query, shopOwnerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shop links: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan shop link: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shop links: %w", err)
	}

	return ids, nil
}
