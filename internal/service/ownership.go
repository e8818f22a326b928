package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/ajaymaurya90/ecompointer-backend/internal/repository"
)

// OwnershipResolver decides whether an identity may act on a resource owned by a
// brand-owner profile. Every catalog module asks it instead of checking roles itself.
type OwnershipResolver struct {
	ownerRepo repository.BrandOwnerRepository
	linkRepo  repository.ShopLinkRepository
}

// NewOwnershipResolver creates a new ownership resolver
func NewOwnershipResolver(ownerRepo repository.BrandOwnerRepository, linkRepo repository.ShopLinkRepository) *OwnershipResolver {
	return &OwnershipResolver{
		ownerRepo: ownerRepo,
		linkRepo:  linkRepo,
	}
}

// Authorize permits super admins always, brand owners on their own resources, and
// shop owners on resources of a linked brand owner when ownership is not required.
func (r *OwnershipResolver) Authorize(ctx context.Context, identity domain.Identity, ownerID string, requireOwnership bool) error {
	switch identity.Role {
	case domain.RoleSuperAdmin:
		return nil

	case domain.RoleBrandOwner:
		profileID, err := r.OwnProfileID(ctx, identity)
		if err != nil {
			return err
		}
		if profileID != ownerID {
			return NewError(ErrForbidden, "you do not own this resource")
		}
		return nil

	case domain.RoleShopOwner:
		if requireOwnership {
			return NewError(ErrForbidden, "only the owner can modify this resource")
		}
		linked, err := r.linkRepo.HasActiveLink(ctx, identity.ID, ownerID)
		if err != nil {
			return err
		}
		if !linked {
			return NewError(ErrForbidden, "you are not linked to this brand owner")
		}
		return nil
	}

	return NewError(ErrForbidden, "access denied")
}

// ScopeOwners returns the brand-owner profiles whose resources identity may list
func (r *OwnershipResolver) ScopeOwners(ctx context.Context, identity domain.Identity) (domain.OwnerScope, error) {
	switch identity.Role {
	case domain.RoleSuperAdmin:
		return domain.OwnerScope{All: true}, nil

	case domain.RoleBrandOwner:
		profileID, err := r.OwnProfileID(ctx, identity)
		if err != nil {
			return domain.OwnerScope{}, err
		}
		return domain.OwnerScope{OwnerIDs: []string{profileID}}, nil

	case domain.RoleShopOwner:
		ids, err := r.linkRepo.LinkedBrandOwnerIDs(ctx, identity.ID)
		if err != nil {
			return domain.OwnerScope{}, err
		}
		return domain.OwnerScope{OwnerIDs: ids}, nil
	}

	return domain.OwnerScope{}, NewError(ErrForbidden, "access denied")
}

// OwnProfileID resolves the brand-owner profile of identity
func (r *OwnershipResolver) OwnProfileID(ctx context.Context, identity domain.Identity) (string, error) {
	owner, err := r.ownerRepo.GetByUserID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", NewError(ErrForbidden, "brand owner profile not found")
		}
		return "", fmt.Errorf("failed to get brand owner: %w", err)
	}
	return owner.ID, nil
}
