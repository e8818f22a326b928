package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/ajaymaurya90/ecompointer-backend/internal/dto"
	"github.com/ajaymaurya90/ecompointer-backend/internal/repository"
)

type brandService struct {
	brandRepo repository.BrandRepository
	ownership *OwnershipResolver
}

// NewBrandService creates a new brand service
func NewBrandService(brandRepo repository.BrandRepository, ownership *OwnershipResolver) BrandService {
	return &brandService{
		brandRepo: brandRepo,
		ownership: ownership,
	}
}

// Create adds a brand to the caller's own brand-owner profile
func (s *brandService) Create(ctx context.Context, actor domain.Identity, req *dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	ownerID, err := s.ownership.OwnProfileID(ctx, actor)
	if err != nil {
		return nil, err
	}

	brand := &domain.Brand{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Tagline:     req.Tagline,
		LogoURL:     req.LogoURL,
		Status:      domain.BrandActive,
	}
	if req.Status != nil {
		brand.Status = *req.Status
	}

	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, err
	}

	response := dto.NewBrandResponse(brand)
	return &response, nil
}

// List returns every brand the caller may see
func (s *brandService) List(ctx context.Context, actor domain.Identity) ([]dto.BrandResponse, error) {
	scope, err := s.ownership.ScopeOwners(ctx, actor)
	if err != nil {
		return nil, err
	}

	brands, err := s.brandRepo.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	response := make([]dto.BrandResponse, 0, len(brands))
	for _, brand := range brands {
		response = append(response, dto.NewBrandResponse(brand))
	}
	return response, nil
}

// Get returns one brand if the caller owns it, is linked to its owner, or is a super admin
func (s *brandService) Get(ctx context.Context, actor domain.Identity, id string) (*dto.BrandResponse, error) {
	brand, err := s.authorized(ctx, actor, id, false)
	if err != nil {
		return nil, err
	}

	response := dto.NewBrandResponse(brand)
	return &response, nil
}

// Update changes a brand owned by the caller
func (s *brandService) Update(ctx context.Context, actor domain.Identity, id string, update domain.BrandUpdate) (*dto.BrandResponse, error) {
	if update.Name == nil && update.Description == nil && update.Tagline == nil &&
		update.LogoURL == nil && update.Status == nil {
		return nil, NewError(ErrBadRequest, "no fields to update")
	}

	if _, err := s.authorized(ctx, actor, id, true); err != nil {
		return nil, err
	}

	brand, err := s.brandRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewError(ErrNotFound, "brand not found")
		}
		return nil, err
	}

	response := dto.NewBrandResponse(brand)
	return &response, nil
}

// Delete removes a brand owned by the caller
func (s *brandService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if _, err := s.authorized(ctx, actor, id, true); err != nil {
		return err
	}

	if err := s.brandRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewError(ErrNotFound, "brand not found")
		}
		return err
	}
	return nil
}

// authorized loads a brand and checks the caller against its owner. Callers other
// than super admins get Forbidden for a missing brand as well.
func (s *brandService) authorized(ctx context.Context, actor domain.Identity, id string, requireOwnership bool) (*domain.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to get brand: %w", err)
		}
		if actor.Role == domain.RoleSuperAdmin {
			return nil, NewError(ErrNotFound, "brand not found")
		}
		return nil, NewError(ErrForbidden, "access denied")
	}

	if err := s.ownership.Authorize(ctx, actor, brand.OwnerID, requireOwnership); err != nil {
		return nil, err
	}
	return brand, nil
}
