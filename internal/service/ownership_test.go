package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/ajaymaurya90/ecompointer-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	ownProfileID   = "profile-own"
	otherProfileID = "profile-other"
)

func TestOwnershipResolver_Authorize(t *testing.T) {
	brandOwner := domain.Identity{ID: "user-bo", Role: domain.RoleBrandOwner}
	shopOwner := domain.Identity{ID: "user-shop", Role: domain.RoleShopOwner}

	tests := []struct {
		name             string
		identity         domain.Identity
		ownerID          string
		requireOwnership bool
		linked           *bool
		wantErr          error
	}{
		{name: "super admin", identity: domain.Identity{ID: "root", Role: domain.RoleSuperAdmin}, ownerID: otherProfileID, requireOwnership: true},
		{name: "brand owner on own resource", identity: brandOwner, ownerID: ownProfileID, requireOwnership: true},
		{name: "brand owner on foreign resource", identity: brandOwner, ownerID: otherProfileID, wantErr: ErrForbidden},
		{name: "linked shop owner reads", identity: shopOwner, ownerID: otherProfileID, linked: boolPtr(true)},
		{name: "unlinked shop owner reads", identity: shopOwner, ownerID: otherProfileID, linked: boolPtr(false), wantErr: ErrForbidden},
		{name: "shop owner writes", identity: shopOwner, ownerID: otherProfileID, requireOwnership: true, wantErr: ErrForbidden},
		{name: "end user", identity: domain.Identity{ID: "u", Role: domain.RoleEndUser}, ownerID: ownProfileID, wantErr: ErrForbidden},
		{name: "administrator", identity: domain.Identity{ID: "u", Role: domain.RoleAdministrator}, ownerID: ownProfileID, wantErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owners := &mockBrandOwnerRepo{}
			links := &mockShopLinkRepo{}
			owners.On("GetByUserID", mock.Anything, "user-bo").
				Return(&domain.BrandOwner{ID: ownProfileID, UserID: "user-bo"}, nil).Maybe()
			if tt.linked != nil {
				links.On("HasActiveLink", mock.Anything, shopOwner.ID, tt.ownerID).Return(*tt.linked, nil).Once()
			}

			err := NewOwnershipResolver(owners, links).Authorize(context.Background(), tt.identity, tt.ownerID, tt.requireOwnership)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			links.AssertExpectations(t)
		})
	}
}

func TestOwnershipResolver_BrandOwnerWithoutProfile(t *testing.T) {
	owners := &mockBrandOwnerRepo{}
	owners.On("GetByUserID", mock.Anything, "user-bo").Return(nil, repository.ErrNotFound)

	resolver := NewOwnershipResolver(owners, &mockShopLinkRepo{})
	err := resolver.Authorize(context.Background(), domain.Identity{ID: "user-bo", Role: domain.RoleBrandOwner}, ownProfileID, false)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOwnershipResolver_PropagatesStoreErrors(t *testing.T) {
	failure := errors.New("connection reset")
	owners := &mockBrandOwnerRepo{}
	owners.On("GetByUserID", mock.Anything, "user-bo").Return(nil, failure)

	resolver := NewOwnershipResolver(owners, &mockShopLinkRepo{})
	err := resolver.Authorize(context.Background(), domain.Identity{ID: "user-bo", Role: domain.RoleBrandOwner}, ownProfileID, false)
	assert.ErrorIs(t, err, failure)
	assert.NotErrorIs(t, err, ErrForbidden)
}

func TestOwnershipResolver_ScopeOwners(t *testing.T) {
	ctx := context.Background()
	owners := &mockBrandOwnerRepo{}
	links := &mockShopLinkRepo{}
	owners.On("GetByUserID", mock.Anything, "user-bo").Return(&domain.BrandOwner{ID: ownProfileID}, nil)
	links.On("LinkedBrandOwnerIDs", mock.Anything, "user-shop").Return([]string{ownProfileID, otherProfileID}, nil)
	resolver := NewOwnershipResolver(owners, links)

	scope, err := resolver.ScopeOwners(ctx, domain.Identity{ID: "root", Role: domain.RoleSuperAdmin})
	require.NoError(t, err)
	assert.True(t, scope.All)

	scope, err = resolver.ScopeOwners(ctx, domain.Identity{ID: "user-bo", Role: domain.RoleBrandOwner})
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerScope{OwnerIDs: []string{ownProfileID}}, scope)

	scope, err = resolver.ScopeOwners(ctx, domain.Identity{ID: "user-shop", Role: domain.RoleShopOwner})
	require.NoError(t, err)
	assert.Equal(t, []string{ownProfileID, otherProfileID}, scope.OwnerIDs)

	_, err = resolver.ScopeOwners(ctx, domain.Identity{ID: "u", Role: domain.RoleEndUser})
	assert.ErrorIs(t, err, ErrForbidden)
}

func boolPtr(b bool) *bool {
	return &b
}
