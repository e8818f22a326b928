package repository

import (
	"context"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
)

// UserRepository is the credential store. Soft-deleted users are invisible to every read.
type UserRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	PhoneExists(ctx context.Context, phone, excludeUserID string) (bool, error)
	CreateWithBrandOwner(ctx context.Context, user *domain.User, owner *domain.BrandOwner) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	SetRefreshTokenHash(ctx context.Context, userID string, hash *string) error
	RotateRefreshToken(ctx context.Context, userID, oldHash, newHash string, tokenVersion int) (bool, error)
	RevokeAllSessions(ctx context.Context, userID string) error
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) error
	List(ctx context.Context, offset, limit int) ([]*domain.User, int, error)
	SoftDelete(ctx context.Context, userID string) error
}

// BrandOwnerRepository reads brand-owner profiles
type BrandOwnerRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.BrandOwner, error)
}

// ShopLinkRepository reads delegation links between shop owners and brand owners
type ShopLinkRepository interface {
	HasActiveLink(ctx context.Context, shopOwnerUserID, brandOwnerID string) (bool, error)
	LinkedBrandOwnerIDs(ctx context.Context, shopOwnerUserID string) ([]string, error)
}

// BrandRepository defines methods for brand operations
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	GetByID(ctx context.Context, id string) (*domain.Brand, error)
	List(ctx context.Context, scope domain.OwnerScope) ([]*domain.Brand, error)
	Update(ctx context.Context, id string, update domain.BrandUpdate) (*domain.Brand, error)
	Delete(ctx context.Context, id string) error
}
