package service

import (
	"context"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/ajaymaurya90/ecompointer-backend/internal/dto"
)

// AuthService covers registration, sessions and account administration
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, userID string) error
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, actor domain.Identity, targetID string, update domain.ProfileUpdate) error
	ListUsers(ctx context.Context, page, limit int) (*dto.UserListResponse, error)
	DeleteUser(ctx context.Context, actor domain.Identity, targetID string) error
}

// BrandService is the brand catalog, filtered by owner
type BrandService interface {
	Create(ctx context.Context, actor domain.Identity, req *dto.CreateBrandRequest) (*dto.BrandResponse, error)
	List(ctx context.Context, actor domain.Identity) ([]dto.BrandResponse, error)
	Get(ctx context.Context, actor domain.Identity, id string) (*dto.BrandResponse, error)
	Update(ctx context.Context, actor domain.Identity, id string, update domain.BrandUpdate) (*dto.BrandResponse, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
}

// AuthResult is the outcome of a login or a refresh
type AuthResult struct {
	AuthResponse *dto.AuthResponse
	RefreshToken string
	ExpiresIn    int // Refresh token expiry in seconds
}
