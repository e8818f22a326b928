package dto

import (
	"time"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
)

// AuthResponse represents a login or refresh response
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken,omitempty"`
	User         UserInfo `json:"user"`
}

// UserInfo is the public summary of an identity. It never carries secrets.
type UserInfo struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// RegisterResponse represents a registration response
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// BusinessInfo is the brand-owner part of a profile
type BusinessInfo struct {
	ID           string `json:"id"`
	BusinessName string `json:"businessName"`
}

// ProfileResponse represents the profile of the calling user
type ProfileResponse struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	Role      domain.Role   `json:"role"`
	FirstName string        `json:"firstName"`
	LastName  *string       `json:"lastName"`
	Phone     string        `json:"phone"`
	CreatedAt string        `json:"createdAt"`
	Business  *BusinessInfo `json:"business,omitempty"`
}

// UserResponse is one row of the admin user listing
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Role      domain.Role `json:"role"`
	FirstName string      `json:"firstName"`
	LastName  *string     `json:"lastName"`
	CreatedAt string      `json:"createdAt"`
}

// PageMeta describes a page of a listing
type PageMeta struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	Limit    int `json:"limit"`
	LastPage int `json:"lastPage"`
}

// UserListResponse represents a page of users
type UserListResponse struct {
	Data []UserResponse `json:"data"`
	Meta PageMeta       `json:"meta"`
}

// BrandResponse represents a brand
type BrandResponse struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"ownerId"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	Tagline     *string            `json:"tagline"`
	LogoURL     *string            `json:"logoUrl"`
	Status      domain.BrandStatus `json:"status"`
	CreatedAt   string             `json:"createdAt"`
	UpdatedAt   string             `json:"updatedAt"`
}

// NewUserInfo builds the public summary of user
func NewUserInfo(user *domain.User) UserInfo {
	return UserInfo{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}
}

// NewUserResponse converts user into a listing row
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// NewBrandResponse converts brand into its response form
func NewBrandResponse(brand *domain.Brand) BrandResponse {
	return BrandResponse{
		ID:          brand.ID,
		OwnerID:     brand.OwnerID,
		Name:        brand.Name,
		Description: brand.Description,
		Tagline:     brand.Tagline,
		LogoURL:     brand.LogoURL,
		Status:      brand.Status,
		CreatedAt:   brand.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   brand.UpdatedAt.Format(time.RFC3339),
	}
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
