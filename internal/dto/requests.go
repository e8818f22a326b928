package dto

import "github.com/ajaymaurya90/ecompointer-backend/internal/domain"

// RegisterRequest represents a brand-owner registration request
type RegisterRequest struct {
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=6"`
	FirstName    string  `json:"firstName" binding:"required"`
	LastName     *string `json:"lastName" binding:"omitempty"`
	Phone        string  `json:"phone" binding:"required"`
	BusinessName string  `json:"businessName" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the profile fields to change. Absent fields stay as they are.
type UpdateProfileRequest struct {
	FirstName    *string `json:"firstName" binding:"omitempty,min=1"`
	LastName     *string `json:"lastName" binding:"omitempty"`
	Phone        *string `json:"phone" binding:"omitempty,min=4"`
	BusinessName *string `json:"businessName" binding:"omitempty,min=1"`
}

// ToDomain converts the request into a profile update
func (r UpdateProfileRequest) ToDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Phone:        r.Phone,
		BusinessName: r.BusinessName,
	}
}

// ListUsersQuery holds the pagination parameters of the admin user listing
type ListUsersQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// CreateBrandRequest represents a brand creation request
type CreateBrandRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description *string             `json:"description" binding:"omitempty"`
	Tagline     *string             `json:"tagline" binding:"omitempty"`
	LogoURL     *string             `json:"logoUrl" binding:"omitempty,url"`
	Status      *domain.BrandStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// UpdateBrandRequest carries the brand fields to change
type UpdateBrandRequest struct {
	Name        *string             `json:"name" binding:"omitempty,min=1"`
	Description *string             `json:"description" binding:"omitempty"`
	Tagline     *string             `json:"tagline" binding:"omitempty"`
	LogoURL     *string             `json:"logoUrl" binding:"omitempty,url"`
	Status      *domain.BrandStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// ToDomain converts the request into a brand update
func (r UpdateBrandRequest) ToDomain() domain.BrandUpdate {
	return domain.BrandUpdate{
		Name:        r.Name,
		Description: r.Description,
		Tagline:     r.Tagline,
		LogoURL:     r.LogoURL,
		Status:      r.Status,
	}
}
