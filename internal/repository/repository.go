package repository

import (
	"github.com/ajaymaurya90/ecompointer-backend/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User       UserRepository
	BrandOwner BrandOwnerRepository
	ShopLink   ShopLinkRepository
	Brand      BrandRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		BrandOwner: NewBrandOwnerRepository(db),
		ShopLink:   NewShopLinkRepository(db),
		Brand:      NewBrandRepository(db),
	}
}
