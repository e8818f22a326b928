package domain

import "time"

// Role is the access role carried by an identity and by its tokens.
type Role string

const (
	RoleEndUser       Role = "END_USER"
	RoleAdministrator Role = "ADMINISTRATOR"
	RoleBrandOwner    Role = "BRAND_OWNER"
	RoleShopOwner     Role = "SHOP_OWNER"
	RoleSuperAdmin    Role = "SUPER_ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEndUser, RoleAdministrator, RoleBrandOwner, RoleShopOwner, RoleSuperAdmin:
		return true
	}
	return false
}

// User is the credential-store record of an identity.
type User struct {
	ID               string     `db:"id"`
	Email            string     `db:"email"`
	Phone            string     `db:"phone"`
	PasswordHash     string     `db:"password_hash"`
	Role             Role       `db:"role"`
	FirstName        string     `db:"first_name"`
	LastName         *string    `db:"last_name"`
	RefreshTokenHash *string    `db:"refresh_token_hash"`
	TokenVersion     int        `db:"token_version"`
	IsDeleted        bool       `db:"is_deleted"`
	DeletedAt        *time.Time `db:"deleted_at"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

// HasSession reports whether a refresh token is currently stored for the user.
func (u *User) HasSession() bool {
	return u.RefreshTokenHash != nil && *u.RefreshTokenHash != ""
}

// BrandOwner is the business profile of a BRAND_OWNER identity.
type BrandOwner struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	BusinessName string    `db:"business_name"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// ProfileUpdate carries the optional fields of a profile change. Nil means unchanged.
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	Phone        *string
	BusinessName *string
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Phone == nil && p.BusinessName == nil
}
