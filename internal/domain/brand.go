package domain

import "time"

type BrandStatus string

const (
	BrandActive   BrandStatus = "ACTIVE"
	BrandInactive BrandStatus = "INACTIVE"
)

func (s BrandStatus) Valid() bool {
	return s == BrandActive || s == BrandInactive
}

// Brand belongs to exactly one brand-owner profile.
type Brand struct {
	ID          string      `db:"id"`
	OwnerID     string      `db:"owner_id"`
	Name        string      `db:"name"`
	Description *string     `db:"description"`
	Tagline     *string     `db:"tagline"`
	LogoURL     *string     `db:"logo_url"`
	Status      BrandStatus `db:"status"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

// BrandUpdate carries the optional fields of a brand change. Nil means unchanged.
type BrandUpdate struct {
	Name        *string
	Description *string
	Tagline     *string
	LogoURL     *string
	Status      *BrandStatus
}

// OwnerScope restricts a listing to a set of brand-owner profiles.
// All means no restriction.
type OwnerScope struct {
	All      bool
	OwnerIDs []string
}
