package domain

// Identity is the caller resolved from a verified access token.
type Identity struct {
	ID   string
	Role Role
}

// Is reports whether the identity holds one of the given roles.
func (i Identity) Is(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
