package domain

import "time"

// Role classifies what an authenticated user may do with commodities.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleBusiness Role = "business"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleBusiness
}

// User models a registered account. PasswordHash always holds a bcrypt
// digest once the user has been persisted.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsCustomer() bool { return u.Role == RoleCustomer }

func (u *User) IsBusiness() bool { return u.Role == RoleBusiness }

// Principal is the authenticated actor behind a request, as resolved from
// the bearer token.
type Principal struct {
	ID       string
	Username string
	Role     Role
}
