package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User models an authenticated actor in the system.
// The password hash is never serialized.
type User struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	Role          string    `json:"role"`
	PointsBalance int64     `json:"points_balance"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PublicUser is the projection returned to clients: identity and balance,
// never the hash or the active flag.
type PublicUser struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	PointsBalance int64  `json:"points_balance"`
}

// Public returns the client-facing projection of u.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:            u.ID,
		Username:      u.Username,
		Role:          u.Role,
		PointsBalance: u.PointsBalance,
	}
}
