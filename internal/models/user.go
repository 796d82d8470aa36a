package models

// User mirrors the profile row kept by the session provider. Passwords never
// leave the provider; the field exists so the profile schema round-trips.
type User struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email" validate:"omitempty,email"`
	Password string `db:"password" json:"-"`
	Role     string `db:"role" json:"role" validate:"omitempty,oneof=User Admin"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "Admin"
}
