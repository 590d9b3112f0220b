package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity snapshot issued by the backend on login or
// registration. The portal stores it alongside the bearer token and treats
// it as read-only until the next authentication.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the identity carries the administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
