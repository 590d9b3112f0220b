package handler

// Form payloads bound from POSTed pages. Required-field checks run here,
// before any backend call is made; everything else is validated server-side
// by the backend.

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

type registerForm struct {
	FullName string `form:"fullName" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	Role     string `form:"role" validate:"required,oneof=user admin"`
}

type resourceForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description"`
}

type bookingForm struct {
	Date string `form:"date" validate:"required"`
}

type rejectForm struct {
	Reason string `form:"reason"`
	Status string `form:"status"`
}

type listActionForm struct {
	// Scope tells a cancel action which page issued it: "my" or "all".
	Scope string `form:"scope"`
	// Status preserves the active filter tab across the action.
	Status string `form:"status"`
}
