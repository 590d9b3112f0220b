package handler

import (
	"github.com/bookeasy/portal/internal/core/domain"
)

// basePage carries the fields every template needs: the viewer (for the
// role-conditional navbar) and the transient banners.
type basePage struct {
	Title string
	User  *domain.User
	// Error and Success render as banners that self-clear after a fixed
	// delay, matching the transient message behaviour of the pages.
	Error   string
	Success string
	// Redirect, when set, makes the page navigate to the target after a
	// short confirmation delay.
	Redirect string
}

type homePage struct {
	basePage
}

type loginPage struct {
	basePage
	Email string
}

type registerPage struct {
	basePage
	FullName string
	Email    string
	Role     string
}

type dashboardPage struct {
	basePage
	Bookings []domain.Booking
}

type resourcesPage struct {
	basePage
	Resources []domain.Resource
	// BookingFor is the resource the date prompt is open for, if any.
	BookingFor *domain.Resource
}

type resourceFormPage struct {
	basePage
	Editing     bool
	ResourceID  string
	Name        string
	Description string
}

type bookingsPage struct {
	basePage
	// Scope is "my" for the caller's bookings or "all" for the
	// administrator view with filter tabs and approve/reject actions.
	Scope     string
	Tabs      []domain.BookingStatus
	ActiveTab domain.BookingStatus
	Bookings  []domain.Booking
}
