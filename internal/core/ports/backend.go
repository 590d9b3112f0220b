package ports

import (
	"context"

	"github.com/bookeasy/portal/internal/core/domain"
)

// Registration carries the fields of the backend's register call.
type Registration struct {
	FullName string
	Email    string
	Password string
	Role     string
}

// ResourceInput carries the mutable fields of a resource.
type ResourceInput struct {
	Name        string
	Description string
}

// AuthResult is the backend's response to a successful login or
// registration: the identity snapshot plus the bearer token proving it.
type AuthResult struct {
	Token string
	User  domain.User
}

// BackendClient is the portal's typed view of the booking backend. Every
// call attaches the bearer token when one is supplied; the backend is the
// sole authority on authorization and booking state transitions.
type BackendClient interface {
	Register(ctx context.Context, reg Registration) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	ListResources(ctx context.Context, token string) ([]domain.Resource, error)
	GetResource(ctx context.Context, token, id string) (*domain.Resource, error)
	CreateResource(ctx context.Context, token string, in ResourceInput) (*domain.Resource, error)
	UpdateResource(ctx context.Context, token, id string, in ResourceInput) (*domain.Resource, error)
	DeleteResource(ctx context.Context, token, id string) error

	ListAllBookings(ctx context.Context, token string) ([]domain.Booking, error)
	ListMyBookings(ctx context.Context, token string) ([]domain.Booking, error)
	GetBooking(ctx context.Context, token, id string) (*domain.Booking, error)
	CreateBooking(ctx context.Context, token, resourceID, date string) (*domain.Booking, error)
	ApproveBooking(ctx context.Context, token, id string) (*domain.Booking, error)
	RejectBooking(ctx context.Context, token, id, reason string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, token, id string) (*domain.Booking, error)
}
