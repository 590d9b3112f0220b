package domain

import "time"

// BookingStatus represents the lifecycle state of a booking as reported by
// the backend. The portal never advances a status locally; transitions are
// requested and whatever the backend returns replaces the cached record.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

// StatusAll is the filter value that selects every booking. It is a view
// concern, not a real status.
const StatusAll BookingStatus = "all"

// Statuses lists every booking status in filter-tab display order.
func Statuses() []BookingStatus {
	return []BookingStatus{StatusPending, StatusApproved, StatusRejected, StatusCancelled}
}

// Valid reports whether s is a status the backend can return.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether the portal should offer a cancel action for a
// booking in this state. The backend remains the authority on whether the
// transition is actually allowed.
func (s BookingStatus) Cancellable() bool {
	return s == StatusPending || s == StatusApproved
}

// Booking is a user's request to reserve a resource for a date, embedded
// with the resource and owner snapshots the backend returns.
type Booking struct {
	ID              string        `json:"id"`
	Resource        Resource      `json:"resource"`
	User            User          `json:"user"`
	Date            time.Time     `json:"date"`
	Status          BookingStatus `json:"status"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// FilterBookings returns the subset of list whose status equals status.
// StatusAll (or empty) selects the full list.
func FilterBookings(list []Booking, status BookingStatus) []Booking {
	if status == "" || status == StatusAll {
		return list
	}
	out := make([]Booking, 0, len(list))
	for _, b := range list {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

// ReplaceBooking returns a copy of list with the element matching
// updated.ID swapped for updated. The record is replaced wholesale with the
// backend-returned value, never merged field by field. Lists that do not
// contain the id come back unchanged.
func ReplaceBooking(list []Booking, updated Booking) []Booking {
	out := make([]Booking, len(list))
	for i, b := range list {
		if b.ID == updated.ID {
			out[i] = updated
		} else {
			out[i] = b
		}
	}
	return out
}
