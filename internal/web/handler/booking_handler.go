package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookeasy/portal/internal/core/domain"
	"github.com/bookeasy/portal/internal/core/ports"
)

// BookingHandler serves the two booking views: the caller's own bookings
// and the administrator view of every booking. Both share the card
// rendering; they differ in data scope and allowed actions.
//
// Every mutation follows the same pattern: fetch the page's list, issue the
// backend call, splice the single returned record into the list by id
// (replace, not merge), and render with a transient banner. No status
// change is ever displayed before the backend confirms it.
type BookingHandler struct {
	backend ports.BackendClient
	logger  zerolog.Logger
}

func NewBookingHandler(backend ports.BackendClient, logger zerolog.Logger) *BookingHandler {
	return &BookingHandler{backend: backend, logger: logger}
}

// My handles GET /bookings/my.
func (h *BookingHandler) My(c echo.Context) error {
	sess := currentSession(c)
	page := h.myPage(c)

	bookings, err := h.backend.ListMyBookings(c.Request().Context(), sess.Token)
	if err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to fetch bookings")
		return c.Render(http.StatusOK, "bookings", page)
	}
	page.Bookings = bookings

	return c.Render(http.StatusOK, "bookings", page)
}

// All handles GET /bookings/all. The status filter is pure view state
// carried in the query string, never persisted.
func (h *BookingHandler) All(c echo.Context) error {
	if !currentUser(c).IsAdmin() {
		return renderAccessDenied(c)
	}
	sess := currentSession(c)
	tab := activeTab(c.QueryParam("status"))
	page := h.allPage(c, tab)

	bookings, err := h.backend.ListAllBookings(c.Request().Context(), sess.Token)
	if err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to fetch bookings")
		return c.Render(http.StatusOK, "bookings", page)
	}
	page.Bookings = domain.FilterBookings(bookings, tab)

	return c.Render(http.StatusOK, "bookings", page)
}

// Approve handles POST /bookings/:id/approve (administrator).
func (h *BookingHandler) Approve(c echo.Context) error {
	return h.adminMutation(c, "Booking approved successfully!", "Error approving booking",
		func(token, id string) (*domain.Booking, error) {
			return h.backend.ApproveBooking(c.Request().Context(), token, id)
		})
}

// Reject handles POST /bookings/:id/reject (administrator). A missing
// reason aborts before any backend call is made.
func (h *BookingHandler) Reject(c echo.Context) error {
	var form rejectForm
	_ = c.Bind(&form)
	if form.Reason == "" {
		if !currentUser(c).IsAdmin() {
			return renderAccessDenied(c)
		}
		sess := currentSession(c)
		tab := activeTab(form.Status)
		page := h.allPage(c, tab)
		bookings, err := h.backend.ListAllBookings(c.Request().Context(), sess.Token)
		if err != nil {
			page.Error = domain.ErrorMessage(err, "Failed to fetch bookings")
			return c.Render(http.StatusOK, "bookings", page)
		}
		page.Bookings = domain.FilterBookings(bookings, tab)
		page.Error = "A rejection reason is required."
		return c.Render(http.StatusOK, "bookings", page)
	}

	return h.adminMutation(c, "Booking rejected successfully!", "Error rejecting booking",
		func(token, id string) (*domain.Booking, error) {
			return h.backend.RejectBooking(c.Request().Context(), token, id, form.Reason)
		})
}

// Cancel handles POST /bookings/:id/cancel. Both views expose it; the
// scope form field tells the handler which page issued the action.
func (h *BookingHandler) Cancel(c echo.Context) error {
	var form listActionForm
	_ = c.Bind(&form)

	if form.Scope == "all" {
		return h.adminMutation(c, "Booking cancelled successfully!", "Error cancelling booking",
			func(token, id string) (*domain.Booking, error) {
				return h.backend.CancelBooking(c.Request().Context(), token, id)
			})
	}

	sess := currentSession(c)
	page := h.myPage(c)

	bookings, err := h.backend.ListMyBookings(c.Request().Context(), sess.Token)
	if err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to fetch bookings")
		return c.Render(http.StatusOK, "bookings", page)
	}
	page.Bookings = bookings

	updated, err := h.backend.CancelBooking(c.Request().Context(), sess.Token, c.Param("id"))
	if err != nil {
		page.Error = domain.ErrorMessage(err, "Error cancelling booking")
		return c.Render(http.StatusOK, "bookings", page)
	}

	page.Bookings = domain.ReplaceBooking(bookings, *updated)
	page.Success = "Booking cancelled successfully!"
	return c.Render(http.StatusOK, "bookings", page)
}

// adminMutation runs the shared mutation pattern against the administrator
// list, preserving the active filter tab across the action.
func (h *BookingHandler) adminMutation(c echo.Context, success, fallback string, mutate func(token, id string) (*domain.Booking, error)) error {
	if !currentUser(c).IsAdmin() {
		return renderAccessDenied(c)
	}
	sess := currentSession(c)
	tab := activeTab(c.FormValue("status"))
	page := h.allPage(c, tab)

	bookings, err := h.backend.ListAllBookings(c.Request().Context(), sess.Token)
	if err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to fetch bookings")
		return c.Render(http.StatusOK, "bookings", page)
	}
	page.Bookings = domain.FilterBookings(bookings, tab)

	updated, err := mutate(sess.Token, c.Param("id"))
	if err != nil {
		page.Error = domain.ErrorMessage(err, fallback)
		return c.Render(http.StatusOK, "bookings", page)
	}

	page.Bookings = domain.FilterBookings(domain.ReplaceBooking(bookings, *updated), tab)
	page.Success = success
	return c.Render(http.StatusOK, "bookings", page)
}

func (h *BookingHandler) myPage(c echo.Context) bookingsPage {
	return bookingsPage{basePage: base(c, "My Bookings"), Scope: "my"}
}

func (h *BookingHandler) allPage(c echo.Context, tab domain.BookingStatus) bookingsPage {
	return bookingsPage{
		basePage:  base(c, "All Bookings"),
		Scope:     "all",
		Tabs:      domain.Statuses(),
		ActiveTab: tab,
	}
}

// activeTab normalises the status filter; anything unrecognised falls back
// to the default "all" tab.
func activeTab(raw string) domain.BookingStatus {
	tab := domain.BookingStatus(raw)
	if tab.Valid() {
		return tab
	}
	return domain.StatusAll
}
