package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookeasy/portal/internal/core/domain"
	"github.com/bookeasy/portal/internal/core/ports"
)

// ResourceHandler serves the resource catalog pages. Mutations are
// administrator-gated at page level; the guard middleware only enforces
// authentication, so a non-admin reaching an admin page through a stale
// link gets an access-denied page rather than a redirect.
type ResourceHandler struct {
	backend ports.BackendClient
	logger  zerolog.Logger
}

func NewResourceHandler(backend ports.BackendClient, logger zerolog.Logger) *ResourceHandler {
	return &ResourceHandler{backend: backend, logger: logger}
}

// List handles GET /resources. The ?book=<id> query opens the date prompt
// for one resource (non-admins only).
func (h *ResourceHandler) List(c echo.Context) error {
	sess := currentSession(c)
	page := resourcesPage{basePage: base(c, "Resources")}

	resources, err := h.backend.ListResources(c.Request().Context(), sess.Token)
	if err != nil {
		page.Error = domain.ErrorMessage(err, "Error fetching resources")
		return c.Render(http.StatusOK, "resources", page)
	}
	page.Resources = resources

	if id := c.QueryParam("book"); id != "" && !sess.User.IsAdmin() {
		for i := range resources {
			if resources[i].ID == id {
				page.BookingFor = &resources[i]
				break
			}
		}
	}

	return c.Render(http.StatusOK, "resources", page)
}

// CreatePage handles GET /resources/create.
func (h *ResourceHandler) CreatePage(c echo.Context) error {
	if denied := h.denyNonAdmin(c); denied != nil {
		return denied(c)
	}
	return c.Render(http.StatusOK, "resource_form", resourceFormPage{basePage: base(c, "Create Resource")})
}

// Create handles POST /resources/create.
func (h *ResourceHandler) Create(c echo.Context) error {
	if denied := h.denyNonAdmin(c); denied != nil {
		return denied(c)
	}
	sess := currentSession(c)

	var form resourceForm
	page := resourceFormPage{basePage: base(c, "Create Resource")}
	if err := c.Bind(&form); err != nil {
		page.Error = "Failed to create resource"
		return c.Render(http.StatusBadRequest, "resource_form", page)
	}
	page.Name, page.Description = form.Name, form.Description

	// Required-field check happens before any backend call.
	if err := c.Validate(&form); err != nil {
		page.Error = err.Error()
		return c.Render(http.StatusOK, "resource_form", page)
	}

	if _, err := h.backend.CreateResource(c.Request().Context(), sess.Token, ports.ResourceInput{
		Name:        form.Name,
		Description: form.Description,
	}); err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to create resource")
		return c.Render(http.StatusOK, "resource_form", page)
	}

	// Confirmation first, then navigate back to the list after the delay.
	page.Name, page.Description = "", ""
	page.Success = "Resource created successfully!"
	page.Redirect = "/resources"
	return c.Render(http.StatusOK, "resource_form", page)
}

// EditPage handles GET /resources/edit/:id.
func (h *ResourceHandler) EditPage(c echo.Context) error {
	if denied := h.denyNonAdmin(c); denied != nil {
		return denied(c)
	}
	sess := currentSession(c)
	id := c.Param("id")
	page := resourceFormPage{basePage: base(c, "Edit Resource"), Editing: true, ResourceID: id}

	resource, err := h.backend.GetResource(c.Request().Context(), sess.Token, id)
	if err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to fetch resource")
		return c.Render(http.StatusOK, "resource_form", page)
	}
	page.Name, page.Description = resource.Name, resource.Description

	return c.Render(http.StatusOK, "resource_form", page)
}

// Edit handles POST /resources/edit/:id.
func (h *ResourceHandler) Edit(c echo.Context) error {
	if denied := h.denyNonAdmin(c); denied != nil {
		return denied(c)
	}
	sess := currentSession(c)
	id := c.Param("id")

	var form resourceForm
	page := resourceFormPage{basePage: base(c, "Edit Resource"), Editing: true, ResourceID: id}
	if err := c.Bind(&form); err != nil {
		page.Error = "Failed to update resource"
		return c.Render(http.StatusBadRequest, "resource_form", page)
	}
	page.Name, page.Description = form.Name, form.Description

	if err := c.Validate(&form); err != nil {
		page.Error = err.Error()
		return c.Render(http.StatusOK, "resource_form", page)
	}

	if _, err := h.backend.UpdateResource(c.Request().Context(), sess.Token, id, ports.ResourceInput{
		Name:        form.Name,
		Description: form.Description,
	}); err != nil {
		page.Error = domain.ErrorMessage(err, "Failed to update resource")
		return c.Render(http.StatusOK, "resource_form", page)
	}

	page.Success = "Resource updated successfully!"
	page.Redirect = "/resources"
	return c.Render(http.StatusOK, "resource_form", page)
}

// Delete handles POST /resources/:id/delete. The destructive call is behind
// an explicit confirm step in the page. On success the item is removed from
// the already-fetched list without a refetch; on failure the list renders
// unchanged with the error.
func (h *ResourceHandler) Delete(c echo.Context) error {
	if denied := h.denyNonAdmin(c); denied != nil {
		return denied(c)
	}
	sess := currentSession(c)
	id := c.Param("id")
	page := resourcesPage{basePage: base(c, "Resources")}

	resources, err := h.backend.ListResources(c.Request().Context(), sess.Token)
	if err != nil {
		page.Error = domain.ErrorMessage(err, "Error fetching resources")
		return c.Render(http.StatusOK, "resources", page)
	}
	page.Resources = resources

	if err := h.backend.DeleteResource(c.Request().Context(), sess.Token, id); err != nil {
		page.Error = domain.ErrorMessage(err, "Error deleting resource")
		return c.Render(http.StatusOK, "resources", page)
	}

	page.Resources = domain.RemoveResource(resources, id)
	page.Success = "Resource deleted successfully!"
	return c.Render(http.StatusOK, "resources", page)
}

// Book handles POST /resources/:id/book: confirm of the date prompt. The
// resource list itself is never mutated by booking creation.
func (h *ResourceHandler) Book(c echo.Context) error {
	sess := currentSession(c)
	id := c.Param("id")
	page := resourcesPage{basePage: base(c, "Resources")}

	resources, err := h.backend.ListResources(c.Request().Context(), sess.Token)
	if err != nil {
		page.Error = domain.ErrorMessage(err, "Error fetching resources")
		return c.Render(http.StatusOK, "resources", page)
	}
	page.Resources = resources

	var form bookingForm
	if err := c.Bind(&form); err != nil || form.Date == "" {
		// Keep the prompt open; no backend call without a date.
		page.Error = "Please select a date."
		for i := range resources {
			if resources[i].ID == id {
				page.BookingFor = &resources[i]
				break
			}
		}
		return c.Render(http.StatusOK, "resources", page)
	}

	if _, err := h.backend.CreateBooking(c.Request().Context(), sess.Token, id, form.Date); err != nil {
		page.Error = domain.ErrorMessage(err, "Error creating booking")
		return c.Render(http.StatusOK, "resources", page)
	}

	page.Success = "Booking created successfully!"
	return c.Render(http.StatusOK, "resources", page)
}

// denyNonAdmin returns the access-denied renderer for non-admin viewers and
// nil when the viewer may proceed.
func (h *ResourceHandler) denyNonAdmin(c echo.Context) echo.HandlerFunc {
	if currentUser(c).IsAdmin() {
		return nil
	}
	return renderAccessDenied
}

// renderAccessDenied is the page-level second layer of the two-layer access
// check: the guard only proves authentication.
func renderAccessDenied(c echo.Context) error {
	return c.Render(http.StatusForbidden, "denied", basePage{Title: "Access Denied", User: currentUser(c)})
}
