// Package backend implements the typed HTTP client for the booking backend.
// The backend owns all business rules; this client only shapes requests,
// attaches the bearer credential, and decodes responses. Per the portal's
// resilience model there are no client-side timeouts or retries: a failed
// call surfaces once and the user retries through the UI.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookeasy/portal/internal/core/domain"
	"github.com/bookeasy/portal/internal/core/ports"
	"github.com/bookeasy/portal/internal/metrics"
)

// Client talks to the booking backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger,
	}
}

// --- Auth ---

// authPayload is the backend's response to register and login: identity
// fields plus the bearer token, flat in one object.
type authPayload struct {
	Message  string `json:"message,omitempty"`
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

func (p *authPayload) result() *ports.AuthResult {
	return &ports.AuthResult{
		Token: p.Token,
		User: domain.User{
			ID:       p.ID,
			FullName: p.FullName,
			Email:    p.Email,
			Role:     p.Role,
		},
	}
}

func (c *Client) Register(ctx context.Context, reg ports.Registration) (*ports.AuthResult, error) {
	body := map[string]string{
		"fullName": reg.FullName,
		"email":    reg.Email,
		"password": reg.Password,
		"role":     reg.Role,
	}
	var payload authPayload
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", "", body, &payload); err != nil {
		return nil, err
	}
	return payload.result(), nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var payload authPayload
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", body, &payload); err != nil {
		return nil, err
	}
	return payload.result(), nil
}

// --- Resources ---

func (c *Client) ListResources(ctx context.Context, token string) ([]domain.Resource, error) {
	var out []domain.Resource
	if err := c.do(ctx, "list_resources", http.MethodGet, "/resources", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetResource(ctx context.Context, token, id string) (*domain.Resource, error) {
	var out domain.Resource
	if err := c.do(ctx, "get_resource", http.MethodGet, "/resources/"+id, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateResource(ctx context.Context, token string, in ports.ResourceInput) (*domain.Resource, error) {
	body := map[string]string{"name": in.Name}
	if in.Description != "" {
		body["description"] = in.Description
	}
	// Create responds with the resource fields flat next to the message.
	var payload struct {
		Message     string `json:"message,omitempty"`
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}
	if err := c.do(ctx, "create_resource", http.MethodPost, "/resources", token, body, &payload); err != nil {
		return nil, err
	}
	return &domain.Resource{ID: payload.ID, Name: payload.Name, Description: payload.Description}, nil
}

func (c *Client) UpdateResource(ctx context.Context, token, id string, in ports.ResourceInput) (*domain.Resource, error) {
	body := map[string]string{}
	if in.Name != "" {
		body["name"] = in.Name
	}
	if in.Description != "" {
		body["description"] = in.Description
	}
	// Update wraps the record in an envelope.
	var payload struct {
		Message  string          `json:"message,omitempty"`
		Resource domain.Resource `json:"resource"`
	}
	if err := c.do(ctx, "update_resource", http.MethodPut, "/resources/"+id, token, body, &payload); err != nil {
		return nil, err
	}
	return &payload.Resource, nil
}

func (c *Client) DeleteResource(ctx context.Context, token, id string) error {
	return c.do(ctx, "delete_resource", http.MethodDelete, "/resources/"+id, token, nil, nil)
}

// --- Bookings ---

type bookingListPayload struct {
	Bookings []domain.Booking `json:"bookings"`
}

func (c *Client) ListAllBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	var payload bookingListPayload
	if err := c.do(ctx, "list_all_bookings", http.MethodGet, "/bookings", token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Bookings, nil
}

func (c *Client) ListMyBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	var payload bookingListPayload
	if err := c.do(ctx, "list_my_bookings", http.MethodGet, "/bookings/my", token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Bookings, nil
}

func (c *Client) GetBooking(ctx context.Context, token, id string) (*domain.Booking, error) {
	var out domain.Booking
	if err := c.do(ctx, "get_booking", http.MethodGet, "/bookings/"+id, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBooking(ctx context.Context, token, resourceID, date string) (*domain.Booking, error) {
	body := map[string]string{"resourceId": resourceID, "date": date}
	return c.doBooking(ctx, "create_booking", http.MethodPost, "/bookings", token, body)
}

func (c *Client) ApproveBooking(ctx context.Context, token, id string) (*domain.Booking, error) {
	return c.doBooking(ctx, "approve_booking", http.MethodPut, "/bookings/"+id+"/approve", token, nil)
}

func (c *Client) RejectBooking(ctx context.Context, token, id, reason string) (*domain.Booking, error) {
	body := map[string]string{"reason": reason}
	return c.doBooking(ctx, "reject_booking", http.MethodPut, "/bookings/"+id+"/reject", token, body)
}

func (c *Client) CancelBooking(ctx context.Context, token, id string) (*domain.Booking, error) {
	return c.doBooking(ctx, "cancel_booking", http.MethodPut, "/bookings/"+id+"/cancel", token, nil)
}

// doBooking issues a booking mutation and decodes the authoritative record
// the backend returns, accepting both the {"booking": {...}} envelope and a
// bare record.
func (c *Client) doBooking(ctx context.Context, op, method, path, token string, body any) (*domain.Booking, error) {
	var raw json.RawMessage
	if err := c.do(ctx, op, method, path, token, body, &raw); err != nil {
		return nil, err
	}

	var envelope struct {
		Booking *domain.Booking `json:"booking"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Booking != nil && envelope.Booking.ID != "" {
		return envelope.Booking, nil
	}

	var booking domain.Booking
	if err := json.Unmarshal(raw, &booking); err != nil {
		return nil, fmt.Errorf("%s: decode booking: %w", op, err)
	}
	return &booking, nil
}

// --- Transport ---

// errorPayload is the backend's error envelope. The message is optional;
// callers fall back to a per-action generic message when it is absent.
type errorPayload struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		c.logger.Warn().Err(err).Str("operation", op).Msg("backend unreachable")
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		return fmt.Errorf("%s: read response: %w", op, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "rejected").Inc()
		var ep errorPayload
		_ = json.Unmarshal(data, &ep)
		c.logger.Debug().
			Str("operation", op).
			Int("status", resp.StatusCode).
			Str("message", ep.Message).
			Msg("backend rejected request")
		return &domain.BackendError{StatusCode: resp.StatusCode, Message: ep.Message}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(op, "ok").Inc()
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
