package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"indigo-hotel/booking"
	"indigo-hotel/ledger"
)

// Client talks to the reservation backend. It implements booking.API and
// ledger.API on top of one shared Session.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Session *Session
}

func New(baseURL string, session *Session) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Session: session,
	}
}

// errorEnvelope covers the three error shapes the backend produces: a bare
// {"error": ...}, the {"success": false, "error": ...} wrapper, and
// {"field_errors": {...}} from the booking form validators.
type errorEnvelope struct {
	Error       string            `json:"error"`
	FieldErrors map[string]string `json:"field_errors"`
}

// dataEnvelope unwraps {"success": true, "data": ...} responses.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		reqErr := &booking.RequestError{StatusCode: resp.StatusCode}
		var env errorEnvelope
		if json.Unmarshal(raw, &env) == nil {
			reqErr.Message = env.Error
			reqErr.FieldErrors = env.FieldErrors
		}
		return reqErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ---------------------------
// Auth
// ---------------------------

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID        uint   `json:"id"`
		FirstName string `json:"first_name"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		Role      string `json:"role"`
	} `json:"user"`
}

// Login authenticates and installs the credentials into the session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var res loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"username": username, "password": password}, &res)
	if err != nil {
		return err
	}
	c.Session.Start(res.Token, booking.Identity{
		UserID:   res.User.ID,
		Username: res.User.Username,
		Email:    res.User.Email,
	}, res.User.Role)
	return nil
}

// Register creates a client account. It does not sign in.
func (c *Client) Register(ctx context.Context, firstName, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"first_name": firstName,
		"username":   username,
		"email":      email,
		"password":   password,
	}, nil)
}

// ---------------------------
// booking.API
// ---------------------------

func (c *Client) RoomSnapshot(ctx context.Context, roomID uint) (booking.RoomSnapshot, error) {
	var snap booking.RoomSnapshot
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/rooms/%d", roomID), nil, &snap)
	return snap, err
}

func (c *Client) CreateRoomReservation(ctx context.Context, d booking.Draft) (booking.CreateResult, error) {
	var res booking.CreateResult
	err := c.do(ctx, http.MethodPost, "/api/reservations/rooms", map[string]interface{}{
		"room_id":   d.RoomID,
		"check_in":  d.CheckIn.Format("2006-01-02"),
		"check_out": d.CheckOut.Format("2006-01-02"),
		"guests":    d.Guests,
	}, &res)
	return res, err
}

func (c *Client) VerifyRoomReservation(ctx context.Context, reservationID uint, code string) error {
	var env dataEnvelope
	return c.do(ctx, http.MethodPost,
		fmt.Sprintf("/api/reservations/rooms/%d/verify", reservationID),
		map[string]string{"code": code}, &env)
}

func (c *Client) ResendRoomOTP(ctx context.Context, reservationID uint) error {
	var env dataEnvelope
	return c.do(ctx, http.MethodPost,
		fmt.Sprintf("/api/reservations/rooms/%d/resend", reservationID), nil, &env)
}

// ---------------------------
// ledger.API
// ---------------------------

// kindPath maps a ledger kind to its reservation route segment.
func kindPath(kind ledger.Kind) string {
	switch kind {
	case ledger.KindRoom:
		return "rooms"
	case ledger.KindTable:
		return "tables"
	case ledger.KindSalon:
		return "salons"
	}
	return string(kind)
}

func (c *Client) RoomReservations(ctx context.Context) ([]ledger.RoomRecord, error) {
	var records []ledger.RoomRecord
	err := c.do(ctx, http.MethodGet, "/api/reservations/rooms", nil, &records)
	return records, err
}

func (c *Client) TableReservations(ctx context.Context) ([]ledger.TableRecord, error) {
	var records []ledger.TableRecord
	err := c.do(ctx, http.MethodGet, "/api/reservations/tables", nil, &records)
	return records, err
}

func (c *Client) SalonReservations(ctx context.Context) ([]ledger.SalonRecord, error) {
	var records []ledger.SalonRecord
	err := c.do(ctx, http.MethodGet, "/api/reservations/salons", nil, &records)
	return records, err
}

func (c *Client) UpdateReservation(ctx context.Context, kind ledger.Kind, id uint, status string, total *float64) error {
	payload := map[string]interface{}{"status": status}
	if total != nil {
		payload["total"] = *total
	}
	return c.do(ctx, http.MethodPatch,
		fmt.Sprintf("/api/reservations/%s/%d", kindPath(kind), id), payload, nil)
}

func (c *Client) DeleteReservation(ctx context.Context, kind ledger.Kind, id uint) error {
	return c.do(ctx, http.MethodDelete,
		fmt.Sprintf("/api/reservations/%s/%d", kindPath(kind), id), nil, nil)
}
