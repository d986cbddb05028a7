package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indigo-hotel/booking"
	"indigo-hotel/ledger"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, NewSession()), srv
}

func TestLoginInstallsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "maria", payload["username"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok-123",
			"user": map[string]interface{}{
				"id": 7, "first_name": "Maria", "username": "maria",
				"email": "maria@example.com", "role": "client",
			},
		})
	})
	c, srv := newTestClient(mux)
	defer srv.Close()

	require.NoError(t, c.Login(context.Background(), "maria", "secret123"))

	identity, ok := c.Session.Current()
	require.True(t, ok)
	assert.Equal(t, uint(7), identity.UserID)
	assert.Equal(t, "maria", identity.Username)
	assert.Equal(t, "tok-123", c.Session.Token())
	assert.False(t, c.Session.IsStaff())

	c.Session.Logout()
	_, ok = c.Session.Current()
	assert.False(t, ok)
}

func TestLoginBadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	})
	c, srv := newTestClient(mux)
	defer srv.Close()

	err := c.Login(context.Background(), "maria", "wrong")
	var reqErr *booking.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
	assert.Equal(t, "invalid credentials", reqErr.Message)

	_, ok := c.Session.Current()
	assert.False(t, ok, "a failed login must not leave credentials behind")
}

func TestCreateRoomReservation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/reservations/rooms", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "2024-06-12", payload["check_in"])
		assert.Equal(t, "2024-06-15", payload["check_out"])
		assert.Equal(t, float64(3), payload["room_id"])
		assert.Equal(t, float64(2), payload["guests"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 42, "confirmation_code": "3F2A9B1C", "status": "pending", "total": 360,
		})
	})
	c, srv := newTestClient(mux)
	defer srv.Close()
	c.Session.Start("tok-123", booking.Identity{UserID: 7}, "client")

	res, err := c.CreateRoomReservation(context.Background(), booking.Draft{
		RoomID:   3,
		CheckIn:  time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		Guests:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), res.ID)
	assert.Equal(t, "3F2A9B1C", res.ConfirmationCode)
	assert.Equal(t, 360.0, res.Total)
}

func TestCreateRoomReservationFieldErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/reservations/rooms", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"field_errors": map[string]string{
				"check_in": "the room is already reserved for the selected dates",
			},
		})
	})
	c, srv := newTestClient(mux)
	defer srv.Close()
	c.Session.Start("tok-123", booking.Identity{UserID: 7}, "client")

	_, err := c.CreateRoomReservation(context.Background(), booking.Draft{RoomID: 3})
	var reqErr *booking.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusConflict, reqErr.StatusCode)
	assert.Contains(t, reqErr.FieldErrors, "check_in")
}

func TestVerifyAndResend(t *testing.T) {
	var verifyBody map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/reservations/rooms/42/verify", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&verifyBody))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": map[string]interface{}{"id": 42}})
	})
	mux.HandleFunc("/api/reservations/rooms/42/resend", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": map[string]bool{"resent": true}})
	})
	c, srv := newTestClient(mux)
	defer srv.Close()
	c.Session.Start("tok-123", booking.Identity{UserID: 7}, "client")

	require.NoError(t, c.VerifyRoomReservation(context.Background(), 42, "482913"))
	assert.Equal(t, "482913", verifyBody["code"])

	require.NoError(t, c.ResendRoomOTP(context.Background(), 42))
}

func TestRoomSnapshot(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/rooms/3", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ID": 3, "roomNumber": "201", "priceBase": 180, "capacity": 3,
		})
	})
	c, srv := newTestClient(mux)
	defer srv.Close()

	snap, err := c.RoomSnapshot(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), snap.ID)
	assert.Equal(t, "201", snap.RoomNumber)
	assert.Equal(t, 180.0, snap.PriceBase)
	assert.Equal(t, 3, snap.Capacity)
}

func TestLedgerEndpoints(t *testing.T) {
	var patched map[string]interface{}
	var deleted bool

	mux := http.NewServeMux()
	mux.HandleFunc("/api/reservations/rooms", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 7, "confirmation_code": "3F2A9B1C", "status": "pending",
				"created_at": "2024-06-10T09:00:00Z",
				"user":       map[string]string{"first_name": "Maria"},
				"room":       map[string]string{"roomNumber": "101"}},
		})
	})
	mux.HandleFunc("/api/reservations/tables", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{})
	})
	mux.HandleFunc("/api/reservations/salons", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{})
	})
	mux.HandleFunc("/api/reservations/salons/3", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
			json.NewEncoder(w).Encode(map[string]interface{}{"id": 3})
		case http.MethodDelete:
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		}
	})
	c, srv := newTestClient(mux)
	defer srv.Close()
	c.Session.Start("tok-admin", booking.Identity{UserID: 1}, "admin")
	assert.True(t, c.Session.IsStaff())

	rooms, err := c.RoomReservations(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "3F2A9B1C", rooms[0].ConfirmationCode)
	assert.Equal(t, "Maria", rooms[0].User.FirstName)

	total := 1800.0
	require.NoError(t, c.UpdateReservation(context.Background(), ledger.KindSalon, 3, "confirmed", &total))
	assert.Equal(t, "confirmed", patched["status"])
	assert.Equal(t, 1800.0, patched["total"])

	require.NoError(t, c.DeleteReservation(context.Background(), ledger.KindSalon, 3))
	assert.True(t, deleted)
}
