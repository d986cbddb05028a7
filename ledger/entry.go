// Package ledger merges the three reservation collections (rooms, restaurant
// tables, event salons) into one admin view with shared filtering and
// state-gated mutation.
package ledger

import (
	"fmt"
	"time"
)

// Kind discriminates the reservation source collection.
type Kind string

const (
	KindRoom  Kind = "room"
	KindTable Kind = "table"
	KindSalon Kind = "salon"
)

// Entry is one row of the unified view. ID is a composite of kind and the
// source primary key ("room_42"), so rows from different collections never
// collide even when their numeric ids do.
type Entry struct {
	ID          string
	Kind        Kind
	SourceID    uint
	Code        string
	Client      string
	ClientEmail string
	Description string
	Status      string
	Total       float64
	// HasTotal is false for table reservations, which carry no price.
	HasTotal bool
	// PriceEditable is true only for salon reservations.
	PriceEditable bool
	// When is the date the reservation is for: check-in for rooms, the
	// reserved slot for tables, the event date for salons. Date filters run
	// on this, not on CreatedAt.
	When      time.Time
	CreatedAt time.Time
}

// clientRecord is the slice of the embedded user the ledger renders.
type clientRecord struct {
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

func (c clientRecord) display() string {
	if c.FirstName != "" {
		return c.FirstName
	}
	return c.Username
}

// RoomRecord mirrors the room reservation JSON served by the backend.
type RoomRecord struct {
	ID               uint         `json:"id"`
	ConfirmationCode string       `json:"confirmation_code"`
	Status           string       `json:"status"`
	CheckIn          time.Time    `json:"check_in"`
	CheckOut         time.Time    `json:"check_out"`
	Guests           int          `json:"guests"`
	Total            float64      `json:"total"`
	CreatedAt        time.Time    `json:"created_at"`
	User             clientRecord `json:"user"`
	Room             struct {
		RoomNumber string `json:"roomNumber"`
	} `json:"room"`
}

// Entry maps the room variant into the unified shape.
func (r RoomRecord) Entry() Entry {
	return Entry{
		ID:          compositeID(KindRoom, r.ID),
		Kind:        KindRoom,
		SourceID:    r.ID,
		Code:        r.ConfirmationCode,
		Client:      r.User.display(),
		ClientEmail: r.User.Email,
		Description: fmt.Sprintf("Room %s, %s to %s, %d guests",
			r.Room.RoomNumber,
			r.CheckIn.Format("2006-01-02"),
			r.CheckOut.Format("2006-01-02"),
			r.Guests),
		Status:    r.Status,
		Total:     r.Total,
		HasTotal:  true,
		When:      r.CheckIn,
		CreatedAt: r.CreatedAt,
	}
}

// TableRecord mirrors the table reservation JSON served by the backend.
type TableRecord struct {
	ID              uint         `json:"id"`
	ReservationCode string       `json:"reservation_code"`
	Status          string       `json:"status"`
	ReservedFor     time.Time    `json:"reserved_for"`
	PartySize       int          `json:"party_size"`
	Notes           string       `json:"notes"`
	CreatedAt       time.Time    `json:"created_at"`
	User            clientRecord `json:"user"`
	Table           struct {
		TableNumber string `json:"tableNumber"`
		Location    string `json:"location"`
	} `json:"table"`
}

// Entry maps the table variant into the unified shape. Tables have no price
// column; HasTotal stays false.
func (r TableRecord) Entry() Entry {
	return Entry{
		ID:          compositeID(KindTable, r.ID),
		Kind:        KindTable,
		SourceID:    r.ID,
		Code:        r.ReservationCode,
		Client:      r.User.display(),
		ClientEmail: r.User.Email,
		Description: fmt.Sprintf("Table %s, %s, party of %d",
			r.Table.TableNumber,
			r.ReservedFor.Format("2006-01-02 15:04"),
			r.PartySize),
		Status:    r.Status,
		When:      r.ReservedFor,
		CreatedAt: r.CreatedAt,
	}
}

// SalonRecord mirrors the salon reservation JSON served by the backend.
type SalonRecord struct {
	ID         uint         `json:"id"`
	EventCode  string       `json:"event_code"`
	Status     string       `json:"status"`
	EventDate  time.Time    `json:"event_date"`
	GuestCount int          `json:"guest_count"`
	Total      float64      `json:"total"`
	CreatedAt  time.Time    `json:"created_at"`
	User       clientRecord `json:"user"`
	Salon      struct {
		Name string `json:"name"`
	} `json:"salon"`
}

// Entry maps the salon variant into the unified shape. Only this variant
// allows editing the price.
func (r SalonRecord) Entry() Entry {
	return Entry{
		ID:          compositeID(KindSalon, r.ID),
		Kind:        KindSalon,
		SourceID:    r.ID,
		Code:        r.EventCode,
		Client:      r.User.display(),
		ClientEmail: r.User.Email,
		Description: fmt.Sprintf("%s, %s, %d guests",
			r.Salon.Name,
			r.EventDate.Format("2006-01-02"),
			r.GuestCount),
		Status:        r.Status,
		Total:         r.Total,
		HasTotal:      true,
		PriceEditable: true,
		When:          r.EventDate,
		CreatedAt:     r.CreatedAt,
	}
}

func compositeID(kind Kind, id uint) string {
	return fmt.Sprintf("%s_%d", kind, id)
}
