package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is the settlement core's view of a room booking. The rest of the
// booking lifecycle (creation, holds, check-in) lives in the application layer.
type Booking struct {
	Base
	OrderID        string          `db:"order_id"`
	OrganizationID uuid.UUID       `db:"organization_id"`
	VenueID        uuid.UUID       `db:"venue_id"`
	RoomID         uuid.UUID       `db:"room_id"`
	TotalPrice     decimal.Decimal `db:"total_price"`
	Status         BookingStatus   `db:"status"`
	StartTime      time.Time       `db:"start_time"`
	EndTime        time.Time       `db:"end_time"`
}

// Settleable reports whether revenue may be recognized for the booking.
func (b *Booking) Settleable() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusPaid
}
