// Package queue defines the message payloads exchanged over the broker
// and the background consumer that drains them.
package queue

// Event kinds carried in BookingEvent.Kind.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published whenever a booking is created or
// cancelled. It carries enough for downstream consumers (audit log,
// notifications) to act without querying the primary database.
type BookingEvent struct {
	Kind      string `json:"kind"`
	BookingID uint64 `json:"booking_id"`
	UserID    uint64 `json:"user_id"`
	RoomID    uint64 `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Guests    uint32 `json:"guests"`
	At        string `json:"at"`
}
