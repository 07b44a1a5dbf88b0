package model

import "time"

// Booking records a stay of one user in one room over a half-open
// date range [CheckIn, CheckOut): the checkout day is free for the
// next guest's check-in. Bookings are never deleted; cancellation
// flips IsCancelled and is one-way. For any room the active
// (non-cancelled) bookings must have pairwise non-overlapping ranges,
// an invariant enforced by the store at insert time.
//
// Fields:
//  ID          - primary key identifier.
//  UserID      - owner of the booking.
//  RoomID      - booked room.
//  CheckIn     - first night of the stay (date, UTC).
//  CheckOut    - day of departure, strictly after CheckIn.
//  Guests      - number of guests, at least 1 and at most the room capacity.
//  IsCancelled - soft-delete flag, set once by cancel.
//  CreatedAt   - creation timestamp, immutable after insert.
type Booking struct {
	ID          uint64    // bookings.id
	UserID      uint64    // bookings.user_id
	RoomID      uint64    // bookings.room_id
	CheckIn     time.Time // bookings.check_in_date
	CheckOut    time.Time // bookings.check_out_date
	Guests      uint32    // bookings.guests
	IsCancelled bool      // bookings.is_cancelled
	CreatedAt   time.Time // bookings.created_at
}

// Nights returns the length of the stay in nights. A valid booking
// always has at least one night.
func (b Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// Overlaps reports whether the booking's range intersects
// [checkIn, checkOut) under half-open semantics.
func (b Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return b.CheckIn.Before(checkOut) && checkIn.Before(b.CheckOut)
}
