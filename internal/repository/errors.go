// Package repository holds the data access layer. This file defines the
// sentinel errors shared across repositories so that handlers and the
// booking service can distinguish failure modes with errors.Is instead
// of inspecting SQL errors directly.
package repository

import "errors"

// ErrHotelNotFound is returned when a hotel lookup matches no row.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrRoomTypeNotFound is returned when a room type lookup matches no row.
var ErrRoomTypeNotFound = errors.New("room type not found")

// ErrRoomNotFound is returned when a room lookup matches no row.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound is returned when a booking does not exist or does
// not belong to the calling user. The two cases are deliberately not
// distinguished: that way users cannot probe for the existence of other
// users' bookings.
var ErrBookingNotFound = errors.New("booking not found")

// ErrBookingConflict is returned when a requested date range overlaps
// an active booking for the same room. The store itself detects this
// inside the insert transaction, so concurrent conflicting creates
// cannot both succeed.
var ErrBookingConflict = errors.New("room unavailable for requested dates")

// ErrForbidden is reserved for operations on resources the caller can
// see but must not touch. Booking cancellation does not use it (it
// masks ownership behind ErrBookingNotFound) but the identity layer
// may.
var ErrForbidden = errors.New("forbidden")

// ErrUsernameExists is returned when registration collides with an
// existing username or email.
var ErrUsernameExists = errors.New("username or email already exists")
