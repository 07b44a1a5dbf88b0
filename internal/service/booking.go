// Package service implements the reservation engine: booking creation
// with conflict detection, cancellation and listing. The engine is
// deliberately independent of the HTTP layer; the acting user is an
// explicit argument on every operation and the store is an interface,
// so the same code is driven by handlers and by tests.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aakankshas938-hue/hotel-booking/internal/model"
	"github.com/aakankshas938-hue/hotel-booking/internal/queue"
	"github.com/aakankshas938-hue/hotel-booking/internal/repository"
)

// DateLayout is the wire format for check-in and check-out dates.
const DateLayout = "2006-01-02"

// ValidationError reports a malformed or out-of-policy input. Field
// names the offending input so clients can attach the message to the
// right form control.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// BookingStore is the persistence contract the engine needs. The
// production implementation is repository.BookingRepo; tests use an
// in-memory fake. CreateIfAvailable must perform the overlap check and
// the insert atomically so the no-overlap invariant holds under
// concurrent calls.
type BookingStore interface {
	CreateIfAvailable(ctx context.Context, b *model.Booking) error
	GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error)
	CancelForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
	HasOverlap(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error)
}

// RoomStore resolves rooms for validation. Implemented by
// repository.RoomRepo.
type RoomStore interface {
	GetByID(ctx context.Context, id uint64) (*repository.RoomDetail, error)
}

// EventSink receives booking lifecycle events. Publishing is
// best-effort: the engine logs nothing and fails nothing when the sink
// errors, the caller owns that policy. A nil sink disables events.
type EventSink interface {
	PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error
}

// BookingService is the reservation engine.
type BookingService struct {
	bookings BookingStore
	rooms    RoomStore
	events   EventSink

	// now is the clock used for the "no past check-in" rule. Tests
	// override it to pin today.
	now func() time.Time
}

// NewBookingService constructs the engine. events may be nil.
func NewBookingService(bookings BookingStore, rooms RoomStore, events EventSink) *BookingService {
	if bookings == nil || rooms == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{
		bookings: bookings,
		rooms:    rooms,
		events:   events,
		now:      time.Now,
	}
}

// ParseDate parses a YYYY-MM-DD string into a UTC date. The field name
// is used for the ValidationError when parsing fails.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, &ValidationError{Field: field, Reason: "must be a date in YYYY-MM-DD form"}
	}
	return t, nil
}

// today truncates the engine clock to a UTC date for comparison with
// parsed check-in dates.
func (s *BookingService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CreateBooking validates the request and asks the store to insert the
// booking atomically. Possible failures, in check order:
//
//	*ValidationError            - bad dates, zero-night stay, past
//	                              check-in, bad guest count
//	repository.ErrRoomNotFound  - the room does not exist
//	repository.ErrBookingConflict - dates overlap an active booking
//
// On success the returned booking is active with a fresh created_at,
// and a booking.created event is emitted.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID uint64, checkInStr, checkOutStr string, guests uint32) (*model.Booking, error) {
	checkIn, err := ParseDate("check_in", checkInStr)
	if err != nil {
		return nil, err
	}
	checkOut, err := ParseDate("check_out", checkOutStr)
	if err != nil {
		return nil, err
	}
	if !checkOut.After(checkIn) {
		return nil, &ValidationError{Field: "check_out", Reason: "must be after check_in"}
	}
	if checkIn.Before(s.today()) {
		return nil, &ValidationError{Field: "check_in", Reason: "must not be in the past"}
	}
	if guests < 1 {
		return nil, &ValidationError{Field: "guests", Reason: "must be at least 1"}
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if guests > room.Capacity {
		return nil, &ValidationError{
			Field:  "guests",
			Reason: fmt.Sprintf("exceeds room capacity of %d", room.Capacity),
		}
	}

	b := &model.Booking{
		UserID:   userID,
		RoomID:   roomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   guests,
	}
	if err := s.bookings.CreateIfAvailable(ctx, b); err != nil {
		return nil, err
	}

	s.emit(ctx, queue.EventBookingCreated, b)
	return b, nil
}

// CancelBooking marks the booking cancelled. Bookings that do not
// exist and bookings owned by another user both return
// repository.ErrBookingNotFound, so callers cannot probe for foreign
// bookings. Cancelling twice is a no-op success; the flag never goes
// back. A booking.cancelled event is emitted only on the first cancel.
func (s *BookingService) CancelBooking(ctx context.Context, userID, bookingID uint64) (*model.Booking, error) {
	before, err := s.bookings.GetByIDForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	alreadyCancelled := before.IsCancelled

	b, err := s.bookings.CancelForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if !alreadyCancelled {
		s.emit(ctx, queue.EventBookingCancelled, b)
	}
	return b, nil
}

// GetBooking returns one booking of the user. Foreign and missing
// bookings are both repository.ErrBookingNotFound.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID uint64) (*model.Booking, error) {
	return s.bookings.GetByIDForUser(ctx, bookingID, userID)
}

// ListBookingsForUser returns every booking of the user, cancelled
// ones included, most recent first.
func (s *BookingService) ListBookingsForUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// CheckAvailability reports whether the room is free for the range.
// It is a display helper only: the answer is not a hold, and
// CreateBooking re-checks under lock.
func (s *BookingService) CheckAvailability(ctx context.Context, roomID uint64, checkInStr, checkOutStr string) (bool, error) {
	checkIn, err := ParseDate("check_in", checkInStr)
	if err != nil {
		return false, err
	}
	checkOut, err := ParseDate("check_out", checkOutStr)
	if err != nil {
		return false, err
	}
	if !checkOut.After(checkIn) {
		return false, &ValidationError{Field: "check_out", Reason: "must be after check_in"}
	}
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return false, err
	}
	taken, err := s.bookings.HasOverlap(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func (s *BookingService) emit(ctx context.Context, kind string, b *model.Booking) {
	if s.events == nil {
		return
	}
	_ = s.events.PublishBookingEvent(ctx, queue.BookingEvent{
		Kind:      kind,
		BookingID: b.ID,
		UserID:    b.UserID,
		RoomID:    b.RoomID,
		CheckIn:   b.CheckIn.Format(DateLayout),
		CheckOut:  b.CheckOut.Format(DateLayout),
		Guests:    b.Guests,
		At:        time.Now().UTC().Format(time.RFC3339),
	})
}
