package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aakankshas938-hue/hotel-booking/internal/model"
)

// BookingRepo persists bookings. It is the arbiter of the no-overlap
// invariant: the overlap check and the insert happen inside one
// transaction holding a lock on the room row, so two concurrent
// creates for the same room serialize and the loser observes the
// winner's booking. Handlers never run the check themselves.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, user_id, room_id, check_in_date, check_out_date, guests, is_cancelled, created_at`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.RoomID, &b.CheckIn, &b.CheckOut, &b.Guests, &b.IsCancelled, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateIfAvailable inserts the booking unless an active booking for
// the same room overlaps [CheckIn, CheckOut). On success the generated
// ID and created_at are populated on b. It returns ErrBookingConflict
// when the range is taken and ErrRoomNotFound when the room row does
// not exist.
//
// The room row is locked with SELECT ... FOR UPDATE before the overlap
// count, which serializes concurrent creates for the same room. Date
// comparison uses half-open semantics: an existing checkout on day X
// does not conflict with a new check-in on day X.
func (r *BookingRepo) CreateIfAvailable(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var roomID uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = ? FOR UPDATE`, b.RoomID).Scan(&roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoomNotFound
	}
	if err != nil {
		return err
	}

	var conflicts int
	const overlapQ = `SELECT COUNT(*) FROM bookings
		WHERE room_id = ? AND is_cancelled = 0
		  AND check_in_date < ? AND check_out_date > ?`
	if err := tx.QueryRowContext(ctx, overlapQ, b.RoomID, b.CheckOut, b.CheckIn).Scan(&conflicts); err != nil {
		return err
	}
	if conflicts > 0 {
		return ErrBookingConflict
	}

	const insQ = `INSERT INTO bookings (user_id, room_id, check_in_date, check_out_date, guests) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, insQ, b.UserID, b.RoomID, b.CheckIn, b.CheckOut, b.Guests)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.IsCancelled = false

	// Read the row back for the DB-assigned created_at.
	const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	created, err := scanBooking(tx.QueryRowContext(ctx, sel, b.ID))
	if err != nil {
		return err
	}
	*b = *created

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByIDForUser returns the booking only when it belongs to the given
// user. A booking that exists but is owned by someone else yields the
// same ErrBookingNotFound as a missing one.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? AND user_id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, bookingID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	return b, err
}

// CancelForUser marks the booking cancelled and returns the updated
// row. Ownership is enforced by the WHERE clause, so foreign bookings
// surface as ErrBookingNotFound. Cancelling an already cancelled
// booking is a no-op success; the transition is one-way and there is
// no operation that clears the flag.
func (r *BookingRepo) CancelForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? AND user_id = ? FOR UPDATE`
	b, err := scanBooking(tx.QueryRowContext(ctx, sel, bookingID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	if !b.IsCancelled {
		if _, err := tx.ExecContext(ctx, `UPDATE bookings SET is_cancelled = 1 WHERE id = ?`, b.ID); err != nil {
			return nil, err
		}
		b.IsCancelled = true
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// ListByUser returns all bookings of the user, cancelled ones
// included, newest first. The id tiebreak keeps the order stable for
// bookings created within the same second.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// HasOverlap reports whether any active booking for the room overlaps
// [checkIn, checkOut). This is the read-only availability probe; it
// takes no locks and makes no promise that the answer still holds at
// insert time, which is why CreateIfAvailable re-checks.
func (r *BookingRepo) HasOverlap(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM bookings
		WHERE room_id = ? AND is_cancelled = 0
		  AND check_in_date < ? AND check_out_date > ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, roomID, checkOut, checkIn).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
