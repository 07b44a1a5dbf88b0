package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aakankshas938-hue/hotel-booking/internal/model"
)

// RoomRepo provides read access to rooms joined with their hotel and
// room type. The booking service resolves rooms through this
// repository before creating a booking.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// RoomDetail is a room together with the denormalized hotel and room
// type attributes callers need for display and validation. Capacity is
// the authoritative guest limit for the room.
type RoomDetail struct {
	Room          model.Room `json:"room"`
	HotelName     string     `json:"hotel_name"`
	TypeName      string     `json:"type_name"`
	PricePerNight float64    `json:"price_per_night"`
	Capacity      uint32     `json:"capacity"`
}

const roomDetailQuery = `SELECT r.id, r.hotel_id, r.room_type_id, r.room_number, r.is_available,
       h.name, t.name, t.price_per_night, t.capacity
FROM rooms r
JOIN hotels h ON h.id = r.hotel_id
JOIN room_types t ON t.id = r.room_type_id`

func scanRoomDetail(row interface{ Scan(...any) error }) (*RoomDetail, error) {
	var d RoomDetail
	err := row.Scan(
		&d.Room.ID, &d.Room.HotelID, &d.Room.RoomTypeID, &d.Room.RoomNumber, &d.Room.IsAvailable,
		&d.HotelName, &d.TypeName, &d.PricePerNight, &d.Capacity,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByID returns one room with its hotel and type attributes, or
// ErrRoomNotFound when no row matches.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*RoomDetail, error) {
	const q = roomDetailQuery + ` WHERE r.id = ?`
	d, err := scanRoomDetail(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	return d, err
}

// ListByHotel returns all rooms of a hotel ordered by room number. It
// returns ErrHotelNotFound when the hotel itself does not exist, so
// callers can distinguish "no rooms" from "no such hotel".
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]RoomDetail, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM hotels WHERE id = ?)`, hotelID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrHotelNotFound
	}
	const q = roomDetailQuery + ` WHERE r.hotel_id = ? ORDER BY r.room_number, r.id`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RoomDetail, 0)
	for rows.Next() {
		d, err := scanRoomDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
