package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aakankshas938-hue/hotel-booking/internal/model"
)

// RoomTypeRepo provides read access to the room_types table.
type RoomTypeRepo struct {
	db *sql.DB
}

// NewRoomTypeRepo constructs a RoomTypeRepo bound to the given database.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo { return &RoomTypeRepo{db: db} }

// GetByID returns a single room type or ErrRoomTypeNotFound.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (*model.RoomType, error) {
	const q = `SELECT id, name, description, price_per_night, capacity FROM room_types WHERE id = ?`
	var rt model.RoomType
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rt.ID, &rt.Name, &rt.Description, &rt.PricePerNight, &rt.Capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomTypeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// ListAll returns every room type ordered by nightly price.
func (r *RoomTypeRepo) ListAll(ctx context.Context) ([]model.RoomType, error) {
	const q = `SELECT id, name, description, price_per_night, capacity FROM room_types ORDER BY price_per_night, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.RoomType, 0)
	for rows.Next() {
		var rt model.RoomType
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Description, &rt.PricePerNight, &rt.Capacity); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
