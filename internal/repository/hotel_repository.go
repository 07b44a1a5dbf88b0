package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aakankshas938-hue/hotel-booking/internal/model"
)

// HotelRepo provides read access to the hotels table. Hotels are
// reference data; no write operations are exposed.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

const hotelColumns = `id, name, location, description, image_url, created_at`

func scanHotel(row interface{ Scan(...any) error }) (*model.Hotel, error) {
	var h model.Hotel
	err := row.Scan(&h.ID, &h.Name, &h.Location, &h.Description, &h.ImageURL, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// GetByID returns a single hotel. ErrHotelNotFound is returned when no
// row matches; a missing hotel is never signalled as a nil result.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`
	h, err := scanHotel(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHotelNotFound
	}
	return h, err
}

// ListAll returns every hotel ordered by name. The home page renders
// this list directly.
func (r *HotelRepo) ListAll(ctx context.Context) ([]model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels ORDER BY name, id`
	return r.queryHotels(ctx, q)
}

// SearchByLocation returns hotels whose location contains the given
// term, case-insensitively. An empty term matches everything, same as
// the unfiltered listing.
func (r *HotelRepo) SearchByLocation(ctx context.Context, location string) ([]model.Hotel, error) {
	term := strings.TrimSpace(location)
	if term == "" {
		return r.ListAll(ctx)
	}
	const q = `SELECT ` + hotelColumns + ` FROM hotels WHERE LOWER(location) LIKE ? ORDER BY name, id`
	return r.queryHotels(ctx, q, "%"+strings.ToLower(term)+"%")
}

func (r *HotelRepo) queryHotels(ctx context.Context, q string, args ...any) ([]model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Hotel, 0)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
