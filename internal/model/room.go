package model

// RoomType describes a class of rooms (price and capacity). Rooms
// reference a type rather than carrying their own price so that a
// hotel can re-price a whole class at once.
//
// Fields:
//  ID            - primary key identifier.
//  Name          - short name such as "Standard" or "Suite".
//  Description   - longer description of the room class.
//  PricePerNight - nightly price, non-negative.
//  Capacity      - maximum number of guests, at least 1.
type RoomType struct {
	ID            uint64  // room_types.id
	Name          string  // room_types.name
	Description   string  // room_types.description
	PricePerNight float64 // room_types.price_per_night
	Capacity      uint32  // room_types.capacity
}

// Room is a bookable unit inside a hotel. RoomNumber is unique per
// hotel, not globally. IsAvailable is display metadata only: whether
// a room can actually be booked for a date range is always computed
// from the active bookings, never read off this flag.
//
// Fields:
//  ID          - primary key identifier.
//  HotelID     - hotel the room belongs to.
//  RoomTypeID  - class of the room (price, capacity).
//  RoomNumber  - label unique within the hotel.
//  IsAvailable - advisory flag, not consulted by the booking engine.
type Room struct {
	ID          uint64 // rooms.id
	HotelID     uint64 // rooms.hotel_id
	RoomTypeID  uint64 // rooms.room_type_id
	RoomNumber  string // rooms.room_number
	IsAvailable bool   // rooms.is_available
}
