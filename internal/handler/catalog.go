package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aakankshas938-hue/hotel-booking/internal/model"
	"github.com/aakankshas938-hue/hotel-booking/internal/repository"
	"github.com/aakankshas938-hue/hotel-booking/internal/service"
)

// CatalogHandler serves the public, read-only catalog: hotels, room
// types, rooms and the location search. It also exposes the computed
// availability probe, which consults the booking engine rather than
// the advisory is_available flag.
type CatalogHandler struct {
	Hotels    *repository.HotelRepo
	Rooms     *repository.RoomRepo
	RoomTypes *repository.RoomTypeRepo
	Bookings  *service.BookingService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(hotels *repository.HotelRepo, rooms *repository.RoomRepo, roomTypes *repository.RoomTypeRepo, bookings *service.BookingService) *CatalogHandler {
	if hotels == nil || rooms == nil || roomTypes == nil || bookings == nil {
		panic("nil dependency passed to NewCatalogHandler")
	}
	return &CatalogHandler{Hotels: hotels, Rooms: rooms, RoomTypes: roomTypes, Bookings: bookings}
}

type hotelResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func toHotelResp(h model.Hotel) hotelResp {
	return hotelResp{ID: h.ID, Name: h.Name, Location: h.Location, Description: h.Description, ImageURL: h.ImageURL}
}

type roomResp struct {
	ID            uint64  `json:"id"`
	HotelID       uint64  `json:"hotel_id"`
	HotelName     string  `json:"hotel_name"`
	RoomNumber    string  `json:"room_number"`
	TypeName      string  `json:"type_name"`
	PricePerNight float64 `json:"price_per_night"`
	Capacity      uint32  `json:"capacity"`
	IsAvailable   bool    `json:"is_available"` // advisory display flag, see availability endpoint
}

func toRoomResp(d repository.RoomDetail) roomResp {
	return roomResp{
		ID:            d.Room.ID,
		HotelID:       d.Room.HotelID,
		HotelName:     d.HotelName,
		RoomNumber:    d.Room.RoomNumber,
		TypeName:      d.TypeName,
		PricePerNight: d.PricePerNight,
		Capacity:      d.Capacity,
		IsAvailable:   d.Room.IsAvailable,
	}
}

// GetHotels handles GET /v1/hotels.
func (h *CatalogHandler) GetHotels(c echo.Context) error {
	hotels, err := h.Hotels.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]hotelResp, 0, len(hotels))
	for _, ht := range hotels {
		out = append(out, toHotelResp(ht))
	}
	return c.JSON(http.StatusOK, echo.Map{"hotels": out})
}

// GetHotel handles GET /v1/hotels/:id and returns the hotel with its
// rooms, mirroring the detail page of the web front end.
func (h *CatalogHandler) GetHotel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx := c.Request().Context()
	hotel, err := h.Hotels.GetByID(ctx, id)
	if err != nil {
		if handled, resp := domainError(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rooms, err := h.Rooms.ListByHotel(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	roomOut := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		roomOut = append(roomOut, toRoomResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"hotel": toHotelResp(*hotel), "rooms": roomOut})
}

// GetHotelRooms handles GET /v1/hotels/:id/rooms.
func (h *CatalogHandler) GetHotelRooms(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	rooms, err := h.Rooms.ListByHotel(c.Request().Context(), id)
	if err != nil {
		if handled, resp := domainError(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}

// GetRoomTypes handles GET /v1/room-types.
func (h *CatalogHandler) GetRoomTypes(c echo.Context) error {
	types, err := h.RoomTypes.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]echo.Map, 0, len(types))
	for _, t := range types {
		out = append(out, echo.Map{
			"id":              t.ID,
			"name":            t.Name,
			"description":     t.Description,
			"price_per_night": t.PricePerNight,
			"capacity":        t.Capacity,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"room_types": out})
}

// GetRoom handles GET /v1/rooms/:id.
func (h *CatalogHandler) GetRoom(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if handled, resp := domainError(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toRoomResp(*room))
}

// SearchHotels handles GET /v1/search/hotels. Location filters by
// case-insensitive containment; check_in and check_out are echoed back
// so clients can prefill the booking form, but malformed dates are
// rejected instead of silently dropped.
func (h *CatalogHandler) SearchHotels(c echo.Context) error {
	location := strings.TrimSpace(c.QueryParam("location"))
	checkIn := strings.TrimSpace(c.QueryParam("check_in"))
	checkOut := strings.TrimSpace(c.QueryParam("check_out"))

	for field, v := range map[string]string{"check_in": checkIn, "check_out": checkOut} {
		if v == "" {
			continue
		}
		if _, err := time.ParseInLocation(service.DateLayout, v, time.UTC); err != nil {
			_, resp := domainError(c, &service.ValidationError{Field: field, Reason: "must be a date in YYYY-MM-DD form"})
			return resp
		}
	}

	hotels, err := h.Hotels.SearchByLocation(c.Request().Context(), location)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]hotelResp, 0, len(hotels))
	for _, ht := range hotels {
		out = append(out, toHotelResp(ht))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"hotels":    out,
		"location":  location,
		"check_in":  checkIn,
		"check_out": checkOut,
	})
}

// GetRoomAvailability handles GET /v1/rooms/:id/availability. The
// answer is computed from active bookings; it is informational and
// not a hold on the room.
func (h *CatalogHandler) GetRoomAvailability(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	checkIn := strings.TrimSpace(c.QueryParam("check_in"))
	checkOut := strings.TrimSpace(c.QueryParam("check_out"))
	if checkIn == "" || checkOut == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in and check_out are required"})
	}
	available, err := h.Bookings.CheckAvailability(c.Request().Context(), id, checkIn, checkOut)
	if err != nil {
		if handled, resp := domainError(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room_id":   id,
		"check_in":  checkIn,
		"check_out": checkOut,
		"available": available,
	})
}
