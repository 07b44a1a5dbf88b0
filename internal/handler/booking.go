package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aakankshas938-hue/hotel-booking/internal/model"
	"github.com/aakankshas938-hue/hotel-booking/internal/service"
)

// BookingHandler exposes the reservation engine over HTTP. All routes
// require authentication; the acting user comes from the JWT and is
// passed to the engine explicitly.
type BookingHandler struct {
	Service *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(s *service.BookingService) *BookingHandler {
	if s == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Service: s}
}

type createBookingReq struct {
	CheckIn  string `json:"check_in" validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
	Guests   uint32 `json:"guests" validate:"required,min=1"`
}

type bookingResp struct {
	ID        uint64    `json:"id"`
	RoomID    uint64    `json:"room_id"`
	CheckIn   string    `json:"check_in"`
	CheckOut  string    `json:"check_out"`
	Guests    uint32    `json:"guests"`
	Nights    int       `json:"nights"`
	Cancelled bool      `json:"cancelled"`
	CreatedAt time.Time `json:"created_at"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:        b.ID,
		RoomID:    b.RoomID,
		CheckIn:   b.CheckIn.Format(service.DateLayout),
		CheckOut:  b.CheckOut.Format(service.DateLayout),
		Guests:    b.Guests,
		Nights:    b.Nights(),
		Cancelled: b.IsCancelled,
		CreatedAt: b.CreatedAt,
	}
}

// CreateBooking handles POST /v1/rooms/:id/bookings. Validation
// failures map to 400 with the offending field, date conflicts to 409.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in, check_out and guests are required"})
	}

	b, err := h.Service.CreateBooking(c.Request().Context(), userID, roomID, req.CheckIn, req.CheckOut, req.Guests)
	if err != nil {
		if handled, resp := domainError(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	return c.JSON(http.StatusCreated, toBookingResp(*b))
}

// ListBookings handles GET /v1/bookings: the caller's bookings,
// cancelled included, newest first.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings, err := h.Service.ListBookingsForUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// GetBooking handles GET /v1/bookings/:id. Foreign bookings are
// indistinguishable from missing ones.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Service.GetBooking(c.Request().Context(), userID, bookingID)
	if err != nil {
		if handled, resp := domainError(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	return c.JSON(http.StatusOK, toBookingResp(*b))
}

// CancelBooking handles POST /v1/bookings/:id/cancel. Cancelling an
// already cancelled booking succeeds and leaves it cancelled.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Service.CancelBooking(c.Request().Context(), userID, bookingID)
	if err != nil {
		if handled, resp := domainError(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel booking failed"})
	}
	return c.JSON(http.StatusOK, toBookingResp(*b))
}
