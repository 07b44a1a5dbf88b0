package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aakankshas938-hue/hotel-booking/internal/model"
	"github.com/aakankshas938-hue/hotel-booking/internal/repository"
	"github.com/aakankshas938-hue/hotel-booking/internal/service"
)

// memBookingStore is a minimal in-memory stand-in for the bookings
// repository, keeping CreateIfAvailable atomic under a mutex.
type memBookingStore struct {
	mu     sync.Mutex
	nextID uint64
	items  []model.Booking
}

func (m *memBookingStore) CreateIfAvailable(_ context.Context, b *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.items {
		if ex.RoomID == b.RoomID && !ex.IsCancelled && ex.Overlaps(b.CheckIn, b.CheckOut) {
			return repository.ErrBookingConflict
		}
	}
	m.nextID++
	b.ID = m.nextID
	b.CreatedAt = time.Now().UTC().Add(time.Duration(m.nextID) * time.Millisecond)
	m.items = append(m.items, *b)
	return nil
}

func (m *memBookingStore) GetByIDForUser(_ context.Context, bookingID, userID uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.items {
		if b.ID == bookingID && b.UserID == userID {
			out := b
			return &out, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (m *memBookingStore) CancelForUser(_ context.Context, bookingID, userID uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.items {
		if b.ID == bookingID && b.UserID == userID {
			m.items[i].IsCancelled = true
			out := m.items[i]
			return &out, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (m *memBookingStore) ListByUser(_ context.Context, userID uint64) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Booking, 0)
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].UserID == userID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memBookingStore) HasOverlap(_ context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.items {
		if b.RoomID == roomID && !b.IsCancelled && b.Overlaps(checkIn, checkOut) {
			return true, nil
		}
	}
	return false, nil
}

type memRoomStore struct {
	rooms map[uint64]*repository.RoomDetail
}

func (m *memRoomStore) GetByID(_ context.Context, id uint64) (*repository.RoomDetail, error) {
	if d, ok := m.rooms[id]; ok {
		return d, nil
	}
	return nil, repository.ErrRoomNotFound
}

func newTestBookingHandler() (*echo.Echo, *BookingHandler) {
	e := echo.New()
	e.Validator = NewValidator()
	rooms := &memRoomStore{rooms: map[uint64]*repository.RoomDetail{
		1: {Room: model.Room{ID: 1, HotelID: 1, RoomNumber: "101"}, HotelName: "Seaside", TypeName: "Standard", PricePerNight: 90, Capacity: 2},
	}}
	svc := service.NewBookingService(&memBookingStore{}, rooms, nil)
	return e, NewBookingHandler(svc)
}

// futureRange returns a check-in/check-out pair offset days into next
// year so tests never trip the past-date validation.
func futureRange(startOffset, nights int) (string, string) {
	start := time.Now().UTC().AddDate(1, 0, startOffset)
	return start.Format(service.DateLayout), start.AddDate(0, 0, nights).Format(service.DateLayout)
}

func newJSONContext(e *echo.Echo, method, target, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user_id", float64(userID))
	}
	return c, rec
}

func createBody(checkIn, checkOut string, guests int) string {
	return fmt.Sprintf(`{"check_in":%q,"check_out":%q,"guests":%d}`, checkIn, checkOut, guests)
}

func TestCreateBookingEndpoint(t *testing.T) {
	e, h := newTestBookingHandler()
	in, out := futureRange(0, 4)

	c, rec := newJSONContext(e, http.MethodPost, "/v1/rooms/1/bookings", createBody(in, out, 2), 7)
	c.SetPath("/v1/rooms/:id/bookings")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.CreateBooking(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID        uint64 `json:"id"`
		RoomID    uint64 `json:"room_id"`
		CheckIn   string `json:"check_in"`
		CheckOut  string `json:"check_out"`
		Nights    int    `json:"nights"`
		Cancelled bool   `json:"cancelled"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.ID)
	assert.Equal(t, uint64(1), resp.RoomID)
	assert.Equal(t, in, resp.CheckIn)
	assert.Equal(t, out, resp.CheckOut)
	assert.Equal(t, 4, resp.Nights)
	assert.False(t, resp.Cancelled)
}

func TestCreateBookingEndpointConflict(t *testing.T) {
	e, h := newTestBookingHandler()
	in, out := futureRange(0, 4)

	c, rec := newJSONContext(e, http.MethodPost, "/v1/rooms/1/bookings", createBody(in, out, 2), 7)
	c.SetPath("/v1/rooms/:id/bookings")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.CreateBooking(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// overlapping request from another user collides
	in2, out2 := futureRange(2, 4)
	c, rec = newJSONContext(e, http.MethodPost, "/v1/rooms/1/bookings", createBody(in2, out2, 2), 8)
	c.SetPath("/v1/rooms/:id/bookings")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "unavailable")
}

func TestCreateBookingEndpointValidation(t *testing.T) {
	e, h := newTestBookingHandler()
	in, out := futureRange(0, 4)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"reversed range", createBody(out, in, 2), "check_out"},
		{"malformed date", createBody("June 1st", out, 2), "check_in"},
		{"too many guests", createBody(in, out, 5), "guests"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(e, http.MethodPost, "/v1/rooms/1/bookings", tt.body, 7)
			c.SetPath("/v1/rooms/:id/bookings")
			c.SetParamNames("id")
			c.SetParamValues("1")
			require.NoError(t, h.CreateBooking(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.field, resp["field"])
		})
	}
}

func TestCreateBookingEndpointMissingFields(t *testing.T) {
	e, h := newTestBookingHandler()

	c, rec := newJSONContext(e, http.MethodPost, "/v1/rooms/1/bookings", `{"check_in":"2030-06-01"}`, 7)
	c.SetPath("/v1/rooms/:id/bookings")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingEndpointUnknownRoom(t *testing.T) {
	e, h := newTestBookingHandler()
	in, out := futureRange(0, 2)

	c, rec := newJSONContext(e, http.MethodPost, "/v1/rooms/99/bookings", createBody(in, out, 1), 7)
	c.SetPath("/v1/rooms/:id/bookings")
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBookingEndpointUnauthenticated(t *testing.T) {
	e, h := newTestBookingHandler()
	in, out := futureRange(0, 2)

	c, rec := newJSONContext(e, http.MethodPost, "/v1/rooms/1/bookings", createBody(in, out, 1), 0)
	c.SetPath("/v1/rooms/:id/bookings")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCancelBookingEndpoint(t *testing.T) {
	e, h := newTestBookingHandler()
	in, out := futureRange(0, 3)

	c, rec := newJSONContext(e, http.MethodPost, "/v1/rooms/1/bookings", createBody(in, out, 1), 7)
	c.SetPath("/v1/rooms/:id/bookings")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.CreateBooking(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// another user gets 404, not 403
	c, rec = newJSONContext(e, http.MethodPost, "/v1/bookings/1/cancel", "", 8)
	c.SetPath("/v1/bookings/:id/cancel")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(created.ID))
	require.NoError(t, h.CancelBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// owner cancels, twice, both 200
	for i := 0; i < 2; i++ {
		c, rec = newJSONContext(e, http.MethodPost, "/v1/bookings/1/cancel", "", 7)
		c.SetPath("/v1/bookings/:id/cancel")
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(created.ID))
		require.NoError(t, h.CancelBooking(c))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"cancelled":true`)
	}
}

func TestListBookingsEndpoint(t *testing.T) {
	e, h := newTestBookingHandler()

	for i := 0; i < 3; i++ {
		in, out := futureRange(i*5, 3)
		c, rec := newJSONContext(e, http.MethodPost, "/v1/rooms/1/bookings", createBody(in, out, 1), 7)
		c.SetPath("/v1/rooms/:id/bookings")
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, h.CreateBooking(c))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	c, rec := newJSONContext(e, http.MethodGet, "/v1/bookings", "", 7)
	require.NoError(t, h.ListBookings(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Bookings []struct {
			ID uint64 `json:"id"`
		} `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Bookings, 3)
	assert.Equal(t, uint64(3), resp.Bookings[0].ID)
	assert.Equal(t, uint64(1), resp.Bookings[2].ID)

	// other users see an empty list
	c, rec = newJSONContext(e, http.MethodGet, "/v1/bookings", "", 8)
	require.NoError(t, h.ListBookings(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bookings":[]`)
}

func TestGetBookingEndpointBadID(t *testing.T) {
	e, h := newTestBookingHandler()

	for _, raw := range []string{"abc", "0", "-1"} {
		c, rec := newJSONContext(e, http.MethodGet, "/v1/bookings/"+raw, "", 7)
		c.SetPath("/v1/bookings/:id")
		c.SetParamNames("id")
		c.SetParamValues(raw)
		require.NoError(t, h.GetBooking(c))
		assert.Equalf(t, http.StatusBadRequest, rec.Code, "id %q", raw)
	}
}
