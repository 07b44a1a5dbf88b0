package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aakankshas938-hue/hotel-booking/internal/model"
	"github.com/aakankshas938-hue/hotel-booking/internal/queue"
	"github.com/aakankshas938-hue/hotel-booking/internal/repository"
)

// fakeBookingStore is an in-memory BookingStore honoring the same
// contract as repository.BookingRepo, including the atomic
// check-then-insert of CreateIfAvailable.
type fakeBookingStore struct {
	mu     sync.Mutex
	nextID uint64
	base   time.Time
	items  []model.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{base: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeBookingStore) CreateIfAvailable(_ context.Context, b *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.items {
		if ex.RoomID == b.RoomID && !ex.IsCancelled && ex.Overlaps(b.CheckIn, b.CheckOut) {
			return repository.ErrBookingConflict
		}
	}
	f.nextID++
	b.ID = f.nextID
	b.IsCancelled = false
	b.CreatedAt = f.base.Add(time.Duration(f.nextID) * time.Second)
	f.items = append(f.items, *b)
	return nil
}

func (f *fakeBookingStore) GetByIDForUser(_ context.Context, bookingID, userID uint64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.items {
		if b.ID == bookingID && b.UserID == userID {
			out := b
			return &out, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (f *fakeBookingStore) CancelForUser(_ context.Context, bookingID, userID uint64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.items {
		if b.ID == bookingID && b.UserID == userID {
			f.items[i].IsCancelled = true
			out := f.items[i]
			return &out, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (f *fakeBookingStore) ListByUser(_ context.Context, userID uint64) ([]model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Booking, 0)
	for _, b := range f.items {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeBookingStore) HasOverlap(_ context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.items {
		if b.RoomID == roomID && !b.IsCancelled && b.Overlaps(checkIn, checkOut) {
			return true, nil
		}
	}
	return false, nil
}

// activeOverlapFree asserts the core invariant: no two active bookings
// of the same room overlap.
func (f *fakeBookingStore) activeOverlapFree(t *testing.T) {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		for j := i + 1; j < len(f.items); j++ {
			a, b := f.items[i], f.items[j]
			if a.RoomID != b.RoomID || a.IsCancelled || b.IsCancelled {
				continue
			}
			assert.Falsef(t, a.Overlaps(b.CheckIn, b.CheckOut),
				"active bookings %d and %d overlap on room %d", a.ID, b.ID, a.RoomID)
		}
	}
}

type fakeRoomStore struct {
	rooms map[uint64]*repository.RoomDetail
}

func (f *fakeRoomStore) GetByID(_ context.Context, id uint64) (*repository.RoomDetail, error) {
	if d, ok := f.rooms[id]; ok {
		return d, nil
	}
	return nil, repository.ErrRoomNotFound
}

type fakeSink struct {
	mu     sync.Mutex
	events []queue.BookingEvent
}

func (f *fakeSink) PublishBookingEvent(_ context.Context, ev queue.BookingEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeSink) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev.Kind)
	}
	return out
}

// newTestService pins the engine clock to 2024-05-01 so the fixed
// dates below are always in the future.
func newTestService(t *testing.T) (*BookingService, *fakeBookingStore, *fakeSink) {
	t.Helper()
	store := newFakeBookingStore()
	rooms := &fakeRoomStore{rooms: map[uint64]*repository.RoomDetail{
		1: {Room: model.Room{ID: 1, HotelID: 1, RoomNumber: "101"}, HotelName: "Seaside", TypeName: "Standard", PricePerNight: 90, Capacity: 2},
		2: {Room: model.Room{ID: 2, HotelID: 1, RoomNumber: "102"}, HotelName: "Seaside", TypeName: "Suite", PricePerNight: 210, Capacity: 4},
	}}
	sink := &fakeSink{}
	s := NewBookingService(store, rooms, sink)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }
	return s, store, sink
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name     string
		roomID   uint64
		checkIn  string
		checkOut string
		guests   uint32
		field    string
	}{
		{"malformed check_in", 1, "June 1st", "2024-06-05", 2, "check_in"},
		{"malformed check_out", 1, "2024-06-01", "05-06-2024", 2, "check_out"},
		{"zero-night stay", 1, "2024-06-01", "2024-06-01", 2, "check_out"},
		{"checkout before checkin", 1, "2024-06-05", "2024-06-01", 2, "check_out"},
		{"past check_in", 1, "2024-04-30", "2024-06-01", 2, "check_in"},
		{"zero guests", 1, "2024-06-01", "2024-06-05", 0, "guests"},
		{"guests over capacity", 1, "2024-06-01", "2024-06-05", 3, "guests"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, sink := newTestService(t)
			_, err := s.CreateBooking(context.Background(), 7, tt.roomID, tt.checkIn, tt.checkOut, tt.guests)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Empty(t, sink.kinds(), "no event for rejected booking")
		})
	}
}

func TestCreateBookingTodayCheckInAllowed(t *testing.T) {
	s, _, _ := newTestService(t)
	b, err := s.CreateBooking(context.Background(), 7, 1, "2024-05-01", "2024-05-03", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Nights())
	assert.False(t, b.IsCancelled)
}

func TestCreateBookingUnknownRoom(t *testing.T) {
	s, _, _ := newTestService(t)
	_, err := s.CreateBooking(context.Background(), 7, 99, "2024-06-01", "2024-06-05", 1)
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestConflictDetectionBoundary(t *testing.T) {
	s, store, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.CreateBooking(ctx, 7, 1, "2024-06-01", "2024-06-05", 2)
	require.NoError(t, err)

	// adjacent range: checkout day equals the next check-in, no conflict
	_, err = s.CreateBooking(ctx, 8, 1, "2024-06-05", "2024-06-10", 2)
	require.NoError(t, err)

	// overlapping range is rejected and nothing is persisted
	_, err = s.CreateBooking(ctx, 9, 1, "2024-06-04", "2024-06-08", 2)
	assert.ErrorIs(t, err, repository.ErrBookingConflict)

	list, err := s.ListBookingsForUser(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, list)

	// the same dates on a different room are fine
	_, err = s.CreateBooking(ctx, 9, 2, "2024-06-04", "2024-06-08", 2)
	require.NoError(t, err)

	store.activeOverlapFree(t)
}

func TestCancelledBookingFreesTheRoom(t *testing.T) {
	s, store, _ := newTestService(t)
	ctx := context.Background()

	a, err := s.CreateBooking(ctx, 7, 1, "2024-07-01", "2024-07-05", 2)
	require.NoError(t, err)

	_, err = s.CancelBooking(ctx, 7, a.ID)
	require.NoError(t, err)

	b, err := s.CreateBooking(ctx, 8, 1, "2024-07-01", "2024-07-05", 2)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	store.activeOverlapFree(t)
}

func TestCancelOwnershipIsolation(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	a, err := s.CreateBooking(ctx, 7, 1, "2024-06-01", "2024-06-05", 2)
	require.NoError(t, err)

	// another user cannot cancel it, and cannot tell it exists
	_, err = s.CancelBooking(ctx, 8, a.ID)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)

	got, err := s.GetBooking(ctx, 7, a.ID)
	require.NoError(t, err)
	assert.False(t, got.IsCancelled, "foreign cancel must not change state")
}

func TestCancelIdempotent(t *testing.T) {
	s, _, sink := newTestService(t)
	ctx := context.Background()

	a, err := s.CreateBooking(ctx, 7, 1, "2024-06-01", "2024-06-05", 2)
	require.NoError(t, err)

	first, err := s.CancelBooking(ctx, 7, a.ID)
	require.NoError(t, err)
	assert.True(t, first.IsCancelled)

	second, err := s.CancelBooking(ctx, 7, a.ID)
	require.NoError(t, err)
	assert.True(t, second.IsCancelled)

	// one created and exactly one cancelled event despite the double cancel
	assert.Equal(t, []string{queue.EventBookingCreated, queue.EventBookingCancelled}, sink.kinds())
}

func TestListBookingsNewestFirst(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := s.CreateBooking(ctx, 7, 1, "2024-06-01", "2024-06-03", 1)
	require.NoError(t, err)
	second, err := s.CreateBooking(ctx, 7, 1, "2024-06-03", "2024-06-06", 1)
	require.NoError(t, err)
	third, err := s.CreateBooking(ctx, 7, 2, "2024-06-01", "2024-06-02", 1)
	require.NoError(t, err)

	// cancelled bookings stay in the listing
	_, err = s.CancelBooking(ctx, 7, second.ID)
	require.NoError(t, err)

	list, err := s.ListBookingsForUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []uint64{third.ID, second.ID, first.ID}, []uint64{list[0].ID, list[1].ID, list[2].ID})
	assert.True(t, list[1].IsCancelled)
}

func TestCheckAvailability(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	free, err := s.CheckAvailability(ctx, 1, "2024-06-01", "2024-06-05")
	require.NoError(t, err)
	assert.True(t, free)

	booked, err := s.CreateBooking(ctx, 7, 1, "2024-06-01", "2024-06-05", 2)
	require.NoError(t, err)

	free, err = s.CheckAvailability(ctx, 1, "2024-06-04", "2024-06-08")
	require.NoError(t, err)
	assert.False(t, free)

	// adjacent range stays available
	free, err = s.CheckAvailability(ctx, 1, "2024-06-05", "2024-06-08")
	require.NoError(t, err)
	assert.True(t, free)

	_, err = s.CancelBooking(ctx, 7, booked.ID)
	require.NoError(t, err)
	free, err = s.CheckAvailability(ctx, 1, "2024-06-04", "2024-06-08")
	require.NoError(t, err)
	assert.True(t, free)

	_, err = s.CheckAvailability(ctx, 1, "2024-06-05", "2024-06-05")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "check_out", ve.Field)

	_, err = s.CheckAvailability(ctx, 42, "2024-06-01", "2024-06-05")
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("check_in", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"", "2024-6-1", "01-06-2024", "2024-06-32", "tomorrow"} {
		_, err := ParseDate("check_in", bad)
		var ve *ValidationError
		require.ErrorAsf(t, err, &ve, "input %q", bad)
		assert.Equal(t, "check_in", ve.Field)
	}
}
