package stats

import (
	"testing"
	"time"

	"github.com/posadahq/backoffice/internal/hotel"
)

func reservation(id int64, checkIn, checkOut, registered hotel.Date, roomID, guestID int64, amount float64) hotel.Reservation {
	return hotel.Reservation{
		ID:           id,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		RegisteredAt: registered,
		TotalAmount:  amount,
		Room:         hotel.RoomByID(roomID),
		Guest:        hotel.GuestByID(guestID),
		User:         hotel.UserByID(1),
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2025, time.January, 12, 17, 45, 3, 0, time.UTC)
	today := Today(now)
	if !today.Equal(time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected date-only today, got %v", today)
	}
}

func TestIsActiveBoundaries(t *testing.T) {
	today := time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		checkIn  hotel.Date
		checkOut hotel.Date
		active   bool
		pending  bool
	}{
		{"spanning today", hotel.NewDate(2025, time.January, 10), hotel.NewDate(2025, time.January, 14), true, false},
		{"check-in today", hotel.NewDate(2025, time.January, 12), hotel.NewDate(2025, time.January, 14), true, false},
		{"check-out today", hotel.NewDate(2025, time.January, 10), hotel.NewDate(2025, time.January, 12), true, false},
		{"single day stay", hotel.NewDate(2025, time.January, 12), hotel.NewDate(2025, time.January, 12), true, false},
		{"past stay", hotel.NewDate(2025, time.January, 2), hotel.NewDate(2025, time.January, 5), false, false},
		{"future stay", hotel.NewDate(2025, time.January, 13), hotel.NewDate(2025, time.January, 15), false, true},
		{"missing check-out", hotel.NewDate(2025, time.January, 10), hotel.Date{}, false, false},
		{"missing check-in", hotel.Date{}, hotel.NewDate(2025, time.January, 14), false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := reservation(1, tc.checkIn, tc.checkOut, hotel.Date{}, 1, 1, 0)
			if got := IsActive(r, today); got != tc.active {
				t.Errorf("IsActive = %v, want %v", got, tc.active)
			}
			if got := IsPending(r, today); got != tc.pending {
				t.Errorf("IsPending = %v, want %v", got, tc.pending)
			}
			if IsActive(r, today) && IsPending(r, today) {
				t.Error("reservation is both active and pending")
			}
		})
	}
}

func TestComputeEmptyCollections(t *testing.T) {
	today := time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)
	snapshot := Compute(today, nil, nil, nil, nil)
	if snapshot != (Snapshot{}) {
		t.Fatalf("expected zero snapshot, got %+v", snapshot)
	}
}

func TestComputeOccupancy(t *testing.T) {
	today := time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)

	reservations := []hotel.Reservation{
		// Active: rooms 1 and 2 occupied.
		reservation(1, hotel.NewDate(2025, time.January, 10), hotel.NewDate(2025, time.January, 14), hotel.NewDate(2025, time.January, 10), 1, 100, 500),
		reservation(2, hotel.NewDate(2025, time.January, 12), hotel.NewDate(2025, time.January, 13), hotel.NewDate(2025, time.January, 5), 2, 101, 200),
		// Pending.
		reservation(3, hotel.NewDate(2025, time.February, 1), hotel.NewDate(2025, time.February, 3), hotel.NewDate(2025, time.January, 11), 3, 102, 300),
		// Past: neither active nor pending.
		reservation(4, hotel.NewDate(2024, time.December, 20), hotel.NewDate(2024, time.December, 25), hotel.NewDate(2024, time.December, 19), 1, 100, 400),
	}
	rooms := []hotel.Room{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	guests := []hotel.Guest{{ID: 100}, {ID: 101}, {ID: 102}}
	users := []hotel.User{
		{ID: 1, Role: hotel.RoleAdmin},
		{ID: 2, Role: "RECEPCIONISTA"},
		{ID: 3, Role: "admin"}, // lower case does not count as admin
	}

	snapshot := Compute(today, reservations, rooms, guests, users)

	if snapshot.Reservations.Total != 4 || snapshot.Reservations.Active != 2 || snapshot.Reservations.Pending != 1 {
		t.Errorf("reservations = %+v", snapshot.Reservations)
	}
	if snapshot.Rooms.Occupied != 2 || snapshot.Rooms.Available != 2 {
		t.Errorf("rooms = %+v", snapshot.Rooms)
	}
	if snapshot.Rooms.Available+snapshot.Rooms.Occupied != snapshot.Rooms.Total {
		t.Error("available and occupied must partition the room set")
	}
	if snapshot.Guests.Active != 2 {
		t.Errorf("active guests = %d, want 2", snapshot.Guests.Active)
	}
	if snapshot.Users.Admin != 1 || snapshot.Users.Staff != 2 {
		t.Errorf("users = %+v", snapshot.Users)
	}
	if snapshot.Revenue.Total != 1400 {
		t.Errorf("total revenue = %v, want 1400", snapshot.Revenue.Total)
	}
	// Only reservations registered in January 2025 count this month.
	if snapshot.Revenue.CurrentMonth != 1000 {
		t.Errorf("current month revenue = %v, want 1000", snapshot.Revenue.CurrentMonth)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	today := time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)
	reservations := []hotel.Reservation{
		reservation(1, hotel.NewDate(2025, time.January, 11), hotel.NewDate(2025, time.January, 13), hotel.NewDate(2025, time.January, 11), 1, 100, 250),
	}
	rooms := []hotel.Room{{ID: 1}, {ID: 2}}
	guests := []hotel.Guest{{ID: 100}}

	first := Compute(today, reservations, rooms, guests, nil)
	second := Compute(today, reservations, rooms, guests, nil)
	if first != second {
		t.Fatalf("repeated computation differed: %+v vs %+v", first, second)
	}
}

func TestComputeGuestDeduplication(t *testing.T) {
	today := time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)
	reservations := []hotel.Reservation{
		reservation(1, hotel.NewDate(2025, time.January, 10), hotel.NewDate(2025, time.January, 14), hotel.Date{}, 1, 100, 0),
		reservation(2, hotel.NewDate(2025, time.January, 11), hotel.NewDate(2025, time.January, 13), hotel.Date{}, 2, 100, 0),
	}
	guests := []hotel.Guest{{ID: 100}}

	snapshot := Compute(today, reservations, []hotel.Room{{ID: 1}, {ID: 2}}, guests, nil)
	if snapshot.Guests.Active != 1 {
		t.Fatalf("active guests = %d, want 1 after deduplication", snapshot.Guests.Active)
	}
}

func TestCountNewGuestsWindow(t *testing.T) {
	today := time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)
	guests := []hotel.Guest{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}

	reservations := []hotel.Reservation{
		// Guest 1: first registered exactly on the window boundary.
		reservation(1, hotel.NewDate(2025, time.January, 20), hotel.NewDate(2025, time.January, 22), hotel.NewDate(2024, time.December, 12), 1, 1, 0),
		// Guest 2: first registered just inside the window.
		reservation(2, hotel.NewDate(2025, time.January, 20), hotel.NewDate(2025, time.January, 22), hotel.NewDate(2025, time.January, 2), 1, 2, 0),
		// Guest 3: registered long ago, plus a recent repeat booking.
		// The earliest registration governs, so not new.
		reservation(3, hotel.NewDate(2024, time.June, 1), hotel.NewDate(2024, time.June, 3), hotel.NewDate(2024, time.May, 30), 1, 3, 0),
		reservation(4, hotel.NewDate(2025, time.January, 20), hotel.NewDate(2025, time.January, 22), hotel.NewDate(2025, time.January, 10), 1, 3, 0),
		// Guest 4: no reservation with a registration date.
		reservation(5, hotel.NewDate(2025, time.January, 20), hotel.NewDate(2025, time.January, 22), hotel.Date{}, 1, 4, 0),
	}

	if got := countNewGuests(today, guests, reservations); got != 2 {
		t.Fatalf("new guests = %d, want 2", got)
	}
}

func TestRoomStatuses(t *testing.T) {
	today := time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)
	rooms := []hotel.Room{{ID: 1, Name: "Jungle"}, {ID: 2, Name: "Ocean"}}
	reservations := []hotel.Reservation{
		reservation(10, hotel.NewDate(2025, time.January, 11), hotel.NewDate(2025, time.January, 13), hotel.Date{}, 1, 100, 0),
		// Second active booking on room 1; first match wins.
		reservation(11, hotel.NewDate(2025, time.January, 12), hotel.NewDate(2025, time.January, 14), hotel.Date{}, 1, 101, 0),
	}

	statuses := RoomStatuses(today, rooms, reservations)
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if !statuses[0].Occupied || statuses[0].Reservation == nil || statuses[0].Reservation.ID != 10 {
		t.Errorf("room 1 status = %+v", statuses[0])
	}
	if statuses[1].Occupied || statuses[1].Reservation != nil {
		t.Errorf("room 2 should be free, got %+v", statuses[1])
	}
}

func TestMonthlySeries(t *testing.T) {
	today := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	reservations := []hotel.Reservation{
		reservation(1, hotel.NewDate(2025, time.March, 2), hotel.NewDate(2025, time.March, 4), hotel.Date{}, 1, 1, 100),
		reservation(2, hotel.NewDate(2025, time.March, 20), hotel.NewDate(2025, time.March, 22), hotel.Date{}, 1, 1, 200),
		reservation(3, hotel.NewDate(2024, time.October, 5), hotel.NewDate(2024, time.October, 7), hotel.Date{}, 1, 1, 300),
		// Outside the trailing six months.
		reservation(4, hotel.NewDate(2024, time.September, 5), hotel.NewDate(2024, time.September, 7), hotel.Date{}, 1, 1, 400),
	}

	series := MonthlySeries(today, reservations)
	if len(series) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(series))
	}
	if series[0].Month != time.October || series[0].Year != 2024 {
		t.Fatalf("oldest bucket = %v %d, want October 2024", series[0].Month, series[0].Year)
	}
	if series[0].Reservations != 1 || series[0].Revenue != 300 {
		t.Errorf("october bucket = %+v", series[0])
	}
	newest := series[5]
	if newest.Month != time.March || newest.Reservations != 2 || newest.Revenue != 300 {
		t.Errorf("march bucket = %+v", newest)
	}
}

func TestRecent(t *testing.T) {
	reservations := []hotel.Reservation{
		reservation(1, hotel.NewDate(2025, time.January, 20), hotel.NewDate(2025, time.January, 22), hotel.NewDate(2025, time.January, 3), 1, 1, 0),
		reservation(2, hotel.NewDate(2025, time.January, 20), hotel.NewDate(2025, time.January, 22), hotel.NewDate(2025, time.January, 9), 1, 1, 0),
		reservation(3, hotel.NewDate(2025, time.January, 20), hotel.NewDate(2025, time.January, 22), hotel.Date{}, 1, 1, 0),
		reservation(4, hotel.NewDate(2025, time.January, 20), hotel.NewDate(2025, time.January, 22), hotel.NewDate(2025, time.January, 7), 1, 1, 0),
	}

	recent := Recent(reservations, 2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(recent))
	}
	if recent[0].ID != 2 || recent[1].ID != 4 {
		t.Fatalf("order = [%d %d], want [2 4]", recent[0].ID, recent[1].ID)
	}
}
