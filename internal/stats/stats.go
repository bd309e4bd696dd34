// Package stats derives the dashboard statistics snapshot from the
// four backend collections. Everything here is pure computation over
// already-fetched records; no state survives between calls.
package stats

import (
	"sort"
	"time"

	"github.com/posadahq/backoffice/internal/hotel"
)

// Snapshot is the aggregate view of one computation. Counts are always
// non-negative. Note that reservation active+pending need not equal
// total: a reservation whose checkout has passed is in neither bucket.
type Snapshot struct {
	Reservations ReservationStats `json:"reservations"`
	Rooms        RoomStats        `json:"rooms"`
	Guests       GuestStats       `json:"guests"`
	Users        UserStats        `json:"users"`
	Revenue      RevenueStats     `json:"revenue"`
}

type ReservationStats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Pending int `json:"pending"`
}

type RoomStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

type GuestStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	New    int `json:"new"`
}

type UserStats struct {
	Total int `json:"total"`
	Admin int `json:"admin"`
	Staff int `json:"staff"`
}

type RevenueStats struct {
	Total        float64 `json:"total"`
	CurrentMonth float64 `json:"currentMonth"`
}

// Today normalizes now to a date-only value. Every predicate in a
// single computation compares against the same normalized day.
func Today(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// IsActive reports whether the stay interval contains today, inclusive
// on both ends. Reservations missing either date are never active.
func IsActive(reservation hotel.Reservation, today time.Time) bool {
	if reservation.CheckIn.IsZero() || reservation.CheckOut.IsZero() {
		return false
	}
	checkIn := reservation.CheckIn.DayStart()
	checkOut := reservation.CheckOut.DayStart()
	return !checkIn.After(today) && !checkOut.Before(today)
}

// IsPending reports whether check-in is strictly in the future.
func IsPending(reservation hotel.Reservation, today time.Time) bool {
	if reservation.CheckIn.IsZero() {
		return false
	}
	return reservation.CheckIn.DayStart().After(today)
}

// Compute builds the snapshot for one set of freshly-fetched
// collections. Malformed records (missing dates, absent references)
// are skipped from the buckets they cannot satisfy; missing amounts
// count as zero. The function is a pure function of its inputs.
func Compute(today time.Time, reservations []hotel.Reservation, rooms []hotel.Room, guests []hotel.Guest, users []hotel.User) Snapshot {
	var snapshot Snapshot

	active := make([]hotel.Reservation, 0, len(reservations))
	for _, reservation := range reservations {
		if IsActive(reservation, today) {
			active = append(active, reservation)
		} else if IsPending(reservation, today) {
			snapshot.Reservations.Pending++
		}
	}
	snapshot.Reservations.Total = len(reservations)
	snapshot.Reservations.Active = len(active)

	// Occupied rooms are those referenced by an active reservation;
	// available is the set complement so the two always partition the
	// room set.
	occupied := make(map[int64]bool)
	for _, reservation := range active {
		if roomID, ok := reservation.Room.Key(); ok {
			occupied[roomID] = true
		}
	}
	snapshot.Rooms.Total = len(rooms)
	for _, room := range rooms {
		if occupied[room.ID] {
			snapshot.Rooms.Occupied++
		}
	}
	snapshot.Rooms.Available = snapshot.Rooms.Total - snapshot.Rooms.Occupied

	activeGuests := make(map[int64]bool)
	for _, reservation := range active {
		if guestID, ok := reservation.Guest.Key(); ok {
			activeGuests[guestID] = true
		}
	}
	snapshot.Guests.Total = len(guests)
	snapshot.Guests.Active = len(activeGuests)
	snapshot.Guests.New = countNewGuests(today, guests, reservations)

	snapshot.Users.Total = len(users)
	for _, user := range users {
		if user.Role == hotel.RoleAdmin {
			snapshot.Users.Admin++
		} else {
			snapshot.Users.Staff++
		}
	}

	currentYear, currentMonth, _ := today.Date()
	for _, reservation := range reservations {
		snapshot.Revenue.Total += reservation.TotalAmount
		if reservation.RegisteredAt.IsZero() {
			continue
		}
		registeredYear, registeredMonth, _ := reservation.RegisteredAt.Date()
		if registeredYear == currentYear && registeredMonth == currentMonth {
			snapshot.Revenue.CurrentMonth += reservation.TotalAmount
		}
	}

	return snapshot
}

// countNewGuests counts guests whose earliest reservation was
// registered within the trailing calendar month. Guests have no
// creation timestamp of their own, so the first reservation's
// registration date stands in for it. The window boundary is
// today.AddDate(0, -1, 0); Go normalizes month-end overflow.
func countNewGuests(today time.Time, guests []hotel.Guest, reservations []hotel.Reservation) int {
	earliest := make(map[int64]time.Time, len(guests))
	for _, reservation := range reservations {
		guestID, ok := reservation.Guest.Key()
		if !ok || reservation.RegisteredAt.IsZero() {
			continue
		}
		registered := reservation.RegisteredAt.DayStart()
		if current, seen := earliest[guestID]; !seen || registered.Before(current) {
			earliest[guestID] = registered
		}
	}

	lastMonth := today.AddDate(0, -1, 0)
	count := 0
	for _, guest := range guests {
		registered, ok := earliest[guest.ID]
		if ok && !registered.Before(lastMonth) {
			count++
		}
	}
	return count
}

// RoomStatus annotates a room with its occupancy for the status board.
// When several active reservations reference the same room (a data
// inconsistency upstream), the first match in input order is kept.
type RoomStatus struct {
	Room        hotel.Room
	Occupied    bool
	Reservation *hotel.Reservation
}

// RoomStatuses builds the room status board in the input room order.
func RoomStatuses(today time.Time, rooms []hotel.Room, reservations []hotel.Reservation) []RoomStatus {
	statuses := make([]RoomStatus, 0, len(rooms))
	for _, room := range rooms {
		status := RoomStatus{Room: room}
		for i := range reservations {
			roomID, ok := reservations[i].Room.Key()
			if !ok || roomID != room.ID {
				continue
			}
			if IsActive(reservations[i], today) {
				status.Occupied = true
				status.Reservation = &reservations[i]
				break
			}
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// MonthBucket is one month of the trailing occupancy series.
type MonthBucket struct {
	Month        time.Month
	Year         int
	Reservations int
	Revenue      float64
}

// MonthlySeries buckets reservations by check-in month for the
// trailing six calendar months including the current one, ordered
// oldest to newest.
func MonthlySeries(today time.Time, reservations []hotel.Reservation) []MonthBucket {
	buckets := make([]MonthBucket, 0, 6)
	for offset := 5; offset >= 0; offset-- {
		monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -offset, 0)
		bucket := MonthBucket{Month: monthStart.Month(), Year: monthStart.Year()}
		for _, reservation := range reservations {
			if reservation.CheckIn.IsZero() {
				continue
			}
			checkInYear, checkInMonth, _ := reservation.CheckIn.Date()
			if checkInYear == bucket.Year && checkInMonth == bucket.Month {
				bucket.Reservations++
				bucket.Revenue += reservation.TotalAmount
			}
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

// Recent returns the most recently registered reservations, newest
// first. Reservations without a registration date are excluded.
func Recent(reservations []hotel.Reservation, limit int) []hotel.Reservation {
	registered := make([]hotel.Reservation, 0, len(reservations))
	for _, reservation := range reservations {
		if !reservation.RegisteredAt.IsZero() {
			registered = append(registered, reservation)
		}
	}
	sort.SliceStable(registered, func(i, j int) bool {
		return registered[i].RegisteredAt.After(registered[j].RegisteredAt.Time)
	})
	if limit > 0 && len(registered) > limit {
		registered = registered[:limit]
	}
	return registered
}
