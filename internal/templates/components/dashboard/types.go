package dashboard

import (
	"fmt"

	"github.com/posadahq/backoffice/internal/api/apiutil"
	"github.com/posadahq/backoffice/internal/hotel"
	"github.com/posadahq/backoffice/internal/stats"
)

// DashboardData carries everything the dashboard page renders: the
// statistics snapshot plus the derived views built from the same fetch.
type DashboardData struct {
	Snapshot stats.Snapshot
	Recent   []RecentRow
	Rooms    []RoomStatusRow
	Months   []MonthPoint
}

type RecentRow struct {
	ID         int64
	GuestName  string
	RoomName   string
	CheckIn    string
	CheckOut   string
	Registered string
	Amount     string
}

type RoomStatusRow struct {
	ID        int64
	Name      string
	Floor     string
	Status    string
	GuestName string
}

type MonthPoint struct {
	Label        string
	Reservations int
	Revenue      string
}

func NewRecentRows(reservations []hotel.Reservation) []RecentRow {
	rows := make([]RecentRow, 0, len(reservations))
	for _, reservation := range reservations {
		row := RecentRow{
			ID:         reservation.ID,
			GuestName:  "N/A",
			RoomName:   "N/A",
			CheckIn:    apiutil.FormatDate(reservation.CheckIn),
			CheckOut:   apiutil.FormatDate(reservation.CheckOut),
			Registered: apiutil.FormatDate(reservation.RegisteredAt),
			Amount:     apiutil.FormatMoney(reservation.TotalAmount),
		}
		if guest := reservation.Guest.Record(); guest != nil {
			row.GuestName = guest.FullName()
		}
		if room := reservation.Room.Record(); room != nil {
			row.RoomName = room.Name
		}
		rows = append(rows, row)
	}
	return rows
}

func NewRoomStatusRows(statuses []stats.RoomStatus) []RoomStatusRow {
	rows := make([]RoomStatusRow, 0, len(statuses))
	for _, status := range statuses {
		row := RoomStatusRow{
			ID:     status.Room.ID,
			Name:   status.Room.Name,
			Floor:  status.Room.Floor,
			Status: "Available",
		}
		if status.Occupied {
			row.Status = "Occupied"
			if status.Reservation != nil {
				if guest := status.Reservation.Guest.Record(); guest != nil {
					row.GuestName = guest.FullName()
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func NewMonthPoints(buckets []stats.MonthBucket) []MonthPoint {
	points := make([]MonthPoint, 0, len(buckets))
	for _, bucket := range buckets {
		points = append(points, MonthPoint{
			Label:        fmt.Sprintf("%s %d", bucket.Month.String()[:3], bucket.Year),
			Reservations: bucket.Reservations,
			Revenue:      apiutil.FormatMoney(bucket.Revenue),
		})
	}
	return points
}

