package reservations

import (
	"fmt"
	"strings"

	"github.com/posadahq/backoffice/internal/api/apiutil"
	"github.com/posadahq/backoffice/internal/hotel"
)

type Row struct {
	ID         int64
	GuestName  string
	RoomName   string
	CheckIn    string
	CheckOut   string
	Registered string
	People     int
	Amount     string
}

type Option struct {
	ID    int64
	Label string
}

// FormData backs both the create and the edit form.
type FormData struct {
	IsEdit      bool
	Reservation hotel.Reservation
	Rooms       []Option
	Guests      []Option
	Users       []Option
	Error       string
}

func NewRows(rows []hotel.Reservation) []Row {
	out := make([]Row, 0, len(rows))
	for _, reservation := range rows {
		row := Row{
			ID:         reservation.ID,
			GuestName:  "N/A",
			RoomName:   "N/A",
			CheckIn:    apiutil.FormatDate(reservation.CheckIn),
			CheckOut:   apiutil.FormatDate(reservation.CheckOut),
			Registered: apiutil.FormatDate(reservation.RegisteredAt),
			People:     reservation.People,
			Amount:     apiutil.FormatMoney(reservation.TotalAmount),
		}
		if guest := reservation.Guest.Record(); guest != nil {
			row.GuestName = guest.FullName()
		}
		if room := reservation.Room.Record(); room != nil {
			row.RoomName = room.Name
		}
		out = append(out, row)
	}
	return out
}

func NewRoomOptions(rooms []hotel.Room) []Option {
	options := make([]Option, 0, len(rooms))
	for _, room := range rooms {
		label := strings.TrimSpace(room.Name)
		if label == "" {
			label = fmt.Sprintf("Room %d", room.ID)
		}
		if room.Type != nil && room.Type.Name != "" {
			label = fmt.Sprintf("%s (%s)", label, room.Type.Name)
		}
		options = append(options, Option{ID: room.ID, Label: label})
	}
	return options
}

func NewGuestOptions(guests []hotel.Guest) []Option {
	options := make([]Option, 0, len(guests))
	for _, guest := range guests {
		label := guest.FullName()
		if guest.DNI != "" {
			label = fmt.Sprintf("%s - %s", label, guest.DNI)
		}
		options = append(options, Option{ID: guest.ID, Label: label})
	}
	return options
}

func NewUserOptions(users []hotel.User) []Option {
	options := make([]Option, 0, len(users))
	for _, user := range users {
		options = append(options, Option{ID: user.ID, Label: user.FullName()})
	}
	return options
}

