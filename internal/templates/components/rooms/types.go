package rooms

import (
	"fmt"

	"github.com/posadahq/backoffice/internal/api/apiutil"
	"github.com/posadahq/backoffice/internal/hotel"
)

type Row struct {
	ID       int64
	Name     string
	Floor    string
	TypeName string
	Capacity string
	Price    string
}

// FormData backs the create and edit forms.
type FormData struct {
	IsEdit bool
	Room   hotel.Room
	Error  string
}

func NewRows(rooms []hotel.Room) []Row {
	out := make([]Row, 0, len(rooms))
	for _, room := range rooms {
		row := Row{
			ID:       room.ID,
			Name:     room.Name,
			Floor:    room.Floor,
			TypeName: "N/A",
			Capacity: "N/A",
			Price:    apiutil.FormatMoney(room.NightPrice),
		}
		if room.Type != nil {
			row.TypeName = room.Type.Name
			row.Capacity = fmt.Sprintf("%d", room.Type.PeopleLimit)
		}
		out = append(out, row)
	}
	return out
}
