package guests

import (
	"fmt"
	"time"

	"github.com/posadahq/backoffice/internal/hotel"
)

type Row struct {
	ID         int64
	FullName   string
	DNI        string
	Age        string
	Address    string
	Profession string
}

// FormData backs the create and edit forms.
type FormData struct {
	IsEdit bool
	Guest  hotel.Guest
	Error  string
}

func NewRows(now time.Time, guests []hotel.Guest) []Row {
	out := make([]Row, 0, len(guests))
	for _, guest := range guests {
		row := Row{
			ID:         guest.ID,
			FullName:   guest.FullName(),
			DNI:        guest.DNI,
			Age:        "N/A",
			Address:    guest.Address,
			Profession: guest.Profession,
		}
		if !guest.BirthDate.IsZero() {
			row.Age = fmt.Sprintf("%d", age(guest.BirthDate, now))
		}
		out = append(out, row)
	}
	return out
}

func age(birth hotel.Date, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
