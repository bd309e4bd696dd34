// Package hotel defines the record types served by the booking backend.
//
// The backend is a Spanish-language REST API; JSON tags keep its field
// names (fechaCheckin, montoTotal, ...) while the Go side uses English
// identifiers. References between records (reservation -> room,
// reservation -> guest) arrive in two shapes on the wire: a bare numeric
// identifier or an embedded object. The Ref types model that union with
// one decode path instead of per-call-site type sniffing.
package hotel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RoleAdmin is the role marker the backend stores for administrator
// accounts. The comparison is case-sensitive everywhere.
const RoleAdmin = "ADMIN"

// Date is a calendar value that tolerates the backend's mixed date
// encodings: "2006-01-02", RFC 3339 date-times, null, and the empty
// string all decode without error.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d *Date) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		d.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", dateLayout} {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			d.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", raw)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 {
		return json.Marshal(d.Format(dateLayout))
	}
	return json.Marshal(d.Format(time.RFC3339))
}

// DayStart strips the time-of-day, leaving a comparable calendar date
// in UTC. All snapshot predicates compare dates at this granularity.
func (d Date) DayStart() time.Time {
	year, month, day := d.Time.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NewDate builds a Date from a calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Reservation is a booking row. Room, Guest, and User may be bare
// identifiers or embedded records depending on the backend endpoint.
type Reservation struct {
	ID           int64    `json:"idReserva,omitempty"`
	CheckIn      Date     `json:"fechaCheckin"`
	CheckOut     Date     `json:"fechaCheckout"`
	RegisteredAt Date     `json:"fechaRegistro,omitempty"`
	Nights       int      `json:"cantidadDias"`
	People       int      `json:"cantidadPersonas"`
	TotalAmount  float64  `json:"montoTotal"`
	Room         RoomRef  `json:"habitacion"`
	Guest        GuestRef `json:"huesped"`
	User         UserRef  `json:"usuario"`
}

// Room is a bookable unit.
type Room struct {
	ID         int64     `json:"idHabitacion,omitempty"`
	Name       string    `json:"nombreTematica"`
	NightPrice float64   `json:"precioNoche"`
	Floor      string    `json:"pisoUbicacion"`
	Type       *RoomType `json:"tipo,omitempty"`
}

type RoomType struct {
	ID          int64  `json:"idTipo,omitempty"`
	Name        string `json:"nombreTipo"`
	PeopleLimit int    `json:"limitePersonas"`
}

// Guest carries no creation timestamp of its own; "registered since"
// is implied by the guest's earliest reservation.
type Guest struct {
	ID         int64  `json:"idHuesped,omitempty"`
	DNI        string `json:"dni"`
	FirstNames string `json:"nombres"`
	LastNames  string `json:"apellidos"`
	BirthDate  Date   `json:"fechaNac,omitempty"`
	Address    string `json:"direccion"`
	Profession string `json:"profesion"`
}

func (g Guest) FullName() string {
	return strings.TrimSpace(g.FirstNames + " " + g.LastNames)
}

// User is a staff account in the backend's employee directory.
type User struct {
	ID         int64  `json:"idEmpleado,omitempty"`
	Username   string `json:"usuario"`
	Password   string `json:"clave,omitempty"`
	FirstNames string `json:"nombres"`
	LastNames  string `json:"apellidos"`
	DNI        string `json:"dni"`
	Role       string `json:"cargo"`
	BirthDate  Date   `json:"fechaNac,omitempty"`
	Address    string `json:"direccion"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstNames + " " + u.LastNames)
}

// IsAdmin reports whether the account carries the ADMIN role marker.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
