package backend

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/posadahq/backoffice/internal/hotel"
)

// ReservationFilter narrows a reservation search. Zero fields are
// omitted from the query string.
type ReservationFilter struct {
	From  hotel.Date
	To    hotel.Date
	Guest string
	Room  string
}

func (f ReservationFilter) values() url.Values {
	query := url.Values{}
	if !f.From.IsZero() {
		query.Set("fechaDesde", f.From.Format("2006-01-02"))
	}
	if !f.To.IsZero() {
		query.Set("fechaHasta", f.To.Format("2006-01-02"))
	}
	if guest := strings.TrimSpace(f.Guest); guest != "" {
		query.Set("huesped", guest)
	}
	if room := strings.TrimSpace(f.Room); room != "" {
		query.Set("habitacion", room)
	}
	return query
}

func (c *Client) ListReservations(ctx context.Context) ([]hotel.Reservation, error) {
	var reservations []hotel.Reservation
	if err := c.get(ctx, "/reservas", nil, &reservations); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

func (c *Client) SearchReservations(ctx context.Context, filter ReservationFilter) ([]hotel.Reservation, error) {
	var reservations []hotel.Reservation
	if err := c.get(ctx, "/reservas", filter.values(), &reservations); err != nil {
		return nil, fmt.Errorf("search reservations: %w", err)
	}
	return reservations, nil
}

func (c *Client) GetReservation(ctx context.Context, id int64) (hotel.Reservation, error) {
	var reservation hotel.Reservation
	if err := c.get(ctx, fmt.Sprintf("/reservas/%d", id), nil, &reservation); err != nil {
		return hotel.Reservation{}, fmt.Errorf("get reservation %d: %w", id, err)
	}
	return reservation, nil
}

func (c *Client) CreateReservation(ctx context.Context, reservation hotel.Reservation) (hotel.Reservation, error) {
	var created hotel.Reservation
	if err := c.post(ctx, "/reservas", reservation, &created); err != nil {
		return hotel.Reservation{}, fmt.Errorf("create reservation: %w", err)
	}
	return created, nil
}

func (c *Client) UpdateReservation(ctx context.Context, id int64, reservation hotel.Reservation) (hotel.Reservation, error) {
	var updated hotel.Reservation
	if err := c.put(ctx, fmt.Sprintf("/reservas/%d", id), reservation, &updated); err != nil {
		return hotel.Reservation{}, fmt.Errorf("update reservation %d: %w", id, err)
	}
	return updated, nil
}

func (c *Client) DeleteReservation(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/reservas/%d", id)); err != nil {
		return fmt.Errorf("delete reservation %d: %w", id, err)
	}
	return nil
}
