package backend

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/posadahq/backoffice/internal/hotel"
)

// GuestFilter narrows a guest search.
type GuestFilter struct {
	Name       string
	Profession string
	DNI        string
}

func (f GuestFilter) values() url.Values {
	query := url.Values{}
	if name := strings.TrimSpace(f.Name); name != "" {
		query.Set("nombre", name)
	}
	if profession := strings.TrimSpace(f.Profession); profession != "" {
		query.Set("profesion", profession)
	}
	if dni := strings.TrimSpace(f.DNI); dni != "" {
		query.Set("dni", dni)
	}
	return query
}

func (c *Client) ListGuests(ctx context.Context) ([]hotel.Guest, error) {
	var guests []hotel.Guest
	if err := c.get(ctx, "/huespedes", nil, &guests); err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}

func (c *Client) SearchGuests(ctx context.Context, filter GuestFilter) ([]hotel.Guest, error) {
	var guests []hotel.Guest
	if err := c.get(ctx, "/huespedes", filter.values(), &guests); err != nil {
		return nil, fmt.Errorf("search guests: %w", err)
	}
	return guests, nil
}

func (c *Client) GetGuest(ctx context.Context, id int64) (hotel.Guest, error) {
	var guest hotel.Guest
	if err := c.get(ctx, fmt.Sprintf("/huespedes/%d", id), nil, &guest); err != nil {
		return hotel.Guest{}, fmt.Errorf("get guest %d: %w", id, err)
	}
	return guest, nil
}

func (c *Client) CreateGuest(ctx context.Context, guest hotel.Guest) (hotel.Guest, error) {
	var created hotel.Guest
	if err := c.post(ctx, "/huespedes", guest, &created); err != nil {
		return hotel.Guest{}, fmt.Errorf("create guest: %w", err)
	}
	return created, nil
}

func (c *Client) UpdateGuest(ctx context.Context, id int64, guest hotel.Guest) (hotel.Guest, error) {
	var updated hotel.Guest
	if err := c.put(ctx, fmt.Sprintf("/huespedes/%d", id), guest, &updated); err != nil {
		return hotel.Guest{}, fmt.Errorf("update guest %d: %w", id, err)
	}
	return updated, nil
}

func (c *Client) DeleteGuest(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/huespedes/%d", id)); err != nil {
		return fmt.Errorf("delete guest %d: %w", id, err)
	}
	return nil
}
