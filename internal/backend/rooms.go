package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/posadahq/backoffice/internal/hotel"
)

// RoomFilter narrows a room search.
type RoomFilter struct {
	Name     string
	Type     string
	Floor    string
	PriceMin float64
	PriceMax float64
}

func (f RoomFilter) values() url.Values {
	query := url.Values{}
	if name := strings.TrimSpace(f.Name); name != "" {
		query.Set("nombre", name)
	}
	if roomType := strings.TrimSpace(f.Type); roomType != "" {
		query.Set("tipo", roomType)
	}
	if floor := strings.TrimSpace(f.Floor); floor != "" {
		query.Set("piso", floor)
	}
	if f.PriceMin > 0 {
		query.Set("precioMin", strconv.FormatFloat(f.PriceMin, 'f', -1, 64))
	}
	if f.PriceMax > 0 {
		query.Set("precioMax", strconv.FormatFloat(f.PriceMax, 'f', -1, 64))
	}
	return query
}

func (c *Client) ListRooms(ctx context.Context) ([]hotel.Room, error) {
	var rooms []hotel.Room
	if err := c.get(ctx, "/habitaciones", nil, &rooms); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (c *Client) SearchRooms(ctx context.Context, filter RoomFilter) ([]hotel.Room, error) {
	var rooms []hotel.Room
	if err := c.get(ctx, "/habitaciones", filter.values(), &rooms); err != nil {
		return nil, fmt.Errorf("search rooms: %w", err)
	}
	return rooms, nil
}

func (c *Client) GetRoom(ctx context.Context, id int64) (hotel.Room, error) {
	var room hotel.Room
	if err := c.get(ctx, fmt.Sprintf("/habitaciones/%d", id), nil, &room); err != nil {
		return hotel.Room{}, fmt.Errorf("get room %d: %w", id, err)
	}
	return room, nil
}

func (c *Client) CreateRoom(ctx context.Context, room hotel.Room) (hotel.Room, error) {
	var created hotel.Room
	if err := c.post(ctx, "/habitaciones", room, &created); err != nil {
		return hotel.Room{}, fmt.Errorf("create room: %w", err)
	}
	return created, nil
}

func (c *Client) UpdateRoom(ctx context.Context, id int64, room hotel.Room) (hotel.Room, error) {
	var updated hotel.Room
	if err := c.put(ctx, fmt.Sprintf("/habitaciones/%d", id), room, &updated); err != nil {
		return hotel.Room{}, fmt.Errorf("update room %d: %w", id, err)
	}
	return updated, nil
}

func (c *Client) DeleteRoom(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/habitaciones/%d", id)); err != nil {
		return fmt.Errorf("delete room %d: %w", id, err)
	}
	return nil
}
