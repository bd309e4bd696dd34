package backend

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/posadahq/backoffice/internal/hotel"
)

// UserFilter narrows a staff-account search.
type UserFilter struct {
	Name     string
	Role     string
	DNI      string
	Username string
}

func (f UserFilter) values() url.Values {
	query := url.Values{}
	if name := strings.TrimSpace(f.Name); name != "" {
		query.Set("nombre", name)
	}
	if role := strings.TrimSpace(f.Role); role != "" {
		query.Set("cargo", role)
	}
	if dni := strings.TrimSpace(f.DNI); dni != "" {
		query.Set("dni", dni)
	}
	if username := strings.TrimSpace(f.Username); username != "" {
		query.Set("usuario", username)
	}
	return query
}

func (c *Client) ListUsers(ctx context.Context) ([]hotel.User, error) {
	var users []hotel.User
	if err := c.get(ctx, "/usuarios", nil, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (c *Client) SearchUsers(ctx context.Context, filter UserFilter) ([]hotel.User, error) {
	var users []hotel.User
	if err := c.get(ctx, "/usuarios", filter.values(), &users); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (hotel.User, error) {
	var user hotel.User
	if err := c.get(ctx, fmt.Sprintf("/usuarios/%d", id), nil, &user); err != nil {
		return hotel.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

func (c *Client) CreateUser(ctx context.Context, user hotel.User) (hotel.User, error) {
	var created hotel.User
	if err := c.post(ctx, "/usuarios", user, &created); err != nil {
		return hotel.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, user hotel.User) (hotel.User, error) {
	var updated hotel.User
	if err := c.put(ctx, fmt.Sprintf("/usuarios/%d", id), user, &updated); err != nil {
		return hotel.User{}, fmt.Errorf("update user %d: %w", id, err)
	}
	return updated, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/usuarios/%d", id)); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}
