package users

import (
	"github.com/posadahq/backoffice/internal/hotel"
)

type Row struct {
	ID       int64
	FullName string
	Username string
	DNI      string
	Role     string
	Address  string
}

// FormData backs the create and edit forms. Password is write-only:
// it is never echoed back into the form.
type FormData struct {
	IsEdit bool
	User   hotel.User
	Error  string
}

func NewRows(users []hotel.User) []Row {
	out := make([]Row, 0, len(users))
	for _, user := range users {
		out = append(out, Row{
			ID:       user.ID,
			FullName: user.FullName(),
			Username: user.Username,
			DNI:      user.DNI,
			Role:     user.Role,
			Address:  user.Address,
		})
	}
	return out
}
