package hotel

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeRef handles the two wire shapes of a record reference. A bare
// number fills only the identifier; an object is decoded into dst and
// the identifier is read back through idOf.
func decodeRef(data []byte, dst any, id *int64, idOf func() int64) (bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return false, nil
	}

	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, dst); err != nil {
			return false, fmt.Errorf("decode embedded reference: %w", err)
		}
		*id = idOf()
		return true, nil
	}

	if err := json.Unmarshal(trimmed, id); err != nil {
		return false, fmt.Errorf("reference must be an id or an object: %w", err)
	}
	return true, nil
}

// RoomRef is a reservation's room reference: either a bare id or an
// embedded Room record.
type RoomRef struct {
	id     int64
	record *Room
}

// RoomByID builds a reference carrying only the identifier, the shape
// sent on create and update requests.
func RoomByID(id int64) RoomRef {
	return RoomRef{id: id}
}

// Key resolves the referenced room identifier, uniformly for both wire
// shapes. ok is false when the reference is absent or carries no id.
func (r RoomRef) Key() (id int64, ok bool) {
	return r.id, r.id > 0
}

// Record returns the embedded room, or nil when the backend sent only
// an identifier.
func (r RoomRef) Record() *Room {
	return r.record
}

func (r *RoomRef) UnmarshalJSON(data []byte) error {
	var room Room
	ok, err := decodeRef(data, &room, &r.id, func() int64 { return room.ID })
	if err != nil {
		return err
	}
	if ok && room.ID != 0 {
		r.record = &room
	}
	return nil
}

func (r RoomRef) MarshalJSON() ([]byte, error) {
	if r.id == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		ID int64 `json:"idHabitacion"`
	}{ID: r.id})
}

// GuestRef mirrors RoomRef for guest references.
type GuestRef struct {
	id     int64
	record *Guest
}

func GuestByID(id int64) GuestRef {
	return GuestRef{id: id}
}

func (r GuestRef) Key() (id int64, ok bool) {
	return r.id, r.id > 0
}

func (r GuestRef) Record() *Guest {
	return r.record
}

func (r *GuestRef) UnmarshalJSON(data []byte) error {
	var guest Guest
	ok, err := decodeRef(data, &guest, &r.id, func() int64 { return guest.ID })
	if err != nil {
		return err
	}
	if ok && guest.ID != 0 {
		r.record = &guest
	}
	return nil
}

func (r GuestRef) MarshalJSON() ([]byte, error) {
	if r.id == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		ID int64 `json:"idHuesped"`
	}{ID: r.id})
}

// UserRef mirrors RoomRef for the employee who registered a booking.
type UserRef struct {
	id     int64
	record *User
}

func UserByID(id int64) UserRef {
	return UserRef{id: id}
}

func (r UserRef) Key() (id int64, ok bool) {
	return r.id, r.id > 0
}

func (r UserRef) Record() *User {
	return r.record
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	var user User
	ok, err := decodeRef(data, &user, &r.id, func() int64 { return user.ID })
	if err != nil {
		return err
	}
	if ok && user.ID != 0 {
		r.record = &user
	}
	return nil
}

func (r UserRef) MarshalJSON() ([]byte, error) {
	if r.id == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		ID int64 `json:"idEmpleado"`
	}{ID: r.id})
}
