package reservations

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// List renders the reservations screen: filter bar plus results table.
// The table body carries the id htmx re-targets on filter submits.
func List(rows []Row) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="listing">
<header><h2>Reservations</h2><a class="button" href="/reservations/new">New reservation</a></header>
<form class="filters" hx-get="/api/v1/reservations" hx-target="#reservation-rows" hx-swap="outerHTML">
<input type="date" name="from" aria-label="From"/>
<input type="date" name="to" aria-label="To"/>
<input type="text" name="guest" placeholder="Guest"/>
<input type="text" name="room" placeholder="Room"/>
<button type="submit">Filter</button>
</form>
`); err != nil {
			return err
		}
		if err := Table(rows).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>
`)
		return err
	})
}

// Table is the results partial swapped by the filter form.
func Table(rows []Row) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<table id="reservation-rows"><thead><tr><th>Guest</th><th>Room</th><th>Check-in</th><th>Check-out</th><th>People</th><th>Amount</th><th></th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%s</td>`+
					`<td><a href="/reservations/%d/edit">Edit</a> `+
					`<button hx-delete="/api/v1/reservations/%d" hx-confirm="Delete this reservation?" hx-target="closest tr" hx-swap="outerHTML">Delete</button></td></tr>`,
				html.EscapeString(row.GuestName),
				html.EscapeString(row.RoomName),
				html.EscapeString(row.CheckIn),
				html.EscapeString(row.CheckOut),
				row.People,
				html.EscapeString(row.Amount),
				row.ID, row.ID); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

// Form renders the create/edit form.
func Form(data FormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		action := "/api/v1/reservations"
		title := "New reservation"
		if data.IsEdit {
			action = fmt.Sprintf("/api/v1/reservations/%d", data.Reservation.ID)
			title = "Edit reservation"
		}

		if _, err := fmt.Fprintf(w, `<section class="form-card"><h2>%s</h2>
`, html.EscapeString(title)); err != nil {
			return err
		}
		if data.Error != "" {
			if _, err := fmt.Fprintf(w, `<p class="error" role="alert">%s</p>
`, html.EscapeString(data.Error)); err != nil {
				return err
			}
		}

		method := "post"
		if data.IsEdit {
			method = "put"
		}
		if _, err := fmt.Fprintf(w, `<form hx-%s="%s">
`, method, action); err != nil {
			return err
		}

		checkIn, checkOut := "", ""
		if !data.Reservation.CheckIn.IsZero() {
			checkIn = data.Reservation.CheckIn.Format("2006-01-02")
		}
		if !data.Reservation.CheckOut.IsZero() {
			checkOut = data.Reservation.CheckOut.Format("2006-01-02")
		}
		if _, err := fmt.Fprintf(w, `<label>Check-in <input type="date" name="check_in" value="%s" required/></label>
<label>Check-out <input type="date" name="check_out" value="%s" required/></label>
<label>People <input type="number" name="people" min="1" max="10" value="%d" required/></label>
<label>Total amount <input type="number" name="amount" min="0" step="0.01" value="%.2f" required/></label>
`, checkIn, checkOut, data.Reservation.People, data.Reservation.TotalAmount); err != nil {
			return err
		}

		roomID, _ := data.Reservation.Room.Key()
		guestID, _ := data.Reservation.Guest.Key()
		userID, _ := data.Reservation.User.Key()
		if err := selectField(w, "room_id", "Room", data.Rooms, roomID); err != nil {
			return err
		}
		if err := selectField(w, "guest_id", "Guest", data.Guests, guestID); err != nil {
			return err
		}
		if err := selectField(w, "user_id", "Registered by", data.Users, userID); err != nil {
			return err
		}

		_, err := io.WriteString(w, `<button type="submit">Save</button>
<a class="button secondary" href="/reservations">Cancel</a>
</form>
</section>
`)
		return err
	})
}

func selectField(w io.Writer, name, label string, options []Option, selected int64) error {
	if _, err := fmt.Fprintf(w, `<label>%s <select name="%s" required><option value=""></option>`, html.EscapeString(label), name); err != nil {
		return err
	}
	for _, option := range options {
		marker := ""
		if option.ID == selected {
			marker = ` selected`
		}
		if _, err := fmt.Fprintf(w, `<option value="%d"%s>%s</option>`, option.ID, marker, html.EscapeString(option.Label)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</select></label>
`)
	return err
}
