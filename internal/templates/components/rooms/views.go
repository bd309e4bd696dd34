package rooms

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

func List(rows []Row) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="listing">
<header><h2>Rooms</h2><a class="button" href="/rooms/new">New room</a></header>
<form class="filters" hx-get="/api/v1/rooms" hx-target="#room-rows" hx-swap="outerHTML">
<input type="text" name="name" placeholder="Name"/>
<input type="text" name="type" placeholder="Type"/>
<input type="text" name="floor" placeholder="Floor"/>
<input type="number" name="price_min" placeholder="Min price" min="0" step="0.01"/>
<input type="number" name="price_max" placeholder="Max price" min="0" step="0.01"/>
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

func Table(rows []Row) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<table id="room-rows"><thead><tr><th>Name</th><th>Floor</th><th>Type</th><th>Capacity</th><th>Price/night</th><th></th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td>`+
					`<td><a href="/rooms/%d/edit">Edit</a> `+
					`<button hx-delete="/api/v1/rooms/%d" hx-confirm="Delete this room?" hx-target="closest tr" hx-swap="outerHTML">Delete</button></td></tr>`,
				html.EscapeString(row.Name),
				html.EscapeString(row.Floor),
				html.EscapeString(row.TypeName),
				html.EscapeString(row.Capacity),
				html.EscapeString(row.Price),
				row.ID, row.ID); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

func Form(data FormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		action := "/api/v1/rooms"
		title := "New room"
		method := "post"
		if data.IsEdit {
			action = fmt.Sprintf("/api/v1/rooms/%d", data.Room.ID)
			title = "Edit room"
			method = "put"
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

		typeID := int64(0)
		if data.Room.Type != nil {
			typeID = data.Room.Type.ID
		}
		_, err := fmt.Fprintf(w, `<form hx-%s="%s">
<label>Name <input type="text" name="name" value="%s" required/></label>
<label>Floor <input type="text" name="floor" value="%s"/></label>
<label>Price per night <input type="number" name="price" min="0" step="0.01" value="%.2f" required/></label>
<label>Type ID <input type="number" name="type_id" min="1" value="%d"/></label>
<button type="submit">Save</button>
<a class="button secondary" href="/rooms">Cancel</a>
</form>
</section>
`, method, action,
			html.EscapeString(data.Room.Name),
			html.EscapeString(data.Room.Floor),
			data.Room.NightPrice,
			typeID)
		return err
	})
}
