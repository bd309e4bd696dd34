package guests

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
<header><h2>Guests</h2><a class="button" href="/guests/new">New guest</a></header>
<form class="filters" hx-get="/api/v1/guests" hx-target="#guest-rows" hx-swap="outerHTML">
<input type="text" name="name" placeholder="Name"/>
<input type="text" name="profession" placeholder="Profession"/>
<input type="text" name="dni" placeholder="DNI"/>
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
		if _, err := io.WriteString(w, `<table id="guest-rows"><thead><tr><th>Name</th><th>DNI</th><th>Age</th><th>Address</th><th>Profession</th><th></th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td>`+
					`<td><a href="/guests/%d/edit">Edit</a> `+
					`<button hx-delete="/api/v1/guests/%d" hx-confirm="Delete this guest?" hx-target="closest tr" hx-swap="outerHTML">Delete</button></td></tr>`,
				html.EscapeString(row.FullName),
				html.EscapeString(row.DNI),
				html.EscapeString(row.Age),
				html.EscapeString(row.Address),
				html.EscapeString(row.Profession),
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
		action := "/api/v1/guests"
		title := "New guest"
		method := "post"
		if data.IsEdit {
			action = fmt.Sprintf("/api/v1/guests/%d", data.Guest.ID)
			title = "Edit guest"
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

		birth := ""
		if !data.Guest.BirthDate.IsZero() {
			birth = data.Guest.BirthDate.Format("2006-01-02")
		}
		_, err := fmt.Fprintf(w, `<form hx-%s="%s">
<label>DNI <input type="text" name="dni" value="%s" required/></label>
<label>First names <input type="text" name="first_names" value="%s" required/></label>
<label>Last names <input type="text" name="last_names" value="%s"/></label>
<label>Birth date <input type="date" name="birth_date" value="%s"/></label>
<label>Address <input type="text" name="address" value="%s"/></label>
<label>Profession <input type="text" name="profession" value="%s"/></label>
<button type="submit">Save</button>
<a class="button secondary" href="/guests">Cancel</a>
</form>
</section>
`, method, action,
			html.EscapeString(data.Guest.DNI),
			html.EscapeString(data.Guest.FirstNames),
			html.EscapeString(data.Guest.LastNames),
			birth,
			html.EscapeString(data.Guest.Address),
			html.EscapeString(data.Guest.Profession))
		return err
	})
}
