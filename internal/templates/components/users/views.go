package users

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
<header><h2>Staff accounts</h2><a class="button" href="/users/new">New account</a></header>
<form class="filters" hx-get="/api/v1/users" hx-target="#user-rows" hx-swap="outerHTML">
<input type="text" name="name" placeholder="Name"/>
<input type="text" name="role" placeholder="Role"/>
<input type="text" name="dni" placeholder="DNI"/>
<input type="text" name="username" placeholder="Username"/>
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
		if _, err := io.WriteString(w, `<table id="user-rows"><thead><tr><th>Name</th><th>Username</th><th>DNI</th><th>Role</th><th>Address</th><th></th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td>`+
					`<td><a href="/users/%d/edit">Edit</a> `+
					`<button hx-delete="/api/v1/users/%d" hx-confirm="Delete this account?" hx-target="closest tr" hx-swap="outerHTML">Delete</button></td></tr>`,
				html.EscapeString(row.FullName),
				html.EscapeString(row.Username),
				html.EscapeString(row.DNI),
				html.EscapeString(row.Role),
				html.EscapeString(row.Address),
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
		action := "/api/v1/users"
		title := "New staff account"
		method := "post"
		passwordRequired := " required"
		if data.IsEdit {
			action = fmt.Sprintf("/api/v1/users/%d", data.User.ID)
			title = "Edit staff account"
			method = "put"
			passwordRequired = ""
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

		adminSelected, staffSelected := "", " selected"
		if data.User.Role == "ADMIN" {
			adminSelected, staffSelected = " selected", ""
		}
		birth := ""
		if !data.User.BirthDate.IsZero() {
			birth = data.User.BirthDate.Format("2006-01-02")
		}
		_, err := fmt.Fprintf(w, `<form hx-%s="%s">
<label>Username <input type="text" name="username" value="%s" required/></label>
<label>Password <input type="password" name="password" autocomplete="new-password"%s/></label>
<label>First names <input type="text" name="first_names" value="%s" required/></label>
<label>Last names <input type="text" name="last_names" value="%s"/></label>
<label>DNI <input type="text" name="dni" value="%s"/></label>
<label>Role <select name="role"><option value="ADMIN"%s>ADMIN</option><option value="RECEPCIONISTA"%s>RECEPCIONISTA</option></select></label>
<label>Birth date <input type="date" name="birth_date" value="%s"/></label>
<label>Address <input type="text" name="address" value="%s"/></label>
<button type="submit">Save</button>
<a class="button secondary" href="/users">Cancel</a>
</form>
</section>
`, method, action,
			html.EscapeString(data.User.Username),
			passwordRequired,
			html.EscapeString(data.User.FirstNames),
			html.EscapeString(data.User.LastNames),
			html.EscapeString(data.User.DNI),
			adminSelected, staffSelected,
			birth,
			html.EscapeString(data.User.Address))
		return err
	})
}
