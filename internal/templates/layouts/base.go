// Package layouts holds the HTML shell shared by every console page.
// Views are hand-built templ components (templ.ComponentFunc) rendered
// server-side and swapped by htmx on partial updates.
package layouts

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/posadahq/backoffice/internal/api/authz"
)

type navLink struct {
	Href      string
	Label     string
	AdminOnly bool
}

var navLinks = []navLink{
	{Href: "/dashboard", Label: "Dashboard"},
	{Href: "/reservations", Label: "Reservations"},
	{Href: "/rooms", Label: "Rooms"},
	{Href: "/guests", Label: "Guests"},
	{Href: "/users", Label: "Staff", AdminOnly: true},
}

// Base wraps content in the console shell: document head, htmx script,
// and the navigation bar. The nav renders from the session user passed
// in, so admin-only entries disappear for staff sessions.
func Base(title string, user *authz.AuthUser, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>%s - Posada Backoffice</title>
<link rel="stylesheet" href="/static/css/app.css"/>
<script src="/static/js/htmx.min.js"></script>
</head>
<body>
`, html.EscapeString(title)); err != nil {
			return err
		}

		if user != nil {
			if err := renderNav(w, user); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<main class="content">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

func renderNav(w io.Writer, user *authz.AuthUser) error {
	if _, err := io.WriteString(w, `<nav class="topnav"><span class="brand">Posada</span><ul>`); err != nil {
		return err
	}
	for _, link := range navLinks {
		if link.AdminOnly && !user.IsAdmin() {
			continue
		}
		if _, err := fmt.Fprintf(w, `<li><a href="%s">%s</a></li>`, link.Href, html.EscapeString(link.Label)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w,
		`</ul><div class="session"><span class="who">%s</span>`+
			`<button hx-post="/api/v1/auth/logout" hx-swap="none">Log out</button></div></nav>`+"\n",
		html.EscapeString(user.Name))
	return err
}
