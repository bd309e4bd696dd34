package auth

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// LoginPage is the standalone login screen. errorMsg, when non-empty,
// is shown above the form.
func LoginPage(errorMsg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<title>Sign in - Posada Backoffice</title>
<link rel="stylesheet" href="/static/css/app.css"/>
</head>
<body class="login">
<div class="login-card">
<h1>Posada Backoffice</h1>
`); err != nil {
			return err
		}

		if errorMsg != "" {
			if _, err := fmt.Fprintf(w, `<p class="error" role="alert">%s</p>`+"\n", html.EscapeString(errorMsg)); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `<form method="post" action="/api/v1/auth/login">
<label>Username
<input type="text" name="username" autocomplete="username" required/>
</label>
<label>Password
<input type="password" name="password" autocomplete="current-password" required/>
</label>
<button type="submit">Sign in</button>
</form>
</div>
</body>
</html>
`)
		return err
	})
}
