package dashboard

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/posadahq/backoffice/internal/api/apiutil"
	"github.com/posadahq/backoffice/internal/stats"
)

// Page is the full dashboard content; the metrics region re-fetches
// itself through htmx so the numbers stay fresh without a reload.
func Page(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section id="dashboard" hx-get="/api/v1/dashboard/metrics" hx-trigger="every 60s, dashboard-refresh from:body" hx-swap="innerHTML">`); err != nil {
			return err
		}
		if err := Metrics(data).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

// Metrics renders the snapshot cards plus the derived views. Served
// whole as the htmx partial for metric refreshes.
func Metrics(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := statCards(w, data.Snapshot); err != nil {
			return err
		}
		if err := monthSeries(w, data.Months); err != nil {
			return err
		}
		if err := roomBoard(w, data.Rooms); err != nil {
			return err
		}
		return recentTable(w, data.Recent)
	})
}

// LoadError is what the dashboard shows when any backend fetch fails:
// no partial numbers, just the failure.
func LoadError(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="dashboard-error" role="alert"><p>%s</p>`+
				`<button hx-get="/api/v1/dashboard/metrics" hx-target="#dashboard">Retry</button></div>`,
			html.EscapeString(message))
		return err
	})
}

func statCards(w io.Writer, snapshot stats.Snapshot) error {
	_, err := fmt.Fprintf(w, `<div class="stat-grid">
<div class="stat-card"><h3>Reservations</h3><p class="big">%d</p><p>%d active / %d pending</p></div>
<div class="stat-card"><h3>Rooms</h3><p class="big">%d</p><p>%d occupied / %d available</p></div>
<div class="stat-card"><h3>Guests</h3><p class="big">%d</p><p>%d active / %d new</p></div>
<div class="stat-card"><h3>Staff</h3><p class="big">%d</p><p>%d admin / %d staff</p></div>
<div class="stat-card"><h3>Revenue</h3><p class="big">%s</p><p>%s this month</p></div>
</div>
`,
		snapshot.Reservations.Total, snapshot.Reservations.Active, snapshot.Reservations.Pending,
		snapshot.Rooms.Total, snapshot.Rooms.Occupied, snapshot.Rooms.Available,
		snapshot.Guests.Total, snapshot.Guests.Active, snapshot.Guests.New,
		snapshot.Users.Total, snapshot.Users.Admin, snapshot.Users.Staff,
		apiutil.FormatMoney(snapshot.Revenue.Total), apiutil.FormatMoney(snapshot.Revenue.CurrentMonth))
	return err
}

func monthSeries(w io.Writer, points []MonthPoint) error {
	if _, err := io.WriteString(w, `<div class="panel"><h3>Occupancy, last six months</h3><table class="months"><thead><tr><th>Month</th><th>Reservations</th><th>Revenue</th></tr></thead><tbody>`); err != nil {
		return err
	}
	for _, point := range points {
		if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%d</td><td>%s</td></tr>`,
			html.EscapeString(point.Label), point.Reservations, html.EscapeString(point.Revenue)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</tbody></table></div>
`)
	return err
}

func roomBoard(w io.Writer, rows []RoomStatusRow) error {
	if _, err := io.WriteString(w, `<div class="panel"><h3>Room status</h3><ul class="room-board">`); err != nil {
		return err
	}
	for _, row := range rows {
		guest := ""
		if row.GuestName != "" {
			guest = fmt.Sprintf(` <span class="guest">%s</span>`, html.EscapeString(row.GuestName))
		}
		if _, err := fmt.Fprintf(w, `<li class="room %s"><span class="name">%s</span><span class="floor">%s</span><span class="status">%s</span>%s</li>`,
			html.EscapeString(cssClass(row.Status)),
			html.EscapeString(row.Name),
			html.EscapeString(row.Floor),
			html.EscapeString(row.Status),
			guest); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul></div>
`)
	return err
}

func recentTable(w io.Writer, rows []RecentRow) error {
	if _, err := io.WriteString(w, `<div class="panel"><h3>Recent reservations</h3><table class="recent"><thead><tr><th>Guest</th><th>Room</th><th>Check-in</th><th>Check-out</th><th>Amount</th></tr></thead><tbody>`); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, `<tr><td><a href="/reservations/%d">%s</a></td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
			row.ID,
			html.EscapeString(row.GuestName),
			html.EscapeString(row.RoomName),
			html.EscapeString(row.CheckIn),
			html.EscapeString(row.CheckOut),
			html.EscapeString(row.Amount)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</tbody></table></div>
`)
	return err
}

func cssClass(status string) string {
	if status == "Occupied" {
		return "occupied"
	}
	return "available"
}
