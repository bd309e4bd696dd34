package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/posadahq/backoffice/internal/hotel"
)

// Source is the data-access collaborator the aggregator depends on.
// *backend.Client satisfies it.
type Source interface {
	ListReservations(ctx context.Context) ([]hotel.Reservation, error)
	ListRooms(ctx context.Context) ([]hotel.Room, error)
	ListGuests(ctx context.Context) ([]hotel.Guest, error)
	ListUsers(ctx context.Context) ([]hotel.User, error)
}

// Collection holds one consistent fetch of all four record sets.
// Today is the normalized calendar day at fetch time; every view
// derived from the collection must evaluate against it so one fetch
// answers for one date, even across a midnight boundary.
type Collection struct {
	Today        time.Time
	Reservations []hotel.Reservation
	Rooms        []hotel.Room
	Guests       []hotel.Guest
	Users        []hotel.User
}

// Collect fetches the four collections concurrently. If any fetch
// fails the whole call fails and no partial collection is returned;
// the group context cancels the remaining fetches.
func Collect(ctx context.Context, source Source) (Collection, error) {
	var collection Collection

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		collection.Reservations, err = source.ListReservations(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		collection.Rooms, err = source.ListRooms(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		collection.Guests, err = source.ListGuests(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		collection.Users, err = source.ListUsers(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Collection{}, fmt.Errorf("collect dashboard data: %w", err)
	}

	collection.Today = Today(time.Now())
	logRoomAnomalies(ctx, collection)
	return collection, nil
}

// Snapshot computes the statistics snapshot for the collection as of
// its fetch day.
func (c Collection) Snapshot() Snapshot {
	return Compute(c.Today, c.Reservations, c.Rooms, c.Guests, c.Users)
}

// logRoomAnomalies flags rooms referenced by more than one active
// reservation. Correct booking logic never produces this; the board
// silently keeps the first match, so at least leave a trace.
func logRoomAnomalies(ctx context.Context, collection Collection) {
	today := collection.Today
	seen := make(map[int64]int)
	for _, reservation := range collection.Reservations {
		if !IsActive(reservation, today) {
			continue
		}
		if roomID, ok := reservation.Room.Key(); ok {
			seen[roomID]++
		}
	}
	for roomID, count := range seen {
		if count > 1 {
			log.Ctx(ctx).Debug().
				Int64("room_id", roomID).
				Int("active_reservations", count).
				Msg("Room referenced by multiple active reservations")
		}
	}
}
