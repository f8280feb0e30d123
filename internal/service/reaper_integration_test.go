//go:build integration

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bookeasy/ticketing/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A lapsed hold is expired exactly once and its tickets return to the pool.
func TestReaper_ExpiresLapsedHolds(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Jazz Night", 5, 50)
	reservations, _, reaper := newTestServices(50 * time.Millisecond)

	reservation, err := reservations.Reserve(context.Background(), 1, event.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, availableTickets(t, event.ID))

	time.Sleep(100 * time.Millisecond)

	n, err := reaper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 5, availableTickets(t, event.ID), "tickets must return to the pool")

	var r models.Reservation
	require.NoError(t, testDB.First(&r, reservation.ID).Error)
	assert.Equal(t, models.ReservationExpired, r.Status)

	// Re-scan is idempotent: nothing left to settle, no double release.
	n, err = reaper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 5, availableTickets(t, event.ID))
}

func TestReaper_SkipsUnexpiredAndTerminal(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Jazz Night", 10, 50)
	reservations, _, reaper := newTestServices(5 * time.Minute)

	fresh, err := reservations.Reserve(context.Background(), 1, event.ID, 1)
	require.NoError(t, err)

	cancelled, err := reservations.Reserve(context.Background(), 2, event.ID, 1)
	require.NoError(t, err)
	_, err = reservations.Cancel(context.Background(), cancelled.ID, 2)
	require.NoError(t, err)

	n, err := reaper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var r models.Reservation
	require.NoError(t, testDB.First(&r, fresh.ID).Error)
	assert.Equal(t, models.ReservationPending, r.Status, "unexpired hold must stay pending")
}

// The reaper racing a confirm on a just-lapsed hold: the reservation is
// settled by exactly one of them.
func TestReaper_RacesConfirmSafely(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Jazz Night", 1, 50)
	reservations, _, reaper := newTestServices(30 * time.Millisecond)

	reservation, err := reservations.Reserve(context.Background(), 1, event.ID, 1)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = reservations.Confirm(context.Background(), reservation.ID, 1)
	}()
	go func() {
		defer wg.Done()
		_, _ = reaper.Sweep(context.Background())
	}()
	wg.Wait()

	var r models.Reservation
	require.NoError(t, testDB.First(&r, reservation.ID).Error)

	switch r.Status {
	case models.ReservationExpired:
		assert.Equal(t, 1, availableTickets(t, event.ID), "expiry must release the ticket")
	case models.ReservationConfirmed:
		assert.Equal(t, 0, availableTickets(t, event.ID), "confirm must keep the ticket taken")
	default:
		t.Fatalf("reservation ended in non-terminal status %s", r.Status)
	}
}

func TestReaper_StartStopsOnCancel(t *testing.T) {
	cleanTables()
	_, _, reaper := newTestServices(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	reaper.Start(ctx)
	cancel()
	// The loop exits on ctx.Done; nothing to assert beyond not hanging.
	time.Sleep(20 * time.Millisecond)
}
