package service

import (
	"context"
	"log"
	"time"

	"github.com/bookeasy/ticketing/internal/models"
	"github.com/bookeasy/ticketing/internal/repository"
	"github.com/bookeasy/ticketing/pkg/rabbitmq"
	"gorm.io/gorm"
)

const reaperBatchSize = 100

// Reaper sweeps pending reservations whose hold has lapsed, expires them and
// returns their tickets to the pool. It is the only actor that moves a
// reservation to expired; concurrent confirms and cancels race it through
// the same pending-status compare-and-set, so each reservation is settled
// exactly once no matter who wins.
type Reaper struct {
	reservationRepo repository.ReservationRepository
	eventRepo       repository.EventRepository
	publisher       *rabbitmq.Publisher
	interval        time.Duration
}

func NewReaper(
	reservationRepo repository.ReservationRepository,
	eventRepo repository.EventRepository,
	publisher *rabbitmq.Publisher,
	interval time.Duration,
) *Reaper {
	return &Reaper{
		reservationRepo: reservationRepo,
		eventRepo:       eventRepo,
		publisher:       publisher,
		interval:        interval,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (r *Reaper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		log.Printf("[Reaper] sweeping every %s", r.interval)
		for {
			select {
			case <-ctx.Done():
				log.Println("[Reaper] stopping")
				return
			case <-ticker.C:
				if n, err := r.Sweep(ctx); err != nil {
					log.Printf("[Reaper] sweep failed: %v", err)
				} else if n > 0 {
					log.Printf("[Reaper] expired %d reservations", n)
				}
			}
		}
	}()
}

// Sweep expires every lapsed pending reservation it can claim and reports
// how many it settled. Re-running it over the same rows is harmless: a
// reservation already out of pending is skipped by the compare-and-set.
func (r *Reaper) Sweep(ctx context.Context) (int, error) {
	expired, err := r.reservationRepo.FindExpiredPending(ctx, time.Now(), reaperBatchSize)
	if err != nil {
		return 0, err
	}

	settled := 0
	for i := range expired {
		reservation := &expired[i]
		won, err := r.expireOne(ctx, reservation)
		if err != nil {
			log.Printf("[Reaper] failed to expire reservation %d: %v", reservation.ID, err)
			continue
		}
		if !won {
			// Confirmed or cancelled since the scan; nothing to release.
			continue
		}
		settled++

		if r.publisher != nil {
			_ = r.publisher.Publish("reservation.expired", reservation)
		}
	}
	return settled, nil
}

// expireOne settles a single reservation in its own transaction so one bad
// row does not hold up the rest of the batch.
func (r *Reaper) expireOne(ctx context.Context, reservation *models.Reservation) (bool, error) {
	won := false
	err := r.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		won, err = r.reservationRepo.TransitionFromPending(ctx, tx, reservation.ID, models.ReservationExpired)
		if err != nil || !won {
			return err
		}
		reservation.Status = models.ReservationExpired
		return r.eventRepo.ReleaseTickets(ctx, tx, reservation.EventID, reservation.TicketCount)
	})
	return won, err
}
