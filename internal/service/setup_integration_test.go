//go:build integration

package service

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/bookeasy/ticketing/internal/models"
	"github.com/bookeasy/ticketing/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "ticketing_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	testDB.Exec("DROP TABLE IF EXISTS bookings")
	testDB.Exec("DROP TABLE IF EXISTS reservations")
	testDB.Exec("DROP TABLE IF EXISTS events")
	testDB.Exec("DROP TABLE IF EXISTS users")

	if err := testDB.AutoMigrate(&models.User{}, &models.Event{}, &models.Reservation{}, &models.Booking{}); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	code := m.Run()

	testDB.Exec("DROP TABLE IF EXISTS bookings")
	testDB.Exec("DROP TABLE IF EXISTS reservations")
	testDB.Exec("DROP TABLE IF EXISTS events")
	testDB.Exec("DROP TABLE IF EXISTS users")

	os.Exit(code)
}

func cleanTables() {
	testDB.Exec("DELETE FROM bookings")
	testDB.Exec("DELETE FROM reservations")
	testDB.Exec("DELETE FROM events")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var eventIDCounter uint = 0

func createTestEvent(t *testing.T, title string, available int, price float64) *models.Event {
	t.Helper()
	eventIDCounter++
	event := &models.Event{
		ID:               eventIDCounter,
		Title:            title,
		Category:         models.CategoryConcert,
		Venue:            "Test Hall",
		EventDate:        time.Now().Add(30 * 24 * time.Hour),
		EventTime:        "20:00",
		TicketPrice:      price,
		AvailableTickets: available,
	}
	require.NoError(t, testDB.Create(event).Error)
	return event
}

func availableTickets(t *testing.T, eventID uint) int {
	t.Helper()
	var event models.Event
	require.NoError(t, testDB.First(&event, eventID).Error)
	return event.AvailableTickets
}

func newTestServices(hold time.Duration) (ReservationService, BookingService, *Reaper) {
	eventRepo := repository.NewEventRepository(testDB)
	reservationRepo := repository.NewReservationRepository(testDB)
	bookingRepo := repository.NewBookingRepository(testDB)

	reservations := NewReservationService(reservationRepo, bookingRepo, eventRepo, nil, hold)
	bookings := NewBookingService(bookingRepo, eventRepo)
	reaper := NewReaper(reservationRepo, eventRepo, nil, time.Second)
	return reservations, bookings, reaper
}
