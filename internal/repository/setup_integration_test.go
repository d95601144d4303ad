//go:build integration

package repository

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/pavelchamgl/booking/internal/models"
	"github.com/pavelchamgl/booking/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

var allModels = []any{
	&models.Feedback{},
	&models.OTP{},
	&models.Booking{},
	&models.Favorite{},
	&models.StayDate{},
	&models.ListingImage{},
	&models.Listing{},
	&models.AccommodationType{},
	&models.User{},
}

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "neobooking_test_db"),
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
	if err := testDB.Migrator().DropTable(allModels...); err != nil {
		log.Fatalf("failed to drop tables: %v", err)
	}
	if err := database.Migrate(testDB); err != nil {
		log.Fatalf("failed to migrate test database: %v", err)
	}

	code := m.Run()

	_ = testDB.Migrator().DropTable(allModels...)
	os.Exit(code)
}

func cleanTables() {
	for _, table := range []string{"feedbacks", "otps", "bookings", "favorites", "stay_dates", "listing_images", "listings", "accommodation_types", "users"} {
		testDB.Exec("DELETE FROM " + table)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createUser(t *testing.T, email string) *models.User {
	t.Helper()
	u := &models.User{Username: email, Email: email, PasswordHash: "x", IsActive: true}
	require.NoError(t, testDB.Create(u).Error)
	return u
}

func createType(t *testing.T, name string) *models.AccommodationType {
	t.Helper()
	at := &models.AccommodationType{Name: name}
	require.NoError(t, testDB.Create(at).Error)
	return at
}

type window struct{ from, to time.Time }

func createListing(t *testing.T, l models.Listing, windows ...window) *models.Listing {
	t.Helper()
	if l.Currency == "" {
		l.Currency = "USD"
	}
	for _, w := range windows {
		l.StayDates = append(l.StayDates, models.StayDate{
			StartDate: datatypes.Date(w.from),
			EndDate:   datatypes.Date(w.to),
		})
	}
	require.NoError(t, testDB.Create(&l).Error)
	return &l
}

func ids(listings []models.Listing) []uint {
	out := make([]uint, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}
