package database

import (
	"log"
	"time"

	"github.com/pavelchamgl/booking/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	return db
}

// Migrate creates the schema plus the constraints AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.AccommodationType{},
		&models.Listing{},
		&models.ListingImage{},
		&models.StayDate{},
		&models.Favorite{},
		&models.Booking{},
		&models.OTP{},
		&models.Feedback{},
	); err != nil {
		return err
	}

	return db.Exec(`
		DO $$ BEGIN
			ALTER TABLE stay_dates ADD CONSTRAINT chk_stay_dates_range CHECK (start_date <= end_date);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;
	`).Error
}
