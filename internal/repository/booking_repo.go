package repository

import (
	"context"
	"time"

	"github.com/pavelchamgl/booking/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingFilter selects a user's bookings. Date bounds are inclusive.
type BookingFilter struct {
	DepartureOnOrBefore *time.Time
	DepartureOnOrAfter  *time.Time
	Cancelled           *bool
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByIDAndUser(ctx context.Context, id, userID uint) (*models.Booking, error)
	MarkCancelled(ctx context.Context, id, userID uint) (int64, error)
	FindListingsByUser(ctx context.Context, userID uint, filter BookingFilter) ([]models.Listing, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// MarkCancelled flips is_cancelled in a single conditional update and returns
// the number of rows changed (0 when already cancelled or not owned).
func (r *bookingRepository) MarkCancelled(ctx context.Context, id, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND user_id = ? AND is_cancelled = ?", id, userID, false).
		Update("is_cancelled", true)
	return res.RowsAffected, res.Error
}

func (r *bookingRepository) FindListingsByUser(ctx context.Context, userID uint, filter BookingFilter) ([]models.Listing, error) {
	bookings := r.db.Model(&models.Booking{}).Select("listing_id").Where("user_id = ?", userID)
	if filter.DepartureOnOrBefore != nil {
		bookings = bookings.Where("departure_date <= ?", datatypes.Date(*filter.DepartureOnOrBefore))
	}
	if filter.DepartureOnOrAfter != nil {
		bookings = bookings.Where("departure_date >= ?", datatypes.Date(*filter.DepartureOnOrAfter))
	}
	if filter.Cancelled != nil {
		bookings = bookings.Where("is_cancelled = ?", *filter.Cancelled)
	}

	var listings []models.Listing
	err := preloadImages(r.db.WithContext(ctx)).
		Where("id IN (?)", bookings).
		Order("id ASC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}
