package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pavelchamgl/booking/internal/models"
	"github.com/pavelchamgl/booking/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateBookingInput struct {
	ListingID     uint
	ArrivalDate   time.Time
	DepartureDate time.Time
}

type BookingService interface {
	CreateBooking(ctx context.Context, userID uint, in CreateBookingInput) (*models.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID uint) (*models.Booking, error)
	ListBookings(ctx context.Context, userID uint, category models.BookingCategory) ([]models.Listing, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	now         func() time.Time
}

func NewBookingService(bookingRepo repository.BookingRepository, listingRepo repository.ListingRepository) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		now:         time.Now,
	}
}

// CreateBooking is gated only by the listing's availability flag; other
// bookings for the same dates are not consulted.
func (s *bookingService) CreateBooking(ctx context.Context, userID uint, in CreateBookingInput) (*models.Booking, error) {
	listing, err := s.listingRepo.FindByID(ctx, in.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	if !listing.Available {
		return nil, ErrListingUnavailable
	}
	if in.DepartureDate.Before(in.ArrivalDate) {
		return nil, ErrInvalidDates
	}

	booking := &models.Booking{
		UserID:        userID,
		ListingID:     listing.ID,
		ArrivalDate:   datatypes.Date(in.ArrivalDate),
		DepartureDate: datatypes.Date(in.DepartureDate),
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

// CancelBooking is a one-way transition; a second call reports ErrAlreadyCancelled.
func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByIDAndUser(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking.IsCancelled {
		return nil, ErrAlreadyCancelled
	}

	affected, err := s.bookingRepo.MarkCancelled(ctx, bookingID, userID)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if affected == 0 {
		// lost a race with a concurrent cancel
		return nil, ErrAlreadyCancelled
	}

	booking.IsCancelled = true
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, userID uint, category models.BookingCategory) ([]models.Listing, error) {
	filter, err := s.categoryFilter(category)
	if err != nil {
		return nil, err
	}
	return s.bookingRepo.FindListingsByUser(ctx, userID, filter)
}

// categoryFilter maps a category onto departure-date bounds. Both bounds are
// inclusive, so a booking departing today is both past and upcoming.
func (s *bookingService) categoryFilter(category models.BookingCategory) (repository.BookingFilter, error) {
	y, m, d := s.now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	switch ParseCategory(string(category)) {
	case models.CategoryPast:
		return repository.BookingFilter{DepartureOnOrBefore: &today}, nil
	case models.CategoryUpcoming:
		return repository.BookingFilter{DepartureOnOrAfter: &today}, nil
	case models.CategoryCancelled:
		cancelled := true
		return repository.BookingFilter{Cancelled: &cancelled}, nil
	default:
		return repository.BookingFilter{}, ErrInvalidCategory
	}
}

// ParseCategory accepts both the short names and the legacy path segments
// (past_bookings, new_bookings, cancelled_bookings).
func ParseCategory(raw string) models.BookingCategory {
	switch raw {
	case "past", "past_bookings":
		return models.CategoryPast
	case "upcoming", "new_bookings":
		return models.CategoryUpcoming
	case "cancelled", "cancelled_bookings":
		return models.CategoryCancelled
	default:
		return models.BookingCategory(raw)
	}
}
