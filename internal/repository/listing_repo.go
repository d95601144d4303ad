package repository

import (
	"context"
	"time"

	"github.com/pavelchamgl/booking/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SortOrder string

const (
	SortDefault  SortOrder = ""
	SortCostAsc  SortOrder = "cost"
	SortCostDesc SortOrder = "-cost"
)

// ListingFilter composes by AND; nil / empty fields are ignored.
type ListingFilter struct {
	CheckInDate       *time.Time
	NumAdults         *int
	NumChildren       *int
	City              string
	CostLTE           *float64
	CostGTE           *float64
	AccommodationType string
	BreakfastIncluded *bool
	Ordering          SortOrder
}

type ListingRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Listing, error)
	FindDetail(ctx context.Context, id uint) (*models.Listing, error)
	Search(ctx context.Context, filter ListingFilter) ([]models.Listing, error)
	FindSimilar(ctx context.Context, city string, excludeID uint) ([]models.Listing, error)
	FindFavorites(ctx context.Context, userID uint) ([]models.Listing, error)
	AddImages(ctx context.Context, images []models.ListingImage) error
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func preloadImages(db *gorm.DB) *gorm.DB {
	return db.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	})
}

func (r *listingRepository) FindByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).First(&listing, id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) FindDetail(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	err := preloadImages(r.db.WithContext(ctx)).
		Preload("AccommodationType").
		Preload("StayDates", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("start_date ASC")
		}).
		First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) Search(ctx context.Context, filter ListingFilter) ([]models.Listing, error) {
	q := preloadImages(r.db.WithContext(ctx)).Model(&models.Listing{})

	if filter.CheckInDate != nil {
		day := datatypes.Date(*filter.CheckInDate)
		// EXISTS keeps a listing with several matching windows from repeating.
		q = q.Where(`EXISTS (
			SELECT 1 FROM stay_dates sd
			WHERE sd.listing_id = listings.id AND sd.start_date <= ? AND sd.end_date >= ?
		)`, day, day)
	}
	if filter.NumAdults != nil {
		q = q.Where("adults_capacity >= ?", *filter.NumAdults)
	}
	if filter.NumChildren != nil {
		q = q.Where("children_capacity >= ?", *filter.NumChildren)
	}
	if filter.City != "" {
		q = q.Where("city = ?", filter.City)
	}
	if filter.CostLTE != nil {
		q = q.Where("cost <= ?", *filter.CostLTE)
	}
	if filter.CostGTE != nil {
		q = q.Where("cost >= ?", *filter.CostGTE)
	}
	if filter.AccommodationType != "" {
		q = q.Where("accommodation_type_id IN (?)",
			r.db.Model(&models.AccommodationType{}).Select("id").Where("name = ?", filter.AccommodationType))
	}
	if filter.BreakfastIncluded != nil {
		q = q.Where("breakfast_included = ?", *filter.BreakfastIncluded)
	}

	switch filter.Ordering {
	case SortCostAsc:
		q = q.Order("cost ASC").Order("id ASC")
	case SortCostDesc:
		q = q.Order("cost DESC").Order("id ASC")
	default:
		q = q.Order("id ASC")
	}

	var listings []models.Listing
	if err := q.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) FindSimilar(ctx context.Context, city string, excludeID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := preloadImages(r.db.WithContext(ctx)).
		Where("city = ? AND id <> ?", city, excludeID).
		Order("id ASC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) FindFavorites(ctx context.Context, userID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := preloadImages(r.db.WithContext(ctx)).
		Where("id IN (?)", r.db.Model(&models.Favorite{}).Select("listing_id").Where("user_id = ?", userID)).
		Order("id ASC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) AddImages(ctx context.Context, images []models.ListingImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}
