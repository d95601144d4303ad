package repository

import (
	"context"

	"github.com/pavelchamgl/booking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	Toggle(ctx context.Context, userID, listingID uint) (bool, error)
	Exists(ctx context.Context, userID, listingID uint) (bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Toggle removes the (user, listing) pair if present, otherwise inserts it.
// Returns true when the pair was added.
func (r *favoriteRepository) Toggle(ctx context.Context, userID, listingID uint) (bool, error) {
	var added bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND listing_id = ?", userID, listingID).Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		fav := &models.Favorite{UserID: userID, ListingID: listingID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(fav).Error; err != nil {
			return err
		}
		added = true
		return nil
	})

	return added, err
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, listingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	return count > 0, err
}
