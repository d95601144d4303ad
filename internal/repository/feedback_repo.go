package repository

import (
	"context"

	"github.com/pavelchamgl/booking/internal/models"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	FindByListingID(ctx context.Context, listingID uint) ([]models.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Create inserts the feedback and loads its author so the caller can render
// the username.
func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(feedback).Error; err != nil {
		return err
	}

	var author models.User
	if err := db.First(&author, feedback.UserID).Error; err != nil {
		return err
	}
	feedback.User = &author
	return nil
}

func (r *feedbackRepository) FindByListingID(ctx context.Context, listingID uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("listing_id = ?", listingID).
		Order("id ASC").
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}
	return feedbacks, nil
}
