package service

import (
	"context"
	"fmt"

	"github.com/pavelchamgl/booking/internal/models"
	"github.com/pavelchamgl/booking/internal/repository"
)

type FeedbackService interface {
	ListForListing(ctx context.Context, listingID uint) ([]models.Feedback, error)
	Create(ctx context.Context, userID, listingID uint, text string) (*models.Feedback, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	listingRepo  repository.ListingRepository
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository, listingRepo repository.ListingRepository) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo, listingRepo: listingRepo}
}

// ListForListing returns an empty list for unknown listings.
func (s *feedbackService) ListForListing(ctx context.Context, listingID uint) ([]models.Feedback, error) {
	return s.feedbackRepo.FindByListingID(ctx, listingID)
}

func (s *feedbackService) Create(ctx context.Context, userID, listingID uint, text string) (*models.Feedback, error) {
	if _, err := s.listingRepo.FindByID(ctx, listingID); err != nil {
		return nil, listingLookupErr(err)
	}

	feedback := &models.Feedback{UserID: userID, ListingID: listingID, Text: text}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return feedback, nil
}
