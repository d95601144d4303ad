package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/pavelchamgl/booking/internal/models"
	"github.com/pavelchamgl/booking/internal/repository"
	"gorm.io/gorm"
)

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader, publicID string) (string, error)
}

type ImageFile struct {
	Name    string
	Content io.Reader
}

type ListingService interface {
	Search(ctx context.Context, filter repository.ListingFilter) ([]models.Listing, error)
	Detail(ctx context.Context, id uint, viewerID *uint) (*models.Listing, bool, error)
	Similar(ctx context.Context, id uint) ([]models.Listing, error)
	ToggleFavorite(ctx context.Context, userID, id uint) (bool, error)
	Favorites(ctx context.Context, userID uint) ([]models.Listing, error)
	AddImages(ctx context.Context, id uint, files []ImageFile) ([]models.ListingImage, error)
}

type listingService struct {
	listingRepo  repository.ListingRepository
	favoriteRepo repository.FavoriteRepository
	uploader     ImageUploader
}

func NewListingService(listingRepo repository.ListingRepository, favoriteRepo repository.FavoriteRepository, uploader ImageUploader) ListingService {
	return &listingService{
		listingRepo:  listingRepo,
		favoriteRepo: favoriteRepo,
		uploader:     uploader,
	}
}

func (s *listingService) Search(ctx context.Context, filter repository.ListingFilter) ([]models.Listing, error) {
	listings, err := s.listingRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	return listings, nil
}

// Detail also reports whether viewerID has favorited the listing; anonymous
// viewers (nil) always get false.
func (s *listingService) Detail(ctx context.Context, id uint, viewerID *uint) (*models.Listing, bool, error) {
	listing, err := s.listingRepo.FindDetail(ctx, id)
	if err != nil {
		return nil, false, listingLookupErr(err)
	}
	if viewerID == nil {
		return listing, false, nil
	}

	fav, err := s.favoriteRepo.Exists(ctx, *viewerID, id)
	if err != nil {
		return nil, false, fmt.Errorf("check favorite: %w", err)
	}
	return listing, fav, nil
}

func (s *listingService) Similar(ctx context.Context, id uint) ([]models.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, listingLookupErr(err)
	}
	return s.listingRepo.FindSimilar(ctx, listing.City, listing.ID)
}

// ToggleFavorite returns true when the listing was added to the user's favorites.
func (s *listingService) ToggleFavorite(ctx context.Context, userID, id uint) (bool, error) {
	if _, err := s.listingRepo.FindByID(ctx, id); err != nil {
		return false, listingLookupErr(err)
	}
	added, err := s.favoriteRepo.Toggle(ctx, userID, id)
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	return added, nil
}

func (s *listingService) Favorites(ctx context.Context, userID uint) ([]models.Listing, error) {
	return s.listingRepo.FindFavorites(ctx, userID)
}

func (s *listingService) AddImages(ctx context.Context, id uint, files []ImageFile) ([]models.ListingImage, error) {
	if s.uploader == nil {
		return nil, ErrStorageDisabled
	}
	if len(files) == 0 {
		return nil, ErrNoImages
	}
	if _, err := s.listingRepo.FindByID(ctx, id); err != nil {
		return nil, listingLookupErr(err)
	}

	images := make([]models.ListingImage, 0, len(files))
	for _, f := range files {
		url, err := s.uploader.Upload(ctx, f.Content, fmt.Sprintf("listing-%d-%s", id, uuid.NewString()))
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		images = append(images, models.ListingImage{ListingID: id, URL: url})
	}

	if err := s.listingRepo.AddImages(ctx, images); err != nil {
		return nil, fmt.Errorf("store images: %w", err)
	}
	return images, nil
}

func listingLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrListingNotFound
	}
	return fmt.Errorf("find listing: %w", err)
}
