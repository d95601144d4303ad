package service

import (
	"context"
	"io"

	"github.com/pavelchamgl/booking/internal/models"
	"github.com/pavelchamgl/booking/internal/repository"
	"github.com/pavelchamgl/booking/pkg/token"
	"gorm.io/gorm"
)

// --- Mock ListingRepository ---

type mockListingRepo struct {
	findByIDFn      func(ctx context.Context, id uint) (*models.Listing, error)
	findDetailFn    func(ctx context.Context, id uint) (*models.Listing, error)
	searchFn        func(ctx context.Context, filter repository.ListingFilter) ([]models.Listing, error)
	findSimilarFn   func(ctx context.Context, city string, excludeID uint) ([]models.Listing, error)
	findFavoritesFn func(ctx context.Context, userID uint) ([]models.Listing, error)
	addImagesFn     func(ctx context.Context, images []models.ListingImage) error
}

func (m *mockListingRepo) FindByID(ctx context.Context, id uint) (*models.Listing, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockListingRepo) FindDetail(ctx context.Context, id uint) (*models.Listing, error) {
	return m.findDetailFn(ctx, id)
}
func (m *mockListingRepo) Search(ctx context.Context, filter repository.ListingFilter) ([]models.Listing, error) {
	return m.searchFn(ctx, filter)
}
func (m *mockListingRepo) FindSimilar(ctx context.Context, city string, excludeID uint) ([]models.Listing, error) {
	return m.findSimilarFn(ctx, city, excludeID)
}
func (m *mockListingRepo) FindFavorites(ctx context.Context, userID uint) ([]models.Listing, error) {
	return m.findFavoritesFn(ctx, userID)
}
func (m *mockListingRepo) AddImages(ctx context.Context, images []models.ListingImage) error {
	return m.addImagesFn(ctx, images)
}

// listingsByID serves FindByID from a fixed set.
func listingsByID(listings ...models.Listing) *mockListingRepo {
	return &mockListingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Listing, error) {
			for i := range listings {
				if listings[i].ID == id {
					l := listings[i]
					return &l, nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
}

// --- Mock FavoriteRepository ---

type mockFavoriteRepo struct {
	toggleFn func(ctx context.Context, userID, listingID uint) (bool, error)
	existsFn func(ctx context.Context, userID, listingID uint) (bool, error)
}

func (m *mockFavoriteRepo) Toggle(ctx context.Context, userID, listingID uint) (bool, error) {
	return m.toggleFn(ctx, userID, listingID)
}
func (m *mockFavoriteRepo) Exists(ctx context.Context, userID, listingID uint) (bool, error) {
	return m.existsFn(ctx, userID, listingID)
}

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn        func(ctx context.Context, booking *models.Booking) error
	findFn          func(ctx context.Context, id, userID uint) (*models.Booking, error)
	markCancelledFn func(ctx context.Context, id, userID uint) (int64, error)
	findListingsFn  func(ctx context.Context, userID uint, filter repository.BookingFilter) ([]models.Listing, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	return m.createFn(ctx, booking)
}
func (m *mockBookingRepo) FindByIDAndUser(ctx context.Context, id, userID uint) (*models.Booking, error) {
	return m.findFn(ctx, id, userID)
}
func (m *mockBookingRepo) MarkCancelled(ctx context.Context, id, userID uint) (int64, error) {
	return m.markCancelledFn(ctx, id, userID)
}
func (m *mockBookingRepo) FindListingsByUser(ctx context.Context, userID uint, filter repository.BookingFilter) ([]models.Listing, error) {
	return m.findListingsFn(ctx, userID, filter)
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn      func(ctx context.Context, user *models.User) error
	findByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	findByEmailFn func(ctx context.Context, email string) (*models.User, error)
	updateFn      func(ctx context.Context, user *models.User) error
	deleteFn      func(ctx context.Context, id uint) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.findByEmailFn(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.updateFn(ctx, user)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// --- Mock OTPRepository: a single-row-per-key in-memory store ---

type otpKey struct {
	userID uint
	title  models.OTPPurpose
}

type memoryOTPRepo struct {
	rows    map[otpKey]models.OTP
	upserts int
}

func newMemoryOTPRepo() *memoryOTPRepo {
	return &memoryOTPRepo{rows: map[otpKey]models.OTP{}}
}

func (m *memoryOTPRepo) Upsert(ctx context.Context, otp *models.OTP) error {
	m.upserts++
	m.rows[otpKey{otp.UserID, otp.Title}] = *otp
	return nil
}

func (m *memoryOTPRepo) FindMatch(ctx context.Context, userID uint, title models.OTPPurpose, value int) (*models.OTP, error) {
	row, ok := m.rows[otpKey{userID, title}]
	if !ok || row.Value != value {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// --- Mock FeedbackRepository ---

type mockFeedbackRepo struct {
	createFn func(ctx context.Context, feedback *models.Feedback) error
	listFn   func(ctx context.Context, listingID uint) ([]models.Feedback, error)
}

func (m *mockFeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	return m.createFn(ctx, feedback)
}
func (m *mockFeedbackRepo) FindByListingID(ctx context.Context, listingID uint) ([]models.Feedback, error) {
	return m.listFn(ctx, listingID)
}

// --- Mock Notifier ---

type published struct {
	routingKey string
	payload    any
}

type mockNotifier struct {
	messages []published
	err      error
}

func (m *mockNotifier) Publish(routingKey string, payload any) error {
	m.messages = append(m.messages, published{routingKey, payload})
	return m.err
}

// --- Mock OTPService ---

type mockOTPService struct {
	issueFn    func(ctx context.Context, user *models.User, purpose models.OTPPurpose) (*models.OTP, error)
	validateFn func(ctx context.Context, email string, purpose models.OTPPurpose, code string) (*models.User, error)
}

func (m *mockOTPService) Issue(ctx context.Context, user *models.User, purpose models.OTPPurpose) (*models.OTP, error) {
	return m.issueFn(ctx, user, purpose)
}
func (m *mockOTPService) Validate(ctx context.Context, email string, purpose models.OTPPurpose, code string) (*models.User, error) {
	return m.validateFn(ctx, email, purpose, code)
}

// --- Mock TokenIssuer ---

type mockTokenIssuer struct {
	issueFn   func(userID uint) (*token.Pair, error)
	refreshFn func(ctx context.Context, refreshToken string) (string, error)
	revokeFn  func(ctx context.Context, userID uint, refreshToken string) error
}

func (m *mockTokenIssuer) IssuePair(userID uint) (*token.Pair, error) {
	return m.issueFn(userID)
}
func (m *mockTokenIssuer) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshFn(ctx, refreshToken)
}
func (m *mockTokenIssuer) Revoke(ctx context.Context, userID uint, refreshToken string) error {
	return m.revokeFn(ctx, userID, refreshToken)
}

// --- Mock ImageUploader ---

type mockUploader struct {
	uploadFn func(ctx context.Context, file io.Reader, publicID string) (string, error)
}

func (m *mockUploader) Upload(ctx context.Context, file io.Reader, publicID string) (string, error) {
	return m.uploadFn(ctx, file, publicID)
}
