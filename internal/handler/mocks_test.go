package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/pavelchamgl/booking/internal/middleware"
	"github.com/pavelchamgl/booking/internal/models"
	"github.com/pavelchamgl/booking/internal/repository"
	"github.com/pavelchamgl/booking/internal/service"
	"github.com/pavelchamgl/booking/pkg/token"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn func(ctx context.Context, userID uint, in service.CreateBookingInput) (*models.Booking, error)
	cancelFn func(ctx context.Context, userID, bookingID uint) (*models.Booking, error)
	listFn   func(ctx context.Context, userID uint, category models.BookingCategory) ([]models.Listing, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, userID uint, in service.CreateBookingInput) (*models.Booking, error) {
	return m.createFn(ctx, userID, in)
}
func (m *mockBookingService) CancelBooking(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	return m.cancelFn(ctx, userID, bookingID)
}
func (m *mockBookingService) ListBookings(ctx context.Context, userID uint, category models.BookingCategory) ([]models.Listing, error) {
	return m.listFn(ctx, userID, category)
}

// --- Mock ListingService ---

type mockListingService struct {
	searchFn    func(ctx context.Context, filter repository.ListingFilter) ([]models.Listing, error)
	detailFn    func(ctx context.Context, id uint, viewerID *uint) (*models.Listing, bool, error)
	similarFn   func(ctx context.Context, id uint) ([]models.Listing, error)
	toggleFn    func(ctx context.Context, userID, id uint) (bool, error)
	favoritesFn func(ctx context.Context, userID uint) ([]models.Listing, error)
	addImagesFn func(ctx context.Context, id uint, files []service.ImageFile) ([]models.ListingImage, error)
}

func (m *mockListingService) Search(ctx context.Context, filter repository.ListingFilter) ([]models.Listing, error) {
	return m.searchFn(ctx, filter)
}
func (m *mockListingService) Detail(ctx context.Context, id uint, viewerID *uint) (*models.Listing, bool, error) {
	return m.detailFn(ctx, id, viewerID)
}
func (m *mockListingService) Similar(ctx context.Context, id uint) ([]models.Listing, error) {
	return m.similarFn(ctx, id)
}
func (m *mockListingService) ToggleFavorite(ctx context.Context, userID, id uint) (bool, error) {
	return m.toggleFn(ctx, userID, id)
}
func (m *mockListingService) Favorites(ctx context.Context, userID uint) ([]models.Listing, error) {
	return m.favoritesFn(ctx, userID)
}
func (m *mockListingService) AddImages(ctx context.Context, id uint, files []service.ImageFile) ([]models.ListingImage, error) {
	return m.addImagesFn(ctx, id, files)
}

// --- Mock AccountService ---

type mockAccountService struct {
	registerFn      func(ctx context.Context, in service.RegisterInput) (*models.User, error)
	requestOTPFn    func(ctx context.Context, email string, purpose models.OTPPurpose) error
	confirmEmailFn  func(ctx context.Context, email, code string) (*models.User, *token.Pair, error)
	resetPasswordFn func(ctx context.Context, email, code, newPassword string) error
	loginFn         func(ctx context.Context, email, password string) (*models.User, *token.Pair, error)
	refreshFn       func(ctx context.Context, refreshToken string) (string, error)
	logoutFn        func(ctx context.Context, userID uint, refreshToken string) error
	profileFn       func(ctx context.Context, userID uint) (*models.User, error)
	updateFn        func(ctx context.Context, userID uint, in service.ProfileInput) (*models.User, error)
	deleteFn        func(ctx context.Context, userID uint) error
}

func (m *mockAccountService) Register(ctx context.Context, in service.RegisterInput) (*models.User, error) {
	return m.registerFn(ctx, in)
}
func (m *mockAccountService) RequestOTP(ctx context.Context, email string, purpose models.OTPPurpose) error {
	return m.requestOTPFn(ctx, email, purpose)
}
func (m *mockAccountService) ConfirmEmail(ctx context.Context, email, code string) (*models.User, *token.Pair, error) {
	return m.confirmEmailFn(ctx, email, code)
}
func (m *mockAccountService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return m.resetPasswordFn(ctx, email, code, newPassword)
}
func (m *mockAccountService) Login(ctx context.Context, email, password string) (*models.User, *token.Pair, error) {
	return m.loginFn(ctx, email, password)
}
func (m *mockAccountService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshFn(ctx, refreshToken)
}
func (m *mockAccountService) Logout(ctx context.Context, userID uint, refreshToken string) error {
	return m.logoutFn(ctx, userID, refreshToken)
}
func (m *mockAccountService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	return m.profileFn(ctx, userID)
}
func (m *mockAccountService) UpdateProfile(ctx context.Context, userID uint, in service.ProfileInput) (*models.User, error) {
	return m.updateFn(ctx, userID, in)
}
func (m *mockAccountService) DeleteAccount(ctx context.Context, userID uint) error {
	return m.deleteFn(ctx, userID)
}

// --- Mock FeedbackService ---

type mockFeedbackService struct {
	listFn   func(ctx context.Context, listingID uint) ([]models.Feedback, error)
	createFn func(ctx context.Context, userID, listingID uint, text string) (*models.Feedback, error)
}

func (m *mockFeedbackService) ListForListing(ctx context.Context, listingID uint) ([]models.Feedback, error) {
	return m.listFn(ctx, listingID)
}
func (m *mockFeedbackService) Create(ctx context.Context, userID, listingID uint, text string) (*models.Feedback, error) {
	return m.createFn(ctx, userID, listingID, text)
}

// --- helpers ---

func newContext(method, target string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asUser(c echo.Context, id uint) {
	c.Set(middleware.ContextUserID, id)
}
