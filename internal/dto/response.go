package dto

import (
	"time"

	"github.com/pavelchamgl/booking/internal/models"
)

type ImageResponse struct {
	Image string `json:"image"`
}

type StayDateResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ListingSummary is the card shape used by search, similar, favorites and
// booking lists.
type ListingSummary struct {
	ID             uint           `json:"id"`
	Image          *ImageResponse `json:"image"`
	Name           string         `json:"name"`
	City           string         `json:"city"`
	Rating         float64        `json:"rating"`
	AdultsCapacity int            `json:"adults_capacity"`
	BedType        string         `json:"bed_type"`
	WifiAvailable  bool           `json:"wifi_available"`
	Cost           float64        `json:"cost"`
	Currency       string         `json:"currency"`
	Available      bool           `json:"available"`
}

type ListingDetail struct {
	ID                uint               `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	City              string             `json:"city"`
	AccommodationType string             `json:"accommodation_type"`
	Cost              float64            `json:"cost"`
	Currency          string             `json:"currency"`
	AdultsCapacity    int                `json:"adults_capacity"`
	ChildrenCapacity  int                `json:"children_capacity"`
	BreakfastIncluded bool               `json:"breakfast_included"`
	KitchenAvailable  bool               `json:"kitchen_available"`
	BedType           string             `json:"bed_type"`
	WifiAvailable     bool               `json:"wifi_available"`
	Available         bool               `json:"available"`
	Rating            float64            `json:"rating"`
	Images            []string           `json:"images"`
	StayDates         []StayDateResponse `json:"stay_dates"`
	IsFavorite        bool               `json:"is_favorite"`
}

type BookingResponse struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user"`
	ListingID     uint      `json:"accommodation"`
	ArrivalDate   string    `json:"arrival_date"`
	DepartureDate string    `json:"departure_date"`
	IsCancelled   bool      `json:"is_cancelled"`
	CreatedAt     time.Time `json:"created_at"`
}

type FavoriteToggleResponse struct {
	Message  string `json:"message"`
	Favorite bool   `json:"is_favorite"`
}

type TokenResponse struct {
	Message  string `json:"message,omitempty"`
	Username string `json:"username"`
	Refresh  string `json:"refresh"`
	Access   string `json:"access"`
}

type AccessTokenResponse struct {
	Access string `json:"access"`
}

type UserResponse struct {
	ID             uint    `json:"id"`
	Username       string  `json:"username"`
	FullName       *string `json:"full_name"`
	Email          string  `json:"email"`
	PhoneNumber    *string `json:"phone_number"`
	EmailConfirmed bool    `json:"email_confirmed"`
}

type FeedbackResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user"`
	Username  string    `json:"username"`
	ListingID uint      `json:"accommodation"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ToListingSummary(l *models.Listing) ListingSummary {
	s := ListingSummary{
		ID:             l.ID,
		Name:           l.Name,
		City:           l.City,
		Rating:         l.Rating,
		AdultsCapacity: l.AdultsCapacity,
		BedType:        l.BedType,
		WifiAvailable:  l.WifiAvailable,
		Cost:           l.Cost,
		Currency:       l.Currency,
		Available:      l.Available,
	}
	if len(l.Images) > 0 {
		s.Image = &ImageResponse{Image: l.Images[0].URL}
	}
	return s
}

func ToListingSummaries(listings []models.Listing) []ListingSummary {
	resp := make([]ListingSummary, len(listings))
	for i := range listings {
		resp[i] = ToListingSummary(&listings[i])
	}
	return resp
}

func ToListingDetail(l *models.Listing, isFavorite bool) ListingDetail {
	d := ListingDetail{
		ID:                l.ID,
		Name:              l.Name,
		Description:       l.Description,
		City:              l.City,
		Cost:              l.Cost,
		Currency:          l.Currency,
		AdultsCapacity:    l.AdultsCapacity,
		ChildrenCapacity:  l.ChildrenCapacity,
		BreakfastIncluded: l.BreakfastIncluded,
		KitchenAvailable:  l.KitchenAvailable,
		BedType:           l.BedType,
		WifiAvailable:     l.WifiAvailable,
		Available:         l.Available,
		Rating:            l.Rating,
		Images:            make([]string, len(l.Images)),
		StayDates:         make([]StayDateResponse, len(l.StayDates)),
		IsFavorite:        isFavorite,
	}
	if l.AccommodationType != nil {
		d.AccommodationType = l.AccommodationType.Name
	}
	for i, img := range l.Images {
		d.Images[i] = img.URL
	}
	for i, sd := range l.StayDates {
		d.StayDates[i] = StayDateResponse{
			StartDate: FormatDate(time.Time(sd.StartDate)),
			EndDate:   FormatDate(time.Time(sd.EndDate)),
		}
	}
	return d
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		ListingID:     b.ListingID,
		ArrivalDate:   FormatDate(time.Time(b.ArrivalDate)),
		DepartureDate: FormatDate(time.Time(b.DepartureDate)),
		IsCancelled:   b.IsCancelled,
		CreatedAt:     b.CreatedAt,
	}
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		Email:          u.Email,
		PhoneNumber:    u.PhoneNumber,
		EmailConfirmed: u.EmailConfirmed,
	}
}

func ToFeedbackResponse(f *models.Feedback) FeedbackResponse {
	resp := FeedbackResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		ListingID: f.ListingID,
		Text:      f.Text,
		CreatedAt: f.CreatedAt,
	}
	if f.User != nil {
		resp.Username = f.User.Username
	}
	return resp
}
