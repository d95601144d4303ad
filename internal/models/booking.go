package models

import (
	"time"

	"gorm.io/datatypes"
)

type Booking struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	ListingID     uint           `gorm:"not null;index" json:"listing_id"`
	ArrivalDate   datatypes.Date `gorm:"not null" json:"arrival_date"`
	DepartureDate datatypes.Date `gorm:"not null;index" json:"departure_date"`
	IsCancelled   bool           `gorm:"not null;default:false" json:"is_cancelled"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// BookingCategory groups a user's bookings for listing.
type BookingCategory string

const (
	CategoryPast      BookingCategory = "past"
	CategoryUpcoming  BookingCategory = "upcoming"
	CategoryCancelled BookingCategory = "cancelled"
)
