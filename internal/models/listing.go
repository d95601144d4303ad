package models

import (
	"time"

	"gorm.io/datatypes"
)

type AccommodationType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// Listing is a bookable accommodation. Available=false blocks new bookings
// regardless of its stay-date windows.
type Listing struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"size:200;not null" json:"name"`
	Description         string    `gorm:"type:text" json:"description"`
	City                string    `gorm:"size:100;not null;index" json:"city"`
	AccommodationTypeID uint      `gorm:"not null" json:"accommodation_type_id"`
	Cost                float64   `gorm:"type:numeric(10,2);not null" json:"cost"`
	Currency            string    `gorm:"size:3;not null" json:"currency"`
	AdultsCapacity      int       `gorm:"not null" json:"adults_capacity"`
	ChildrenCapacity    int       `gorm:"not null" json:"children_capacity"`
	BreakfastIncluded   bool      `gorm:"not null" json:"breakfast_included"`
	KitchenAvailable    bool      `gorm:"not null" json:"kitchen_available"`
	BedType             string    `gorm:"size:50" json:"bed_type"`
	WifiAvailable       bool      `gorm:"not null" json:"wifi_available"`
	Available           bool      `gorm:"not null;index" json:"available"`
	Rating              float64   `gorm:"type:numeric(3,1)" json:"rating"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	AccommodationType *AccommodationType `gorm:"foreignKey:AccommodationTypeID" json:"accommodation_type,omitempty"`
	Images            []ListingImage     `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	StayDates         []StayDate         `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"stay_dates,omitempty"`
}

type ListingImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ListingID uint      `gorm:"not null;index" json:"listing_id"`
	URL       string    `gorm:"size:2048;not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// StayDate is an open window of bookable calendar time, StartDate <= EndDate.
type StayDate struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ListingID uint           `gorm:"not null;index" json:"listing_id"`
	StartDate datatypes.Date `gorm:"not null" json:"start_date"`
	EndDate   datatypes.Date `gorm:"not null" json:"end_date"`
}

// Favorite is the user <-> listing favoriting relation; the pair is unique.
type Favorite struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ListingID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}
