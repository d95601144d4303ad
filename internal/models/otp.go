package models

import "time"

type OTPPurpose string

const (
	PurposeEmailConfirmation OTPPurpose = "EmailConfirmation"
	PurposePasswordReset     OTPPurpose = "PasswordReset"
)

// OTP holds the single live code for a (user, purpose) pair. Issuing again
// overwrites Value and ExpiredDate in place.
type OTP struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_otp_user_title" json:"user_id"`
	Title       OTPPurpose `gorm:"type:varchar(50);not null;uniqueIndex:idx_otp_user_title" json:"title"`
	Value       int        `gorm:"not null" json:"-"`
	ExpiredDate time.Time  `gorm:"not null" json:"expired_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (o *OTP) IsExpired(now time.Time) bool {
	return o.ExpiredDate.Before(now)
}
