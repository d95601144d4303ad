package service

import "errors"

var (
	ErrListingNotFound    = errors.New("accommodation not found")
	ErrListingUnavailable = errors.New("accommodation is not available for booking")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrAlreadyCancelled   = errors.New("booking is already cancelled")
	ErrInvalidCategory    = errors.New("unknown booking category")
	ErrInvalidDates       = errors.New("departure_date must not be before arrival_date")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrPhoneTaken         = errors.New("user with this phone number already exists")
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrInvalidOTP         = errors.New("invalid OTP or it does not match the user")
	ErrExpiredOTP         = errors.New("OTP has expired")
	ErrUnknownPurpose     = errors.New("unknown OTP purpose")

	ErrNoImages        = errors.New("at least one image is required")
	ErrStorageDisabled = errors.New("image storage is not configured")
)
