package models

import "time"

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:150;not null" json:"username"`
	FullName       *string   `gorm:"size:150" json:"full_name"`
	Email          string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	PhoneNumber    *string   `gorm:"size:32;uniqueIndex" json:"phone_number"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	EmailConfirmed bool      `gorm:"not null;default:false" json:"email_confirmed"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"column:date_created" json:"date_created"`
	UpdatedAt      time.Time `gorm:"column:date_updated" json:"date_updated"`
}
