package repository

import (
	"context"

	"github.com/pavelchamgl/booking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OTPRepository interface {
	Upsert(ctx context.Context, otp *models.OTP) error
	FindMatch(ctx context.Context, userID uint, title models.OTPPurpose, value int) (*models.OTP, error)
}

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{db: db}
}

// Upsert keeps one row per (user_id, title): a second issue overwrites the
// value and expiry of the existing row.
func (r *otpRepository) Upsert(ctx context.Context, otp *models.OTP) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "title"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expired_date", "updated_at"}),
	}).Create(otp).Error
}

func (r *otpRepository) FindMatch(ctx context.Context, userID uint, title models.OTPPurpose, value int) (*models.OTP, error) {
	var otp models.OTP
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND title = ? AND value = ?", userID, title, value).
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}
