package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/pavelchamgl/booking/internal/dto"
	"github.com/pavelchamgl/booking/internal/models"
	"github.com/pavelchamgl/booking/internal/repository"
	"github.com/pavelchamgl/booking/pkg/rabbitmq"
	"gorm.io/gorm"
)

const (
	otpMin = 1000
	otpMax = 9999
)

// Notifier hands a message to the out-of-band delivery channel.
type Notifier interface {
	Publish(routingKey string, payload any) error
}

type OTPService interface {
	Issue(ctx context.Context, user *models.User, purpose models.OTPPurpose) (*models.OTP, error)
	Validate(ctx context.Context, email string, purpose models.OTPPurpose, code string) (*models.User, error)
}

type otpService struct {
	userRepo repository.UserRepository
	otpRepo  repository.OTPRepository
	notifier Notifier
	lifetime time.Duration
	now      func() time.Time
	generate func() (int, error)
}

func NewOTPService(userRepo repository.UserRepository, otpRepo repository.OTPRepository, notifier Notifier, lifetime time.Duration) OTPService {
	return &otpService{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		notifier: notifier,
		lifetime: lifetime,
		now:      time.Now,
		generate: generateCode,
	}
}

func generateCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + otpMin, nil
}

// Issue mints a fresh code for (user, purpose), overwriting any existing one,
// and queues it for delivery. Delivery failures are logged, not returned.
func (s *otpService) Issue(ctx context.Context, user *models.User, purpose models.OTPPurpose) (*models.OTP, error) {
	value, err := s.generate()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	subject, body, err := renderOTPMessage(purpose, user.Username, value)
	if err != nil {
		return nil, err
	}

	otp := &models.OTP{
		UserID:      user.ID,
		Title:       purpose,
		Value:       value,
		ExpiredDate: s.now().Add(s.lifetime),
	}
	if err := s.otpRepo.Upsert(ctx, otp); err != nil {
		return nil, fmt.Errorf("store otp: %w", err)
	}

	if s.notifier != nil {
		msg := dto.EmailMessage{
			To:      user.Email,
			Subject: subject,
			Body:    body,
		}
		if err := s.notifier.Publish(rabbitmq.RoutingKeyEmail, msg); err != nil {
			log.Printf("[OTP] failed to queue %s code for user %d: %v", purpose, user.ID, err)
		}
	}

	return otp, nil
}

// Validate checks a submitted code. A matching code stays valid until it
// expires or is overwritten by the next Issue.
func (s *otpService) Validate(ctx context.Context, email string, purpose models.OTPPurpose, code string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	value, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return nil, ErrInvalidOTP
	}

	otp, err := s.otpRepo.FindMatch(ctx, user.ID, purpose, value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, fmt.Errorf("find otp: %w", err)
	}
	if otp.IsExpired(s.now()) {
		return nil, ErrExpiredOTP
	}

	return user, nil
}

func renderOTPMessage(purpose models.OTPPurpose, username string, value int) (string, string, error) {
	switch purpose {
	case models.PurposeEmailConfirmation:
		return "Email Confirmation",
			fmt.Sprintf("Hi %s! You can confirm your email by using code: %d", username, value), nil
	case models.PurposePasswordReset:
		return "Password Reset",
			fmt.Sprintf("Hi %s! Use code %d to reset your password. If you did not request a reset, ignore this email.", username, value), nil
	default:
		return "", "", ErrUnknownPurpose
	}
}
