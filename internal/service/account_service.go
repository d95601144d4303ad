package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pavelchamgl/booking/internal/models"
	"github.com/pavelchamgl/booking/internal/repository"
	"github.com/pavelchamgl/booking/pkg/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TokenIssuer interface {
	IssuePair(userID uint) (*token.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Revoke(ctx context.Context, userID uint, refreshToken string) error
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type ProfileInput struct {
	Username    string
	FullName    *string
	PhoneNumber *string
}

type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	RequestOTP(ctx context.Context, email string, purpose models.OTPPurpose) error
	ConfirmEmail(ctx context.Context, email, code string) (*models.User, *token.Pair, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	Login(ctx context.Context, email, password string) (*models.User, *token.Pair, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, userID uint, refreshToken string) error
	Profile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.User, error)
	DeleteAccount(ctx context.Context, userID uint) error
}

type accountService struct {
	userRepo repository.UserRepository
	otpSvc   OTPService
	tokens   TokenIssuer
	hashCost int
}

func NewAccountService(userRepo repository.UserRepository, otpSvc OTPService, tokens TokenIssuer) AccountService {
	return &accountService{
		userRepo: userRepo,
		otpSvc:   otpSvc,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register creates an unconfirmed account and sends the first
// EmailConfirmation code.
func (s *accountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// The account exists either way; the user can ask for a resend.
	if _, err := s.otpSvc.Issue(ctx, user, models.PurposeEmailConfirmation); err != nil {
		log.Printf("[Account] failed to issue confirmation code for user %d: %v", user.ID, err)
	}
	return user, nil
}

func (s *accountService) RequestOTP(ctx context.Context, email string, purpose models.OTPPurpose) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	_, err = s.otpSvc.Issue(ctx, user, purpose)
	return err
}

func (s *accountService) ConfirmEmail(ctx context.Context, email, code string) (*models.User, *token.Pair, error) {
	user, err := s.otpSvc.Validate(ctx, email, models.PurposeEmailConfirmation, code)
	if err != nil {
		return nil, nil, err
	}

	user.EmailConfirmed = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("confirm email: %w", err)
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *accountService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.otpSvc.Validate(ctx, email, models.PurposePasswordReset, code)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (*models.User, *token.Pair, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *accountService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return s.tokens.Refresh(ctx, refreshToken)
}

func (s *accountService) Logout(ctx context.Context, userID uint, refreshToken string) error {
	return s.tokens.Revoke(ctx, userID, refreshToken)
}

func (s *accountService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.FullName = in.FullName
	user.PhoneNumber = in.PhoneNumber
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPhoneTaken
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
