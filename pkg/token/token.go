package token

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrRevoked      = errors.New("token has been revoked")
)

type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// UserID returns the subject as a numeric user id.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

type Pair struct {
	Access  string
	Refresh string
}

// Blocklist stores revoked refresh token ids until they would have expired.
type Blocklist interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	Contains(ctx context.Context, jti string) (bool, error)
}

type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type Issuer struct {
	cfg       Config
	blocklist Blocklist
	now       func() time.Time
}

func NewIssuer(cfg Config, blocklist Blocklist) *Issuer {
	return &Issuer{cfg: cfg, blocklist: blocklist, now: time.Now}
}

func (i *Issuer) IssuePair(userID uint) (*Pair, error) {
	access, err := i.sign(userID, TypeAccess, i.cfg.AccessTTL, []byte(i.cfg.AccessSecret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := i.sign(userID, TypeRefresh, i.cfg.RefreshTTL, []byte(i.cfg.RefreshSecret))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &Pair{Access: access, Refresh: refresh}, nil
}

func (i *Issuer) ParseAccess(tokenStr string) (*Claims, error) {
	return i.parse(tokenStr, TypeAccess, []byte(i.cfg.AccessSecret))
}

// Refresh exchanges a live, non-revoked refresh token for a new access token.
func (i *Issuer) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := i.parse(refreshToken, TypeRefresh, []byte(i.cfg.RefreshSecret))
	if err != nil {
		return "", err
	}
	if i.blocklist != nil {
		revoked, err := i.blocklist.Contains(ctx, claims.ID)
		if err != nil {
			return "", fmt.Errorf("check blocklist: %w", err)
		}
		if revoked {
			return "", ErrRevoked
		}
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", err
	}
	return i.sign(userID, TypeAccess, i.cfg.AccessTTL, []byte(i.cfg.AccessSecret))
}

// Revoke blocklists a refresh token owned by userID. A token issued to
// anyone else is rejected as invalid.
func (i *Issuer) Revoke(ctx context.Context, userID uint, refreshToken string) error {
	claims, err := i.parse(refreshToken, TypeRefresh, []byte(i.cfg.RefreshSecret))
	if err != nil {
		return err
	}
	owner, err := claims.UserID()
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrInvalidToken
	}
	if i.blocklist == nil {
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(i.now())
	if ttl <= 0 {
		return nil
	}
	return i.blocklist.Add(ctx, claims.ID, ttl)
}

func (i *Issuer) sign(userID uint, tokenType string, ttl time.Duration, secret []byte) (string, error) {
	now := i.now()
	claims := Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (i *Issuer) parse(tokenStr, tokenType string, secret []byte) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || claims.Type != tokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
