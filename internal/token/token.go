// Package token issues and verifies the signed credentials used by the API:
// short-lived access tokens and longer-lived refresh tokens, plus password
// hashing.
package token

import (
	"fmt"
	"strconv"
	"time"

	"vidtube/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	issuer   = "vidtube-api"
	audience = "vidtube-client"

	// bcryptCost matches the work factor used at account creation.
	bcryptCost = 10
)

// Identity is the caller identity embedded in an access token.
type Identity struct {
	ID       uint
	Email    string
	Username string
	FullName string
}

// Service signs and verifies access and refresh tokens with two independent
// secret/expiry pairs.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewService creates a token service.
func NewService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// HashPassword hashes a plaintext password with bcrypt.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func (s *Service) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueAccessToken signs a short-lived token embedding the user's identity.
func (s *Service) IssueAccessToken(u *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       strconv.FormatUint(uint64(u.ID), 10),
		"email":     u.Email,
		"username":  u.Username,
		"full_name": u.FullName,
		"iss":       issuer,
		"aud":       audience,
		"exp":       now.Add(s.accessTTL).Unix(),
		"iat":       now.Unix(),
		"nbf":       now.Unix(),
		"jti":       uuid.New().String(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.accessSecret)
}

// IssueRefreshToken signs a longer-lived token embedding the user ID only.
func (s *Service) IssueRefreshToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": issuer,
		"aud": audience,
		"exp": now.Add(s.refreshTTL).Unix(),
		"iat": now.Unix(),
		"jti": uuid.New().String(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.refreshSecret)
}

// VerifyAccessToken checks signature and expiry and returns the embedded identity.
func (s *Service) VerifyAccessToken(tokenString string) (*Identity, error) {
	claims, err := s.parse(tokenString, s.accessSecret)
	if err != nil {
		return nil, err
	}

	id, err := subjectID(claims)
	if err != nil {
		return nil, err
	}

	identity := &Identity{ID: id}
	if v, ok := claims["email"].(string); ok {
		identity.Email = v
	}
	if v, ok := claims["username"].(string); ok {
		identity.Username = v
	}
	if v, ok := claims["full_name"].(string); ok {
		identity.FullName = v
	}
	return identity, nil
}

// VerifyRefreshToken checks signature and expiry and returns the user ID.
func (s *Service) VerifyRefreshToken(tokenString string) (uint, error) {
	claims, err := s.parse(tokenString, s.refreshSecret)
	if err != nil {
		return 0, err
	}
	return subjectID(claims)
}

func (s *Service) parse(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid token claims")
	}
	return claims, nil
}

func subjectID(claims jwt.MapClaims) (uint, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid subject claim")
	}
	id, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}
	return uint(id), nil
}
