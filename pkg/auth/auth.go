package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/ministryos/scheduler-api-go/pkg/config"
	"github.com/ministryos/scheduler-api-go/pkg/database"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var jwtAlgorithm = jwt.SigningMethodHS256

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service signs admin tokens and API keys using the configured secrets
type Service struct {
	jwtSecret    []byte
	masterSecret []byte
}

// NewService creates an auth service from the loaded configuration
func NewService(cfg config.Config) *Service {
	return &Service{
		jwtSecret:    []byte(cfg.JWTSecret),
		masterSecret: []byte(cfg.APIMasterSecret),
	}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateToken creates a new JWT token for an admin user
func (s *Service) CreateToken(username string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken verifies a JWT token
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// GenerateHMACKey creates a signed API key for an owner using HMAC-SHA256.
// The owner id doubles as the tenant id for roster scoping.
func (s *Service) GenerateHMACKey(ownerID string) string {
	h := hmac.New(sha256.New, s.masterSecret)
	h.Write([]byte(ownerID))
	signature := hex.EncodeToString(h.Sum(nil))
	return ownerID + "." + signature
}

// VerifyHMACKey validates an HMAC-signed API key and returns the owner id
func (s *Service) VerifyHMACKey(key string) (string, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", errors.New("invalid key format")
	}

	ownerID := parts[0]
	providedSignature := parts[1]

	h := hmac.New(sha256.New, s.masterSecret)
	h.Write([]byte(ownerID))
	expectedSignature := hex.EncodeToString(h.Sum(nil))

	// Constant-time comparison to prevent timing attacks
	if !hmac.Equal([]byte(providedSignature), []byte(expectedSignature)) {
		return "", errors.New("invalid signature")
	}

	return ownerID, nil
}

// EnsureAdminExists checks if any admin exists, if not create one from the configuration.
func EnsureAdminExists(db *gorm.DB, cfg config.Config) error {
	var count int64
	db.Model(&database.MasterUser{}).Count(&count)

	if count == 0 {
		hash, err := HashPassword(cfg.AdminPassword)
		if err != nil {
			return err
		}

		user := database.MasterUser{
			Username:     cfg.AdminUsername,
			PasswordHash: hash,
		}

		err = db.Create(&user).Error
		if err == nil {
			println("Default admin user created: " + cfg.AdminUsername)
		}
		return err
	}
	return nil
}
