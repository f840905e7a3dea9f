package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid device token")
	ErrMissingSecret = errors.New("device token secret is not configured")
)

// DeviceClaims identify a provisioned kiosk and, optionally, the staff member
// signed in at it.
type DeviceClaims struct {
	DeviceID string `json:"device_id"`
	StaffID  string `json:"staff_id,omitempty"`
	jwt.RegisteredClaims
}

// IssueDeviceToken signs a token for a kiosk. A zero ttl issues a token that
// never expires.
func IssueDeviceToken(secret, deviceID string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := DeviceClaims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  deviceID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseDeviceToken verifies the signature and expiry and returns the claims.
func ParseDeviceToken(secret, tokenStr string) (*DeviceClaims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	claims := &DeviceClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.DeviceID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
