package service

import (
	"fmt"
	"time"

	"canvaspad/internal/auth/model"
	"canvaspad/pkg/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager mints and verifies HS256 session tokens. Validity is purely
// a function of signature and expiry; there is no revocation list.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs {userId, email} claims with the configured lifetime.
func (tm *TokenManager) Issue(user *model.User) (string, error) {
	issued := tm.now()
	claims := model.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(tm.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. Malformed, badly signed, and
// expired tokens all collapse to ErrInvalidToken.
func (tm *TokenManager) Verify(tokenString string) (*model.Claims, error) {
	claims := &model.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, apperr.ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, apperr.ErrInvalidToken
	}
	return claims, nil
}
