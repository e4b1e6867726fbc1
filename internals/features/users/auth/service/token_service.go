package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	userModel "videoach_backend/internals/features/users/user/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour

	// clock skew tolerated when checking exp
	expirySkew = 30 * time.Second
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
	ErrNoSecret     = errors.New("jwt secret is not set")
)

// AccessClaims is what the auth middleware needs from an access token.
type AccessClaims struct {
	UserID    uuid.UUID
	Role      string
	UserName  string
	ExpiresAt time.Time
}

func buildAccessClaims(user userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":       "access",
		"sub":       user.ID.String(),
		"id":        user.ID.String(),
		"role":      user.Role,
		"user_name": user.UserName,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		"id":  userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

// SignAccessToken issues an HS256 access token for user.
func SignAccessToken(user userModel.UserModel, secret string, now time.Time) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrNoSecret
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user, now)).SignedString([]byte(secret))
}

func SignRefreshToken(userID uuid.UUID, secret string, now time.Time) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrNoSecret
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(userID, now)).SignedString([]byte(secret))
}

func parseHS256(tok, secret string) (jwt.MapClaims, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNoSecret
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	if _, err := parser.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return claims, nil
}

func claimExpiry(claims jwt.MapClaims) (time.Time, error) {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: no exp", ErrTokenInvalid)
	}
	return time.Unix(int64(exp), 0).UTC(), nil
}

// ParseAccessToken verifies signature, type and expiry of an access token.
func ParseAccessToken(tok, secret string, now time.Time) (*AccessClaims, error) {
	claims, err := parseHS256(tok, secret)
	if err != nil {
		return nil, err
	}
	if typ, _ := claims["typ"].(string); typ != "" && typ != "access" {
		return nil, fmt.Errorf("%w: wrong token type %q", ErrTokenInvalid, typ)
	}
	exp, err := claimExpiry(claims)
	if err != nil {
		return nil, err
	}
	if now.After(exp.Add(expirySkew)) {
		return nil, ErrTokenExpired
	}
	idStr, _ := claims["id"].(string)
	id, err := uuid.Parse(strings.TrimSpace(idStr))
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id", ErrTokenInvalid)
	}
	out := &AccessClaims{UserID: id, ExpiresAt: exp}
	out.Role, _ = claims["role"].(string)
	out.UserName, _ = claims["user_name"].(string)
	return out, nil
}

// ParseRefreshToken returns the user id carried by a valid refresh token.
func ParseRefreshToken(tok, secret string, now time.Time) (uuid.UUID, error) {
	claims, err := parseHS256(tok, secret)
	if err != nil {
		return uuid.Nil, err
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return uuid.Nil, fmt.Errorf("%w: not a refresh token", ErrTokenInvalid)
	}
	exp, err := claimExpiry(claims)
	if err != nil {
		return uuid.Nil, err
	}
	if now.After(exp) {
		return uuid.Nil, ErrTokenExpired
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", ErrTokenInvalid)
	}
	return id, nil
}

// BlacklistTTL keeps a logged-out token blocked until a minute past its expiry.
func BlacklistTTL(tok, secret string, now time.Time) time.Duration {
	const fallback = 2 * time.Minute
	claims, err := parseHS256(tok, secret)
	if err != nil {
		return fallback
	}
	exp, err := claimExpiry(claims)
	if err != nil {
		return fallback
	}
	if until := exp.Sub(now); until > 0 {
		return until + time.Minute
	}
	return time.Minute
}

func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}
