package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shashiranjanraj/automart/config"
	"golang.org/x/crypto/bcrypt"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var ErrWrongTokenType = errors.New("auth: wrong token type")

// Claims holds the typed JWT payload.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair is what register and login hand back to the client.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

// GenerateToken creates a signed access token for the given user.
func GenerateToken(userID uint, role string) (string, error) {
	return sign(userID, role, TypeAccess, config.AccessTokenTTL())
}

// GenerateRefreshToken creates a longer-lived token used to refresh access.
func GenerateRefreshToken(userID uint, role string) (string, error) {
	return sign(userID, role, TypeRefresh, config.RefreshTokenTTL())
}

// IssuePair mints an access and a refresh token for the user.
func IssuePair(userID uint, role string) (TokenPair, error) {
	access, err := GenerateToken(userID, role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("auth: access token: %w", err)
	}
	refresh, err := GenerateRefreshToken(userID, role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("auth: refresh token: %w", err)
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func sign(userID uint, role, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses and validates a JWT string of any type.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// ValidateAccess accepts only access tokens.
func ValidateAccess(t string) (*Claims, error) {
	return validateType(t, TypeAccess)
}

// ValidateRefresh accepts only refresh tokens.
func ValidateRefresh(t string) (*Claims, error) {
	return validateType(t, TypeRefresh)
}

func validateType(t, typ string) (*Claims, error) {
	claims, err := ValidateToken(t)
	if err != nil {
		return nil, err
	}
	if claims.Type != typ {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// dummyHash is compared against when the username does not exist, so a
// failed lookup costs the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("automart-dummy-password"), bcrypt.DefaultCost)

// CheckPasswordTiming is CheckPassword for a possibly missing account.
// An empty hash always fails after a full bcrypt comparison.
func CheckPasswordTiming(hash, plain string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
		return false
	}
	return CheckPassword(hash, plain)
}
