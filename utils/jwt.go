package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"roomly/config"

	"github.com/golang-jwt/jwt"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	return []byte(secret)
}

// GenerateAccessToken creates a signed short-lived access token for the given user.
func GenerateAccessToken(userID string) (string, error) {
	ttl := time.Duration(config.AppConfig.AccessTokenMinutes) * time.Minute
	return generateToken(userID, TokenTypeAccess, ttl)
}

// GenerateRefreshToken creates a signed long-lived refresh token for the given user.
func GenerateRefreshToken(userID string) (string, error) {
	ttl := time.Duration(config.AppConfig.RefreshTokenDays) * 24 * time.Hour
	return generateToken(userID, TokenTypeRefresh, ttl)
}

func generateToken(subject, tokenType string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"type": tokenType,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if typ, _ := claims["type"].(string); typ != wantType {
		return nil, errors.New("unexpected token type")
	}
	return claims, nil
}

// ExtractIDFromToken extracts the subject from a valid token of the given type.
func ExtractIDFromToken(tokenString, wantType string) (string, error) {
	claims, err := ValidateToken(tokenString, wantType)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}

// TokenRemainingTTL returns how long the token's "exp" claim is still valid for.
func TokenRemainingTTL(claims jwt.MapClaims) time.Duration {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return 0
	}
	remaining := time.Until(time.Unix(int64(exp), 0))
	if remaining < 0 {
		return 0
	}
	return remaining
}
