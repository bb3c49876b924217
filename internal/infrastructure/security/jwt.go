package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ValidateJWT validates a JWT token and returns the claims
func ValidateJWT(tokenString, jwtSecret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GeneratePreviewToken mints the signed token binding a client to a snapshot
// id. The snapshot id is the token's only discretionary content; everything
// else is standard timing claims.
func GeneratePreviewToken(snapshotID, jwtSecret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"snapshotId": snapshotID,
		"type":       "preview",
		"iat":        time.Now().UTC().Unix(),
		"exp":        time.Now().UTC().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// SnapshotIDFromPreviewToken decodes and validates a preview token, returning
// the bound snapshot id. An absent, malformed, tampered, or expired token
// yields ok=false; that is treated as "no active preview", never as an error.
func SnapshotIDFromPreviewToken(tokenString, jwtSecret string) (string, bool) {
	if tokenString == "" {
		return "", false
	}
	claims, err := ValidateJWT(tokenString, jwtSecret)
	if err != nil {
		return "", false
	}
	if tokenType, _ := claims["type"].(string); tokenType != "preview" {
		return "", false
	}
	snapshotID, _ := claims["snapshotId"].(string)
	if snapshotID == "" {
		return "", false
	}
	return snapshotID, true
}

// GenerateAuthToken creates a JWT token for an authenticated editor role.
func GenerateAuthToken(role, jwtSecret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"role": role,
		"type": "editor_auth",
		"iat":  time.Now().UTC().Unix(),
		"exp":  time.Now().UTC().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// RoleFromAuthToken decodes and validates an auth token, returning the role.
func RoleFromAuthToken(tokenString, jwtSecret string) (string, bool) {
	if tokenString == "" {
		return "", false
	}
	claims, err := ValidateJWT(tokenString, jwtSecret)
	if err != nil {
		return "", false
	}
	if tokenType, _ := claims["type"].(string); tokenType != "editor_auth" {
		return "", false
	}
	role, _ := claims["role"].(string)
	if role == "" {
		return "", false
	}
	return role, true
}
