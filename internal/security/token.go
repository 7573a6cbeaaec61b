package security

import (
	"errors"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"proptrack-backend/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrUnknownRole  = errors.New("token carries an unknown role")
)

// UserClaims are the claims this backend reads from an externally issued
// bearer token. Issuance lives in the auth service; here the token is only
// validated and mapped to an actor.
type UserClaims struct {
	UserID int32  `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type TokenValidator interface {
	ValidateToken(tokenString string) (*UserClaims, error)
}

type tokenValidator struct {
	secret []byte
}

func NewTokenValidator(secret string) TokenValidator {
	return &tokenValidator{secret: []byte(secret)}
}

func (v *tokenValidator) ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// Populate UserID from Subject if the issuer only set the standard claim
	if claims.UserID == 0 && claims.Subject != "" {
		uid, _ := strconv.Atoi(claims.Subject)
		claims.UserID = int32(uid)
	}

	switch domain.Role(claims.Role) {
	case domain.RoleOwner, domain.RoleManager, domain.RoleRenter:
	default:
		return nil, ErrUnknownRole
	}

	return claims, nil
}
