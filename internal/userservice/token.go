package userservice

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the verified payload carried by the auth cookie. It is all a
// protected handler gets to know about the caller before touching any store.
type Claims struct {
	UserID   int    `json:"uid"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

func signToken(secret []byte, u *User, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID:   u.ID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// verifyToken resolves a signed credential to its claim set. It never panics
// and performs no I/O: a missing, malformed, expired, or tampered token is
// reported as ErrInvalidToken.
func verifyToken(secret []byte, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}

// SignToken issues the auth cookie value for a user.
func (s *UserService) SignToken(u *User) (string, error) {
	return signToken(s.secret, u, AuthTokenTime)
}

// VerifyToken gates every protected operation.
func (s *UserService) VerifyToken(token string) (*Claims, error) {
	return verifyToken(s.secret, token)
}
