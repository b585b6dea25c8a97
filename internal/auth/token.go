package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rookgm/lunchorder/internal/models"
)

const tokenExpiration = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	Login   string `json:"login"`
	IsAdmin bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// Token creates and verifies HS256 signed tokens
type Token struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewAuthToken creates new Token instance
func NewAuthToken(key []byte) *Token {
	return &Token{
		key: key,
		ttl: tokenExpiration,
		now: time.Now,
	}
}

// CreateToken creates token for user
func (t *Token) CreateToken(user *models.User) (string, error) {
	now := t.now()
	c := claims{
		Login:   user.Login,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.key)
}

// VerifyToken checks token and returns its payload
func (t *Token) VerifyToken(tokenString string) (*models.TokenPayload, error) {
	c := claims{}
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.key, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	payload := &models.TokenPayload{
		ID:      c.ID,
		UserID:  userID,
		Login:   c.Login,
		IsAdmin: c.IsAdmin,
	}
	if c.IssuedAt != nil {
		payload.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		payload.ExpiredAt = c.ExpiresAt.Time
	}

	return payload, nil
}
