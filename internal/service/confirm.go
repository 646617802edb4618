package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"taskboard/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotConfirmed is returned when a delete lacks a valid confirmation.
var ErrNotConfirmed = errors.New("delete not confirmed")

// Confirmations issues and checks short-lived tokens proving the user
// answered "yes" to the delete prompt for one specific task.
type Confirmations struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// confirmClaims binds a token to a single task id.
type confirmClaims struct {
	jwt.RegisteredClaims
	TaskID int64 `json:"task_id"`
}

const confirmKeyLen = 32

// NewConfirmations uses secret as the signing key, or a random key when
// secret is empty.
func NewConfirmations(secret string, ttl time.Duration) (*Confirmations, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, confirmKeyLen)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate confirmation key: %w", err)
		}
	}
	return &Confirmations{key: key, ttl: ttl, now: time.Now}, nil
}

// Issue returns a token confirming deletion of task id.
func (c *Confirmations) Issue(id models.ID) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &confirmClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TaskID: int64(id),
	})
	return token.SignedString(c.key)
}

// Verify checks that token is valid, unexpired and issued for task id.
func (c *Confirmations) Verify(token string, id models.ID) error {
	if token == "" {
		return ErrNotConfirmed
	}
	parsed, err := jwt.ParseWithClaims(token, &confirmClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.key, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotConfirmed, err)
	}

	claims, ok := parsed.Claims.(*confirmClaims)
	if !ok || !parsed.Valid || models.ID(claims.TaskID) != id {
		return ErrNotConfirmed
	}
	return nil
}
