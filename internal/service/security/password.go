// Package security provides credential issuance, password encoding, and the
// store-scoped authorization evaluator.
package security

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordEncoder is a one-way encoding function for secrets at rest.
type PasswordEncoder interface {
	Encode(raw string) (string, error)
	Matches(raw, encoded string) bool
}

// BcryptEncoder encodes passwords with bcrypt.
type BcryptEncoder struct {
	cost int
}

// NewBcryptEncoder creates a BcryptEncoder. cost <= 0 selects bcrypt's
// default cost.
func NewBcryptEncoder(cost int) *BcryptEncoder {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptEncoder{cost: cost}
}

func (e *BcryptEncoder) Encode(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), e.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (e *BcryptEncoder) Matches(raw, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(raw)) == nil
}

var _ PasswordEncoder = (*BcryptEncoder)(nil)
