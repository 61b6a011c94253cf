package otp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"math/big"
)

const DefaultLength = 6

type GeneratorInterface interface {
	Generate(length int) (string, error)
	Digest(code string) string
	Verify(code, digest string) bool
}

type Generator struct{}

// Generate returns a string of length decimal digits, each drawn
// independently and uniformly from crypto/rand.
func (g *Generator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("otp length must be positive")
	}
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// Digest returns the hex-encoded SHA-256 of the code. Only the digest is ever
// persisted; the plaintext code exists just long enough to hand to the admin.
func (g *Generator) Digest(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func (g *Generator) Verify(code, digest string) bool {
	computed := g.Digest(code)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
