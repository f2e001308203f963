package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt cost for admin passwords. Hashes stored with a lower
// cost are upgraded on the next successful login.
const Cost = bcrypt.DefaultCost

var (
	ErrInvalidPassword   = errors.New("invalid password")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrHashingPassword   = errors.New("error hashing password")
	ErrVerifyingPassword = errors.New("error verifying password")
)

// decoyHash is a hash of a random secret nobody knows, made once on first use.
var decoyHash = sync.OnceValue(func() string {
	hash, err := Hash(rand.Text())
	if err != nil {
		panic(err)
	}

	return hash
})

func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	return string(hash), nil
}

// Verify returns ErrInvalidPassword for any mismatch, an empty input
// included. Other errors mean the stored hash is unreadable.
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidPassword
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerifyingPassword, err)
	}

	return nil
}

// VerifyDecoy does the work of Verify against a hash no account owns. Login
// calls it for unknown identifiers so they take as long as a wrong password.
func VerifyDecoy(password string) error {
	return Verify(password, decoyHash())
}

// NeedsRehash reports whether hash was produced with a cost other than Cost.
func NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return false
	}

	return cost != Cost
}
