// Package secret decides how a password is kept in the users collection
// and how a login attempt is checked against it.
//
// Plain keeps the password verbatim, which is the on-device format the
// notes app has always used. Bcrypt is the salted one-way alternative for
// deployments that can afford to break compatibility with existing data.
package secret

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a password into its stored form and checks candidates.
type Hasher interface {
	Seal(password string) (string, error)
	Match(stored, candidate string) bool
}

// Plain stores passwords as they are.
type Plain struct{}

func (Plain) Seal(password string) (string, error) { return password, nil }

func (Plain) Match(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// Bcrypt stores bcrypt hashes. A zero Cost means bcrypt.DefaultCost.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Seal(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (Bcrypt) Match(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}

// ForName maps the config value to a Hasher; anything but "bcrypt" is Plain.
func ForName(name string) Hasher {
	if name == "bcrypt" {
		return Bcrypt{}
	}
	return Plain{}
}
