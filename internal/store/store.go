// Package store holds the persistence adapters: PostgreSQL or SQLite for
// registrations and admin credentials, MongoDB for marketing content and
// gallery metadata, MinIO for gallery bytes and Redis for admin sessions.
package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrNotFound is returned by lookups that address a single record by id.
var ErrNotFound = errors.New("not found")

func defaultNowNanos() int64 { return time.Now().UnixNano() }

// nowNanos is the creation-time clock for registrations. Tests swap it.
var nowNanos = defaultNowNanos

// normalizeEmail is the key stored in email_lower. Folding happens in Go
// so both backends agree on non-ASCII letters.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// compareHash is bcrypt's comparison. Tests swap it to observe calls.
var compareHash = bcrypt.CompareHashAndPassword

// passwordMatches reports whether password hashes to hashed. A malformed
// hash reads as a mismatch.
func passwordMatches(hashed, password string) bool {
	return compareHash([]byte(hashed), []byte(password)) == nil
}

// unknownAdminHash is compared against when the email has no admin row,
// so an unknown email costs the same bcrypt work as a wrong password.
var unknownAdminHash = sync.OnceValue(func() string {
	hashed, err := hashPassword("no admin has this password")
	if err != nil {
		panic(err)
	}
	return hashed
})

// rejectUnknownAdmin burns one bcrypt comparison and reports false.
func rejectUnknownAdmin(password string) bool {
	passwordMatches(unknownAdminHash(), password)
	return false
}
