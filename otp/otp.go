// Package otp generates and checks the one-time codes used to verify
// that a registering user controls their email address.
package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

// TTL is how long a freshly generated code stays valid.
const TTL = 10 * time.Minute

// Generate returns a 6-digit numeric code and its expiry timestamp.
// The expiry is always expressed in UTC.
func Generate() (string, time.Time) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic("otp: random source unavailable: " + err.Error())
	}
	code := strconv.FormatInt(n.Int64()+100000, 10)
	return code, time.Now().UTC().Add(TTL)
}

// Expired reports whether the stored expiry has passed. A nil expiry is
// always treated as expired. Comparison happens in UTC so a timestamp
// that lost its zone in storage is interpreted as UTC rather than local.
func Expired(expiresAt *time.Time) bool {
	if expiresAt == nil {
		return true
	}
	return time.Now().UTC().After(expiresAt.UTC())
}

// Verify checks a provided code against the stored one. It returns false
// on mismatch or expiry and never panics; the caller is responsible for
// clearing the stored code on success so it cannot be replayed.
func Verify(stored, provided string, expiresAt *time.Time) bool {
	if stored == "" || stored != provided {
		return false
	}
	return !Expired(expiresAt)
}
