// Package keygen derives the 8-character share keys that gate anonymous
// access to a vault, and generates the per-session salts that rotate them.
//
// The derivation is a 32-bit non-keyed hash kept bit-compatible with the
// historical JavaScript implementation: issued share links must stay
// reproducible across restarts and platforms. It is not suitable for
// producing unguessable secrets and must not be treated as one.
package keygen

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LegacySeed is appended to the identifier when an account has no session
// salt yet (accounts created before salt rotation was introduced).
const LegacySeed = "cloudvault-legacy"

// legacyBucketSeconds is the width of the time bucket of the pre-salt token
// scheme (four hours).
const legacyBucketSeconds = 4 * 60 * 60

const (
	saltLength   = 16
	saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Derive maps (identifier, salt) to an uppercase hex key of at most 8
// characters. An empty salt substitutes LegacySeed. Deterministic: no
// randomness, no clock.
func Derive(identifier, salt string) string {
	if salt == "" {
		salt = LegacySeed
	}
	return hashSeed(identifier + salt)
}

// DeriveLegacy computes the old time-bucketed variant, keyed on
// floor(unix/14400) instead of a salt. Kept only so keys issued by the
// pre-salt scheme remain verifiable.
func DeriveLegacy(identifier string, now time.Time) string {
	bucket := now.Unix() / legacyBucketSeconds
	return hashSeed(identifier + strconv.FormatInt(bucket, 10))
}

// hashSeed runs the 32-bit accumulator over the seed's code points.
// Go's int32 arithmetic wraps two's-complement at every step (shift,
// subtraction, addition), which is exactly the JS `hash |= 0` behavior.
func hashSeed(seed string) string {
	var acc int32
	for _, r := range seed {
		acc = (acc<<5 - acc) + r
	}
	v := int64(acc)
	if v < 0 {
		v = -v
	}
	s := strings.ToUpper(strconv.FormatInt(v, 16))
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}

// NewSalt returns a fresh 16-character alphanumeric session salt drawn from
// crypto/rand.
func NewSalt() (string, error) {
	buf := make([]byte, saltLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("keygen: read random: %w", err)
	}
	for i, b := range buf {
		buf[i] = saltAlphabet[int(b)%len(saltAlphabet)]
	}
	return string(buf), nil
}
