package otp

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Produces6DigitCode(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		code, expiresAt := Generate()

		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)

		assert.Equal(t, time.UTC, expiresAt.Location())
		assert.WithinDuration(t, time.Now().UTC().Add(TTL), expiresAt, 2*time.Second)
	}
}

func TestVerify_MatchingCodeBeforeExpiry(t *testing.T) {
	t.Parallel()

	expiresAt := time.Now().UTC().Add(5 * time.Minute)
	assert.True(t, Verify("123456", "123456", &expiresAt))
}

func TestVerify_MismatchFails(t *testing.T) {
	t.Parallel()

	expiresAt := time.Now().UTC().Add(5 * time.Minute)
	assert.False(t, Verify("123456", "654321", &expiresAt))
	assert.False(t, Verify("", "123456", &expiresAt))
}

func TestVerify_ExpiredCodeFails(t *testing.T) {
	t.Parallel()

	expiresAt := time.Now().UTC().Add(-time.Second)
	assert.False(t, Verify("123456", "123456", &expiresAt))
}

func TestVerify_NilExpiryIsAlwaysExpired(t *testing.T) {
	t.Parallel()

	assert.False(t, Verify("123456", "123456", nil))
	assert.True(t, Expired(nil))
}

func TestVerify_ExpiryZoneDoesNotMatter(t *testing.T) {
	t.Parallel()

	// the same instant expressed in another zone must verify identically
	utc := time.Now().UTC().Add(5 * time.Minute)
	shifted := utc.In(time.FixedZone("UTC-8", -8*60*60))

	assert.True(t, Verify("123456", "123456", &utc))
	assert.True(t, Verify("123456", "123456", &shifted))

	pastShifted := time.Now().UTC().Add(-5 * time.Minute).In(time.FixedZone("UTC+9", 9*60*60))
	assert.False(t, Verify("123456", "123456", &pastShifted))
}
