package auth_test

import (
	"testing"
	"time"

	"hireflow-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("unit-test-secret", time.Hour)

	token, err := issuer.Issue(42, "a@b.c")
	require.NoError(t, err)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenRejection(t *testing.T) {
	issuer := auth.NewTokenIssuer("unit-test-secret", time.Hour)

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		other := auth.NewTokenIssuer("different-secret", time.Hour)
		token, err := other.Issue(42, "a@b.c")
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.Error(t, err)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		expired := auth.NewTokenIssuer("unit-test-secret", -time.Minute)
		token, err := expired.Issue(42, "a@b.c")
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.Error(t, err)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := issuer.Verify("not.a.token")
		assert.Error(t, err)
	})
}
