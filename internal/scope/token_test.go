package scope

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret")

	token, scopeID, err := issuer.Issue()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, err = uuid.Parse(scopeID)
	assert.NoError(t, err, "scope id should be a uuid")

	verified, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, scopeID, verified)
}

func TestIssuer_Verify(t *testing.T) {
	issuer := NewIssuer("test-secret")
	token, _, err := issuer.Issue()
	require.NoError(t, err)

	t.Run("TamperedToken", func(t *testing.T) {
		_, err := issuer.Verify(token + "x")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewIssuer("other-secret")
		_, err := other.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("EmptyToken", func(t *testing.T) {
		_, err := issuer.Verify("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("NotAJWT", func(t *testing.T) {
		_, err := issuer.Verify("definitely-not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestContextRoundTrip(t *testing.T) {
	ctx := WithID(context.Background(), "scope-1")
	assert.Equal(t, "scope-1", IDFrom(ctx))
	assert.Empty(t, IDFrom(context.Background()))
}
