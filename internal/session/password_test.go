package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaintextVerifier(t *testing.T) {
	v := PlaintextVerifier{}

	ok, err := v.Verify("secret", "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Verify("secret", "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2Verifier(t *testing.T) {
	stored, err := HashArgon2("secret")
	require.NoError(t, err)
	assert.NotContains(t, stored, "secret")

	v := Argon2Verifier{}

	ok, err := v.Verify("secret", stored)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Verify("wrong", stored)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = v.Verify("secret", "not-a-hash")
	assert.Error(t, err)
}

func TestSchemeVerifierDispatch(t *testing.T) {
	v := NewSchemeVerifier()

	ok, err := v.Verify("abc", "plain:abc")
	require.NoError(t, err)
	assert.True(t, ok)

	hashed, err := HashArgon2("abc")
	require.NoError(t, err)
	ok, err = v.Verify("abc", "argon2:"+hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = v.Verify("abc", "bcrypt:whatever")
	assert.Error(t, err)

	_, err = v.Verify("abc", "no-scheme-prefix")
	assert.Error(t, err)
}
