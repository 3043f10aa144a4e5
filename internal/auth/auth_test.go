package auth

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token := Token(42)
	uid, ok := ParseToken(token)
	require.True(t, ok)
	assert.Equal(t, uint(42), uid)
}

func TestTamperedTokenRejected(t *testing.T) {
	token := Token(42)
	// flip the payload but keep the signature
	forged := "43." + strings.SplitN(token, ".", 2)[1]
	_, ok := ParseToken(forged)
	assert.False(t, ok)

	_, ok = ParseToken("garbage")
	assert.False(t, ok)
	_, ok = ParseToken("")
	assert.False(t, ok)
}

func TestSetSecretRotatesSignatures(t *testing.T) {
	t.Cleanup(func() { secret = "devtokensecret" })

	old := Token(42)
	SetSecret("rotated")
	_, ok := ParseToken(old)
	assert.False(t, ok, "token signed under the previous secret must not verify")

	uid, ok := ParseToken(Token(42))
	require.True(t, ok)
	assert.Equal(t, uint(42), uid)

	// empty value keeps the current secret
	SetSecret("")
	_, ok = ParseToken(Token(42))
	assert.True(t, ok)
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	_, ok := BearerToken(r)
	assert.False(t, ok)

	r.Header.Set("Authorization", "Bearer abc.def")
	token, ok := BearerToken(r)
	require.True(t, ok)
	assert.Equal(t, "abc.def", token)

	r.Header.Set("Authorization", "Basic abc")
	_, ok = BearerToken(r)
	assert.False(t, ok)
}
