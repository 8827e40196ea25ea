package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBearer(t *testing.T) {
	b, err := NewBearer("  secret-token  ")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "https://example.runbook.jp/api/books.json", nil)
	require.NoError(t, b.ApplyAuth(req))

	assert.Equal(t, "Bearer secret-token", req.Header.Get("Authorization"))
}

func TestNewBearer_EmptyToken(t *testing.T) {
	_, err := NewBearer("   ")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestBearer_NilHandler(t *testing.T) {
	var b *Bearer
	req, _ := http.NewRequest(http.MethodGet, "https://example.runbook.jp", nil)

	assert.ErrorIs(t, b.ApplyAuth(req), ErrMissingToken)
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestBearer_StringIsRedacted(t *testing.T) {
	b, _ := NewBearer("abcdefghijklmnop")
	assert.Equal(t, "Bearer abcd****", b.String())
	assert.NotContains(t, b.String(), "mnop")

	short, _ := NewBearer("abc")
	assert.Equal(t, "Bearer ****", short.String())
}
