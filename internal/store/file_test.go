package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "google_token.json")
	fs := NewFileTokenStore(path)

	// Nothing stored yet: nil, nil.
	tok, err := fs.Read()
	require.NoError(t, err)
	assert.Nil(t, tok)

	in := &oauth2.Token{
		AccessToken:  "ya29.abc",
		RefreshToken: "1//refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, fs.Write(in))

	out, err := fs.Read()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.AccessToken, out.AccessToken)
	assert.Equal(t, in.RefreshToken, out.RefreshToken)
	assert.True(t, in.Expiry.Equal(out.Expiry))

	require.NoError(t, fs.Clear())
	tok, err = fs.Read()
	require.NoError(t, err)
	assert.Nil(t, tok)
	// Clearing twice is fine.
	assert.NoError(t, fs.Clear())
}

func TestFileTokenStoreRejectsEmptyToken(t *testing.T) {
	fs := NewFileTokenStore(filepath.Join(t.TempDir(), "token.json"))
	assert.Error(t, fs.Write(nil))
	assert.Error(t, fs.Write(&oauth2.Token{}))
}
