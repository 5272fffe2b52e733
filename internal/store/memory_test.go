package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreTranscriptTrim(t *testing.T) {
	ms := NewMemoryStore(3)
	for _, c := range []string{"one", "two", "three", "four"} {
		ms.Append("s1", Message{Role: "user", Content: c})
	}
	msgs := ms.Get("s1")
	assert.Len(t, msgs, 3)
	assert.Equal(t, "two", msgs[0].Content)
	assert.Equal(t, "four", msgs[2].Content)

	// Get returns a copy; mutating it must not affect the store.
	msgs[0].Content = "mutated"
	assert.Equal(t, "two", ms.Get("s1")[0].Content)
}

func TestMemoryStoreOAuthState(t *testing.T) {
	ms := NewMemoryStore(10)
	ms.SetOAuthState("s1", "state-abc")

	assert.Equal(t, "state-abc", ms.GetOAuthState("s1"))
	assert.Equal(t, "s1", ms.GetSessionByOAuthState("state-abc"))

	ms.ClearOAuthState("s1")
	assert.Empty(t, ms.GetOAuthState("s1"))
	assert.Empty(t, ms.GetSessionByOAuthState("state-abc"))
}

func TestMemoryStoreAccount(t *testing.T) {
	ms := NewMemoryStore(10)
	assert.Empty(t, ms.GetAccount("s1"))
	ms.SetAccount("s1", "user@example.com")
	assert.Equal(t, "user@example.com", ms.GetAccount("s1"))
}

func TestPendingIntent(t *testing.T) {
	ms := NewMemoryStore(10)

	_, ok := ms.GetPendingIntent("s1")
	assert.False(t, ok)

	ms.SetPendingIntent("s1", "call")
	kind, ok := ms.GetPendingIntent("s1")
	assert.True(t, ok)
	assert.Equal(t, "call", kind)

	ms.ClearPendingIntent("s1")
	_, ok = ms.GetPendingIntent("s1")
	assert.False(t, ok)
}

func TestPendingIntentExpires(t *testing.T) {
	old := pendingTTL
	pendingTTL = 10 * time.Millisecond
	defer func() { pendingTTL = old }()

	ms := NewMemoryStore(10)
	ms.SetPendingIntent("s1", "call")
	time.Sleep(20 * time.Millisecond)

	_, ok := ms.GetPendingIntent("s1")
	assert.False(t, ok)
}
