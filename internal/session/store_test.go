package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAndGet(t *testing.T) {
	st := NewStore(time.Minute)

	s := st.Create()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, StateAwaitingCredentials, s.State())

	got, ok := st.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, st.Count())
}

func TestStoreGetUnknownID(t *testing.T) {
	st := NewStore(time.Minute)
	_, ok := st.Get("no-such-session")
	assert.False(t, ok)
}

func TestStoreExpiry(t *testing.T) {
	st := NewStore(20 * time.Millisecond)
	s := st.Create()

	time.Sleep(40 * time.Millisecond)
	_, ok := st.Get(s.ID)
	assert.False(t, ok)
}

func TestMergeCredentialsKeepsExisting(t *testing.T) {
	s := newSession("s1")
	s.MergeCredentials(Credentials{ModelAPIKey: "sk-old", VectorDBURL: "http://localhost:6333"})
	merged := s.MergeCredentials(Credentials{VectorDBAPIKey: "qd-key"})

	assert.Equal(t, "sk-old", merged.ModelAPIKey)
	assert.Equal(t, "http://localhost:6333", merged.VectorDBURL)
	assert.Equal(t, "qd-key", merged.VectorDBAPIKey)
}

func TestMarkProcessedDeduplicates(t *testing.T) {
	s := newSession("s1")
	assert.True(t, s.MarkProcessed("contract.pdf"))
	assert.False(t, s.MarkProcessed("contract.pdf"))
	assert.True(t, s.IsProcessed("contract.pdf"))
	assert.Equal(t, 1, s.ProcessedCount())
}

func TestBeginActionIsExclusive(t *testing.T) {
	s := newSession("s1")
	require.True(t, s.BeginAction())
	assert.False(t, s.BeginAction())
	s.EndAction()
	assert.True(t, s.BeginAction())
}
