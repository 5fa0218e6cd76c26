package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreNeverEmpty(t *testing.T) {
	s := NewStore()
	require.Equal(t, 2, s.Len())

	// Remove everything we can; the required sample must survive.
	for _, sm := range s.Samples() {
		s.Remove(sm.ID)
	}
	require.Equal(t, 1, s.Len())
	assert.True(t, s.Samples()[0].Required)

	// Removing the sole remaining sample is a no-op.
	s.Remove(s.Samples()[0].ID)
	assert.Equal(t, 1, s.Len())
}

func TestRemoveKeepsRequiredSample(t *testing.T) {
	s := NewStore()

	// The required sample stays even while optional ones exist, so Ready
	// can never become vacuously true with every text empty.
	s.Remove(1)
	require.Equal(t, 2, s.Len())

	hasRequired := false
	for _, sm := range s.Samples() {
		if sm.Required {
			hasRequired = true
		}
	}
	assert.True(t, hasRequired, "collection must keep its required sample")
	assert.False(t, s.Ready(), "empty required sample must keep blocking the workflow")
}

func TestAddAssignsMonotonicIDs(t *testing.T) {
	s := NewStore()
	a := s.Add()
	b := s.Add()
	assert.Greater(t, b.ID, a.ID)

	seen := make(map[int]bool)
	for _, sm := range s.Samples() {
		assert.False(t, seen[sm.ID])
		seen[sm.ID] = true
	}
}

func TestUpdateAndTexts(t *testing.T) {
	s := NewStore()
	samples := s.Samples()
	s.Update(samples[0].ID, "  ")
	s.Update(samples[1].ID, "성실하게 생활함.")

	assert.Equal(t, []string{"성실하게 생활함."}, s.Texts())
}

func TestReady(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Ready(), "required sample empty")

	s.Update(1, "   ")
	assert.False(t, s.Ready(), "whitespace does not satisfy the requirement")

	s.Update(1, "평소 명랑하고 긍정적인 태도가 돋보임.")
	assert.True(t, s.Ready())
}

func TestRestoreResumesIDCounter(t *testing.T) {
	s := NewStore()
	s.Restore([]Sample{{ID: 7, Text: "a", Required: true}})
	added := s.Add()
	assert.Equal(t, 8, added.ID)

	// Restoring an empty slice keeps the current collection.
	s.Restore(nil)
	assert.Equal(t, 2, s.Len())
}
