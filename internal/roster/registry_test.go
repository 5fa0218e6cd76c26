package roster

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commentgen/internal/dataset"
)

func sampleRows(n int) []dataset.Row {
	rows := make([]dataset.Row, n)
	for i := range rows {
		rows[i] = dataset.Row{"이름": fmt.Sprintf("학생%d", i), "Q1": "응답"}
	}
	return rows
}

func TestRegisterAssignsDistinctIDsInOrder(t *testing.T) {
	r := NewRegistry()
	students := r.Register(sampleRows(50), &dataset.Schema{Identity: []string{"이름"}, Criteria: []string{"Q1"}})

	require.Len(t, students, 50)
	seen := make(map[string]bool)
	for i, s := range students {
		assert.Equal(t, fmt.Sprintf("학생%d", i), s.Field("이름"), "row order preserved")
		assert.NotEmpty(t, s.ID)
		assert.False(t, seen[s.ID], "id %s reused", s.ID)
		seen[s.ID] = true
	}
}

func TestReRegisterProducesDisjointIDs(t *testing.T) {
	r := NewRegistry()
	first := r.Register(sampleRows(5), nil)
	firstIDs := make(map[string]bool)
	for _, s := range first {
		firstIDs[s.ID] = true
	}

	second := r.Register(sampleRows(5), nil)
	require.Len(t, second, 5)
	for _, s := range second {
		assert.False(t, firstIDs[s.ID], "re-upload must not reuse ids")
	}
	assert.Equal(t, 5, r.Len())
}

func TestLookup(t *testing.T) {
	r := NewRegistry()
	students := r.Register(sampleRows(3), nil)

	got, ok := r.Lookup(students[1].ID)
	require.True(t, ok)
	assert.Equal(t, students[1].Field("이름"), got.Field("이름"))

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}
