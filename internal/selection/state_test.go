package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commentgen/internal/dataset"
)

var schema = &dataset.Schema{
	Identity: []string{"이름"},
	Criteria: []string{"Q1", "Q2", "Q3"},
}

func TestVisitDefaultsUnselected(t *testing.T) {
	s := NewState()
	flags := s.Visit("a", schema.Criteria)
	require.Len(t, flags, 3)
	for key, on := range flags {
		assert.False(t, on, "%s must start unselected", key)
	}
}

func TestVisitReusesStoredFlags(t *testing.T) {
	s := NewState()
	s.Visit("a", schema.Criteria)
	s.ToggleCriterion("a", "Q2")

	flags := s.Visit("a", schema.Criteria)
	assert.True(t, flags["Q2"], "second visit keeps earlier toggles")
}

func TestToggleIsolatedBetweenStudents(t *testing.T) {
	s := NewState()
	s.Visit("a", schema.Criteria)
	s.Visit("b", schema.Criteria)

	s.ToggleCriterion("a", "Q1")
	s.ToggleCriterion("a", "Q3")

	for key, on := range s.Flags("b") {
		assert.False(t, on, "student b's %s flag changed", key)
	}
	assert.True(t, s.Flags("a")["Q1"])
	assert.True(t, s.Flags("a")["Q3"])
	assert.False(t, s.Flags("a")["Q2"])
}

func TestSelectedKeepsAppearanceOrder(t *testing.T) {
	s := NewState()
	s.Visit("a", schema.Criteria)
	s.ToggleCriterion("a", "Q3")
	s.ToggleCriterion("a", "Q1")

	assert.Equal(t, []string{"Q1", "Q3"}, s.Selected("a", schema))
}

func TestTraitToggleAndClear(t *testing.T) {
	s := NewState()
	s.ToggleTrait("끈기")
	s.ToggleTrait("성실함")
	assert.Equal(t, []string{"성실함", "끈기"}, s.SelectedTraits(), "canonical order")

	s.ToggleTrait("끈기")
	assert.Equal(t, []string{"성실함"}, s.SelectedTraits())

	s.ClearTraits()
	assert.Empty(t, s.SelectedTraits())
}

func TestFlagPersistenceRoundTrip(t *testing.T) {
	s := NewState()
	s.Visit("a", schema.Criteria)
	s.ToggleCriterion("a", "Q2")

	restored := NewState()
	restored.RestoreFlags(s.AllFlags())
	assert.True(t, restored.Flags("a")["Q2"])

	// Visits after restore reuse the persisted flags.
	flags := restored.Visit("a", schema.Criteria)
	assert.True(t, flags["Q2"])
}
