// Package selection tracks, per student, which criterion items feed the
// prompt, plus the trait labels picked while a student's detail view is
// open.
package selection

import "commentgen/internal/dataset"

// Traits is the canonical trait vocabulary offered for every student.
var Traits = []string{
	"성실함", "책임감", "배려심", "협력성", "끈기",
	"차분함", "적극성", "자기주도성", "공감능력", "꾸준함",
	"계획성", "세심함", "친절함", "밝음", "호기심",
}

// State owns the per-student criterion flags and the session's trait
// selection. Criterion flags persist per student id across visits; trait
// selection is transient and cleared whenever the user leaves a student's
// detail view, matching how the tool is used in practice.
type State struct {
	flags  map[string]map[string]bool // student id -> criterion key -> include
	traits map[string]bool
}

// NewState returns an empty selection state.
func NewState() *State {
	return &State{
		flags:  make(map[string]map[string]bool),
		traits: make(map[string]bool),
	}
}

// Visit initializes the criterion flags for a student on first visit. Every
// criterion starts unselected: items must be explicitly enabled before they
// are worth a place in the comment. Later visits reuse the stored flags.
func (s *State) Visit(studentID string, criteria []string) map[string]bool {
	if existing, ok := s.flags[studentID]; ok {
		return copyFlags(existing)
	}
	flags := make(map[string]bool, len(criteria))
	for _, key := range criteria {
		flags[key] = false
	}
	s.flags[studentID] = flags
	return copyFlags(flags)
}

// ToggleCriterion flips one flag for one student; every other student's
// state is untouched.
func (s *State) ToggleCriterion(studentID, key string) {
	flags, ok := s.flags[studentID]
	if !ok {
		flags = make(map[string]bool)
		s.flags[studentID] = flags
	}
	flags[key] = !flags[key]
}

// Flags returns a copy of a student's criterion flags.
func (s *State) Flags(studentID string) map[string]bool {
	return copyFlags(s.flags[studentID])
}

// Selected returns the student's enabled criterion keys in the schema's
// appearance order.
func (s *State) Selected(studentID string, schema *dataset.Schema) []string {
	flags := s.flags[studentID]
	if flags == nil || schema == nil {
		return nil
	}
	var out []string
	for _, key := range schema.Criteria {
		if flags[key] {
			out = append(out, key)
		}
	}
	return out
}

// ToggleTrait flips one trait in the session's trait selection.
func (s *State) ToggleTrait(trait string) {
	if s.traits[trait] {
		delete(s.traits, trait)
		return
	}
	s.traits[trait] = true
}

// SelectedTraits returns the chosen traits in canonical vocabulary order.
func (s *State) SelectedTraits() []string {
	var out []string
	for _, t := range Traits {
		if s.traits[t] {
			out = append(out, t)
		}
	}
	// Traits outside the canonical list (restored from an older session)
	// keep working; they sort after the known ones.
	for t := range s.traits {
		if !isCanonical(t) {
			out = append(out, t)
		}
	}
	return out
}

// ClearTraits resets the trait selection; called on student switch.
func (s *State) ClearTraits() {
	s.traits = make(map[string]bool)
}

// AllFlags exposes the full flag table for persistence.
func (s *State) AllFlags() map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(s.flags))
	for id, flags := range s.flags {
		out[id] = copyFlags(flags)
	}
	return out
}

// RestoreFlags replaces the flag table from persisted state.
func (s *State) RestoreFlags(flags map[string]map[string]bool) {
	if flags == nil {
		flags = make(map[string]map[string]bool)
	}
	s.flags = flags
}

func copyFlags(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func isCanonical(trait string) bool {
	for _, t := range Traits {
		if t == trait {
			return true
		}
	}
	return false
}
