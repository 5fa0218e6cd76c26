// Package style holds the teacher-authored example comments used purely as
// a style reference for the prompt builder, never as factual content.
package style

import "strings"

// Sample is one teacher-authored past comment.
type Sample struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Required bool   `json:"required"`
}

// Store is the ordered sample collection. It always contains at least one
// sample; the first sample is required.
type Store struct {
	samples []Sample
	nextID  int
}

// NewStore seeds the collection with one required and one optional empty
// sample.
func NewStore() *Store {
	return &Store{
		samples: []Sample{
			{ID: 1, Required: true},
			{ID: 2},
		},
		nextID: 3,
	}
}

// Restore replaces the collection with persisted samples. An empty slice is
// ignored so the invariant (size >= 1) holds; the id counter resumes past
// the highest restored id.
func (s *Store) Restore(samples []Sample) {
	if len(samples) == 0 {
		return
	}
	s.samples = samples
	s.nextID = 1
	for _, sm := range samples {
		if sm.ID >= s.nextID {
			s.nextID = sm.ID + 1
		}
	}
}

// Add appends a new optional empty sample and returns it.
func (s *Store) Add() Sample {
	sample := Sample{ID: s.nextID}
	s.nextID++
	s.samples = append(s.samples, sample)
	return sample
}

// Remove deletes a sample by id. Required samples cannot be removed, and
// neither can the last remaining sample: the collection must never become
// empty or lose its required entry.
func (s *Store) Remove(id int) {
	if len(s.samples) <= 1 {
		return
	}
	for i, sm := range s.samples {
		if sm.ID == id {
			if sm.Required {
				return
			}
			s.samples = append(s.samples[:i], s.samples[i+1:]...)
			return
		}
	}
}

// Update replaces a sample's text by id.
func (s *Store) Update(id int, text string) {
	for i := range s.samples {
		if s.samples[i].ID == id {
			s.samples[i].Text = text
			return
		}
	}
}

// Samples returns a copy of the collection in order.
func (s *Store) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Texts returns the non-empty sample texts in order.
func (s *Store) Texts() []string {
	var out []string
	for _, sm := range s.samples {
		if strings.TrimSpace(sm.Text) != "" {
			out = append(out, sm.Text)
		}
	}
	return out
}

// Ready reports whether every required sample has non-empty trimmed text.
// The workflow may not advance to data import until this holds.
func (s *Store) Ready() bool {
	for _, sm := range s.samples {
		if sm.Required && strings.TrimSpace(sm.Text) == "" {
			return false
		}
	}
	return true
}

// Len returns the collection size.
func (s *Store) Len() int {
	return len(s.samples)
}
