package dataset

import "regexp"

// criterionKey matches survey response columns by the source convention:
// a leading Q followed by a digit (Q1, Q10, ...).
var criterionKey = regexp.MustCompile(`^Q[0-9]`)

// Schema classifies the imported columns once, at load time. Identity holds
// the non-criterion columns (name, student number, ...), Criteria holds the
// Q-columns, both in header appearance order.
type Schema struct {
	Identity []string
	Criteria []string
}

// classify splits a header row into identity and criterion columns.
func classify(headers []string) *Schema {
	s := &Schema{}
	for _, h := range headers {
		if criterionKey.MatchString(h) {
			s.Criteria = append(s.Criteria, h)
		} else {
			s.Identity = append(s.Identity, h)
		}
	}
	return s
}

// IsCriterion reports whether key is one of the schema's criterion columns.
func (s *Schema) IsCriterion(key string) bool {
	for _, c := range s.Criteria {
		if c == key {
			return true
		}
	}
	return false
}
