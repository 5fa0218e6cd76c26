// Package history keeps generated comments per student, in the order they
// were produced, and tracks which comment was confirmed as final.
package history

import (
	"strings"
	"time"

	"commentgen/internal/logging"
)

// Entry is one generated (or hand-edited) comment for a student.
type Entry struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Ledger holds per-student comment history and final selections.
// It is not safe for concurrent use; the session serializes access.
type Ledger struct {
	entries map[string][]Entry
	finals  map[string]string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		entries: make(map[string][]Entry),
		finals:  make(map[string]string),
	}
}

// Append records a new comment for the student at the end of their history.
func (l *Ledger) Append(studentID, text string) {
	l.entries[studentID] = append(l.entries[studentID], Entry{
		Text:      text,
		CreatedAt: time.Now(),
	})
	logging.SessionDebug("history: appended entry %d for student %s (len=%d)",
		len(l.entries[studentID]), studentID, len([]rune(text)))
}

// Edit replaces the text of the entry at index. Position and timestamp are
// unchanged; an edit is a correction, not a new generation.
func (l *Ledger) Edit(studentID string, index int, text string) bool {
	entries := l.entries[studentID]
	if index < 0 || index >= len(entries) {
		return false
	}
	entries[index].Text = text
	return true
}

// Entries returns the student's history in generation order.
func (l *Ledger) Entries(studentID string) []Entry {
	return l.entries[studentID]
}

// MarkFinal records the given text as the student's confirmed comment. The
// final is a value snapshot: later edits to history entries do not change it
// until MarkFinal is called again.
func (l *Ledger) MarkFinal(studentID, text string) {
	l.finals[studentID] = text
	logging.SessionDebug("history: marked final for student %s (len=%d)", studentID, len([]rune(text)))
}

// ClearFinal removes the student's confirmed comment.
func (l *Ledger) ClearFinal(studentID string) {
	delete(l.finals, studentID)
}

// Final returns the student's confirmed comment, if any.
func (l *Ledger) Final(studentID string) (string, bool) {
	text, ok := l.finals[studentID]
	return text, ok
}

// Finals returns a copy of all confirmed comments keyed by student id.
func (l *Ledger) Finals() map[string]string {
	out := make(map[string]string, len(l.finals))
	for id, text := range l.finals {
		out[id] = text
	}
	return out
}

// FinalCount returns how many students have a non-blank confirmed comment.
func (l *Ledger) FinalCount() int {
	n := 0
	for _, text := range l.finals {
		if strings.TrimSpace(text) != "" {
			n++
		}
	}
	return n
}

// AllEntries returns the full history map for persistence.
func (l *Ledger) AllEntries() map[string][]Entry {
	out := make(map[string][]Entry, len(l.entries))
	for id, entries := range l.entries {
		out[id] = append([]Entry(nil), entries...)
	}
	return out
}

// Restore replaces the ledger contents, used when resuming a saved session.
// Nil maps are treated as empty.
func (l *Ledger) Restore(entries map[string][]Entry, finals map[string]string) {
	l.entries = make(map[string][]Entry, len(entries))
	for id, es := range entries {
		l.entries[id] = append([]Entry(nil), es...)
	}
	l.finals = make(map[string]string, len(finals))
	for id, text := range finals {
		l.finals[id] = text
	}
}
