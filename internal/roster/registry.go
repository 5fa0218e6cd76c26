// Package roster holds the session's ordered collection of imported
// students.
package roster

import (
	"github.com/google/uuid"

	"commentgen/internal/dataset"
	"commentgen/internal/logging"
)

// Student is one imported survey row plus a process-unique id. The id is
// assigned once at import and never changes; it is opaque and never reused.
type Student struct {
	ID     string      `json:"id"`
	Fields dataset.Row `json:"fields"`
}

// Field returns a field value by column name, empty when absent.
func (s Student) Field(key string) string {
	return s.Fields[key]
}

// Registry is the ordered student collection for one session.
type Registry struct {
	students []Student
	schema   *dataset.Schema
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register assigns each record a fresh unique id and replaces the roster,
// preserving row order. Registering the same file twice yields disjoint ids:
// re-upload means start over. The previous roster is only replaced on
// success, so a failed import upstream never leaves a partial roster here.
func (r *Registry) Register(rows []dataset.Row, schema *dataset.Schema) []Student {
	students := make([]Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, Student{
			ID:     uuid.NewString(),
			Fields: row,
		})
	}
	r.students = students
	r.schema = schema
	logging.SessionDebug("roster registered: students=%d", len(students))
	return students
}

// Restore replaces the roster with previously persisted students, keeping
// their original ids.
func (r *Registry) Restore(students []Student, schema *dataset.Schema) {
	r.students = students
	r.schema = schema
}

// Students returns the roster in import order.
func (r *Registry) Students() []Student {
	return r.students
}

// Schema returns the column classification captured at import.
func (r *Registry) Schema() *dataset.Schema {
	return r.schema
}

// Lookup finds a student by id.
func (r *Registry) Lookup(id string) (Student, bool) {
	for _, s := range r.students {
		if s.ID == id {
			return s, true
		}
	}
	return Student{}, false
}

// Len returns the roster size.
func (r *Registry) Len() int {
	return len(r.students)
}
