// Package form keeps the draft of one screen: per-field value, touched flag
// and standing error, driven by explicit change/blur/submit handlers.
package form

import (
	"maps"
	"strings"

	"github.com/dmitrijs2005/useradmin/internal/client/validation"
)

// Form is not safe for concurrent use; a screen owns it exclusively.
type Form struct {
	schema  *validation.Schema
	values  map[string]string
	touched map[string]bool
	errors  map[string]string
}

func New(schema *validation.Schema, initial map[string]string) *Form {
	f := &Form{schema: schema}
	f.Reset(initial)
	return f
}

// Change stores value. A standing error on field is cleared; a touched
// field is re-validated, and so is every touched field depending on it.
func (f *Form) Change(field, value string) {
	f.values[field] = value
	delete(f.errors, field)

	if f.touched[field] {
		f.validate(field)
	}
	for _, dep := range f.schema.Dependents(field) {
		if f.touched[dep] {
			f.validate(dep)
		}
	}
}

// Blur marks field touched and validates it.
func (f *Form) Blur(field string) {
	f.touched[field] = true
	f.validate(field)
}

// ValidateAll marks every field touched, validates all of them and reports
// whether the form is free of errors.
func (f *Form) ValidateAll() bool {
	for _, name := range f.schema.Fields() {
		f.touched[name] = true
		f.validate(name)
	}
	return len(f.errors) == 0
}

// Valid reports no standing error and no blank schema field.
func (f *Form) Valid() bool {
	if len(f.errors) > 0 {
		return false
	}
	for _, name := range f.schema.Fields() {
		if strings.TrimSpace(f.values[name]) == "" {
			return false
		}
	}
	return true
}

// Reset replaces the draft and clears touched flags and errors.
func (f *Form) Reset(values map[string]string) {
	f.values = make(map[string]string, len(values))
	maps.Copy(f.values, values)
	f.touched = make(map[string]bool)
	f.errors = make(map[string]string)
}

// SetError records an externally derived error, e.g. an availability
// conflict on the username.
func (f *Form) SetError(field, msg string) {
	if msg == "" {
		delete(f.errors, field)
		return
	}
	f.errors[field] = msg
}

func (f *Form) Value(field string) string { return f.values[field] }
func (f *Form) Error(field string) string { return f.errors[field] }
func (f *Form) Touched(field string) bool { return f.touched[field] }
func (f *Form) Fields() []string { return f.schema.Fields() }

// Values returns a copy of the draft.
func (f *Form) Values() map[string]string {
	return maps.Clone(f.values)
}

// Errors returns a copy of the standing errors.
func (f *Form) Errors() map[string]string {
	return maps.Clone(f.errors)
}

func (f *Form) validate(field string) {
	if msg := f.schema.Validate(field, f.values); msg != "" {
		f.errors[field] = msg
		return
	}
	delete(f.errors, field)
}
