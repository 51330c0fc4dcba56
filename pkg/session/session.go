// Package session owns the in-memory state of one form-filling run: the
// logged-in user, the fetched form, the flat value store, and the per-field
// validation errors. All mutation goes through Session methods so the value
// keys always match exactly the fields the form declares.
package session

import (
	"fmt"

	"github.com/formflow/formflow/pkg/schema"
)

// Session is the single-owner state container for one user and one form.
type Session struct {
	user   schema.User
	form   schema.Form
	values map[string]any
	errors map[string]string
}

// New seeds a session from a decoded form. Every declared field gets an
// initial value: "" for everything except checkboxes, which start false.
func New(user schema.User, form schema.Form) *Session {
	values := make(map[string]any)
	for _, section := range form.Sections {
		for _, field := range section.Fields {
			if field.Kind == schema.FieldKindCheckbox {
				values[field.FieldID] = false
			} else {
				values[field.FieldID] = ""
			}
		}
	}
	return &Session{
		user:   user,
		form:   form,
		values: values,
		errors: make(map[string]string),
	}
}

// User returns the identity the session was opened for.
func (s *Session) User() schema.User {
	return s.user
}

// Form returns the immutable form definition.
func (s *Session) Form() schema.Form {
	return s.form
}

// Value returns the current value for a declared field.
func (s *Session) Value(fieldID string) (any, bool) {
	v, ok := s.values[fieldID]
	return v, ok
}

// StringValue returns the field's value as a string, or "" for non-string
// values. Convenient for prefilling text controls.
func (s *Session) StringValue(fieldID string) string {
	if v, ok := s.values[fieldID]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// BoolValue returns the field's value as a bool, defaulting to false.
func (s *Session) BoolValue(fieldID string) bool {
	if v, ok := s.values[fieldID]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// SetValue writes a new value for a declared field and clears any error
// currently attached to it. Writing to an undeclared field is rejected so
// the value keys stay locked to the form definition.
func (s *Session) SetValue(fieldID string, value any) error {
	if _, ok := s.values[fieldID]; !ok {
		return fmt.Errorf("session: field %q is not declared by the form", fieldID)
	}
	s.values[fieldID] = value
	delete(s.errors, fieldID)
	return nil
}

// Values returns a copy of the current value map.
func (s *Session) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the current per-field error messages.
func (s *Session) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// ErrorFor returns the message attached to a field, or "".
func (s *Session) ErrorFor(fieldID string) string {
	return s.errors[fieldID]
}

// replaceErrors swaps the error map wholesale. Used by the wizard on every
// advance attempt so stale messages never survive a re-validation.
func (s *Session) replaceErrors(failures map[string]string) {
	s.errors = make(map[string]string, len(failures))
	for k, v := range failures {
		s.errors[k] = v
	}
}
