package session

import (
	"github.com/formflow/formflow/pkg/schema"
)

// Outcome reports what an advance attempt did.
type Outcome int

const (
	// OutcomeBlocked means validation failed and the index did not move.
	OutcomeBlocked Outcome = iota
	// OutcomeAdvanced means the section passed and the index moved forward.
	OutcomeAdvanced
	// OutcomeSubmitted means the last section passed; the collected values
	// are ready for the submission sink.
	OutcomeSubmitted
)

// sectionValidator matches validation.Section; injected so the wizard stays
// decoupled from the rule set.
type sectionValidator func(schema.Section, map[string]any) map[string]string

// Wizard is the state machine over the form's ordered sections. Forward
// navigation is gated on the active section validating clean; backward
// navigation is unconditional and never touches errors.
type Wizard struct {
	session  *Session
	validate sectionValidator
	index    int
}

// NewWizard starts a wizard at section zero. A form with no sections has
// nothing to walk: Section returns a zero value and Advance reports the run
// as submitted immediately.
func NewWizard(s *Session, validate func(schema.Section, map[string]any) map[string]string) *Wizard {
	return &Wizard{session: s, validate: validate}
}

// Index is the active section position.
func (w *Wizard) Index() int {
	return w.index
}

// Section returns the active section definition, or a zero value when the
// form has no sections.
func (w *Wizard) Section() schema.Section {
	sections := w.session.Form().Sections
	if w.index >= len(sections) {
		return schema.Section{}
	}
	return sections[w.index]
}

// OnLast reports whether the active section is the final one, where the
// forward control reads Submit instead of Next.
func (w *Wizard) OnLast() bool {
	return w.index == len(w.session.Form().Sections)-1
}

// Advance re-validates the active section. On any failure the error map is
// replaced with exactly the failing fields and the index stays put. On a
// clean section the index moves forward, or the run is reported as
// submitted when already on the last section.
func (w *Wizard) Advance() Outcome {
	if len(w.session.Form().Sections) == 0 {
		return OutcomeSubmitted
	}
	failures := w.validate(w.Section(), w.session.values)
	w.session.replaceErrors(failures)
	if len(failures) > 0 {
		return OutcomeBlocked
	}
	if w.OnLast() {
		return OutcomeSubmitted
	}
	w.index++
	return OutcomeAdvanced
}

// Retreat moves one section back when possible. No validation runs and the
// error map is left untouched.
func (w *Wizard) Retreat() bool {
	if w.index == 0 {
		return false
	}
	w.index--
	return true
}
