package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/formflow/formflow/pkg/schema"
	"github.com/formflow/formflow/pkg/validation"
)

func newTestWizard(t *testing.T) (*Session, *Wizard) {
	t.Helper()
	sess := New(schema.User{RollNumber: "42", Name: "Alice"}, testForm())
	return sess, NewWizard(sess, validation.Section)
}

func TestAdvance_BlockedPopulatesExactFailures(t *testing.T) {
	sess, wizard := newTestWizard(t)

	if got := wizard.Advance(); got != OutcomeBlocked {
		t.Fatalf("expected blocked advance, got %v", got)
	}
	if wizard.Index() != 0 {
		t.Fatalf("blocked advance moved index to %d", wizard.Index())
	}

	want := map[string]string{"name": validation.MessageRequired}
	if diff := cmp.Diff(want, sess.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestAdvance_MovesForwardWhenClean(t *testing.T) {
	sess, wizard := newTestWizard(t)

	if err := sess.SetValue("name", "Alice"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if got := wizard.Advance(); got != OutcomeAdvanced {
		t.Fatalf("expected advance, got %v", got)
	}
	if wizard.Index() != 1 {
		t.Fatalf("expected index 1, got %d", wizard.Index())
	}
	if len(sess.Errors()) != 0 {
		t.Fatalf("clean advance left errors: %v", sess.Errors())
	}
}

func TestAdvance_ReplacesErrorsWholesale(t *testing.T) {
	sess, wizard := newTestWizard(t)

	// First attempt fails on name and email.
	if err := sess.SetValue("email", "not-an-email"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if got := wizard.Advance(); got != OutcomeBlocked {
		t.Fatalf("expected blocked advance, got %v", got)
	}
	if len(sess.Errors()) != 2 {
		t.Fatalf("expected two errors, got %v", sess.Errors())
	}

	// Fixing both and re-advancing must clear everything in one shot.
	if err := sess.SetValue("name", "Alice"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if err := sess.SetValue("email", "alice@example.com"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if got := wizard.Advance(); got != OutcomeAdvanced {
		t.Fatalf("expected advance, got %v", got)
	}
	if len(sess.Errors()) != 0 {
		t.Fatalf("stale errors survived re-validation: %v", sess.Errors())
	}
}

func TestRetreat_UnconditionalAndErrorPreserving(t *testing.T) {
	sess, wizard := newTestWizard(t)

	if wizard.Retreat() {
		t.Fatalf("retreat from section 0 should be a no-op")
	}

	if err := sess.SetValue("name", "Alice"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	wizard.Advance()

	sess.replaceErrors(map[string]string{"newsletter": "placeholder"})
	if !wizard.Retreat() {
		t.Fatalf("expected retreat from section 1")
	}
	if wizard.Index() != 0 {
		t.Fatalf("expected index 0 after retreat, got %d", wizard.Index())
	}
	if got := sess.ErrorFor("newsletter"); got != "placeholder" {
		t.Fatalf("retreat mutated errors: %q", got)
	}
}

func TestAdvance_SubmitOnLastSection(t *testing.T) {
	sess, wizard := newTestWizard(t)

	if err := sess.SetValue("name", "Alice"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if got := wizard.Advance(); got != OutcomeAdvanced {
		t.Fatalf("expected advance, got %v", got)
	}
	if !wizard.OnLast() {
		t.Fatalf("expected last section at index %d", wizard.Index())
	}
	if got := wizard.Advance(); got != OutcomeSubmitted {
		t.Fatalf("expected submit outcome, got %v", got)
	}
	if wizard.Index() != 1 {
		t.Fatalf("submit must not move the index, got %d", wizard.Index())
	}

	want := map[string]any{
		"name":       "Alice",
		"email":      "",
		"newsletter": false,
	}
	if diff := cmp.Diff(want, sess.Values()); diff != "" {
		t.Fatalf("collected values mismatch (-want +got):\n%s", diff)
	}
}

func TestWizard_EmptyForm(t *testing.T) {
	sess := New(schema.User{RollNumber: "42", Name: "Alice"}, schema.Form{Title: "Empty"})
	wizard := NewWizard(sess, validation.Section)

	if got := wizard.Section(); !cmp.Equal(got, schema.Section{}) {
		t.Fatalf("expected zero section, got %+v", got)
	}
	if got := wizard.Advance(); got != OutcomeSubmitted {
		t.Fatalf("expected immediate submit outcome, got %v", got)
	}
	if wizard.Retreat() {
		t.Fatalf("retreat on an empty form should be a no-op")
	}
}

// End-to-end shape of the two-section flow: submit empty keeps index 0 with
// an error on name; filling name and advancing reaches section 1.
func TestWizard_TwoSectionFlow(t *testing.T) {
	sess, wizard := newTestWizard(t)

	if got := wizard.Advance(); got != OutcomeBlocked || wizard.Index() != 0 {
		t.Fatalf("empty submit: outcome %v index %d", got, wizard.Index())
	}
	if sess.ErrorFor("name") == "" {
		t.Fatalf("expected error on name")
	}

	if err := sess.SetValue("name", "Alice"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if got := wizard.Advance(); got != OutcomeAdvanced || wizard.Index() != 1 {
		t.Fatalf("filled advance: outcome %v index %d", got, wizard.Index())
	}
}
