package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/formflow/formflow/pkg/schema"
)

func testForm() schema.Form {
	return schema.Form{
		Title:  "Onboarding",
		FormID: "onboarding-v1",
		Sections: []schema.Section{
			{
				OrderIndex: 1,
				Title:      "Identity",
				Fields: []schema.Field{
					{FieldID: "name", Kind: schema.FieldKindText, Required: true},
					{FieldID: "email", Kind: schema.FieldKindEmail},
				},
			},
			{
				OrderIndex: 2,
				Title:      "Preferences",
				Fields: []schema.Field{
					{FieldID: "newsletter", Kind: schema.FieldKindCheckbox},
				},
			},
		},
	}
}

func TestNew_SeedsDeclaredFields(t *testing.T) {
	sess := New(schema.User{RollNumber: "42", Name: "Alice"}, testForm())

	want := map[string]any{
		"name":       "",
		"email":      "",
		"newsletter": false,
	}
	if diff := cmp.Diff(want, sess.Values()); diff != "" {
		t.Fatalf("seeded values mismatch (-want +got):\n%s", diff)
	}
	if len(sess.Errors()) != 0 {
		t.Fatalf("expected no seeded errors, got %v", sess.Errors())
	}
}

func TestSetValue_RejectsUndeclaredField(t *testing.T) {
	sess := New(schema.User{}, testForm())

	if err := sess.SetValue("ghost", "boo"); err == nil {
		t.Fatalf("expected error for undeclared field")
	}
	if _, ok := sess.Value("ghost"); ok {
		t.Fatalf("undeclared field leaked into values")
	}
}

func TestSetValue_ClearsOnlyThatFieldsError(t *testing.T) {
	sess := New(schema.User{}, testForm())
	sess.replaceErrors(map[string]string{
		"name":  "This field is required",
		"email": "Enter a valid email address",
	})

	if err := sess.SetValue("name", "Alice"); err != nil {
		t.Fatalf("set value: %v", err)
	}

	if got := sess.ErrorFor("name"); got != "" {
		t.Fatalf("expected name error cleared, got %q", got)
	}
	if got := sess.ErrorFor("email"); got != "Enter a valid email address" {
		t.Fatalf("expected email error untouched, got %q", got)
	}
}

func TestValuesAndErrors_ReturnCopies(t *testing.T) {
	sess := New(schema.User{}, testForm())
	sess.replaceErrors(map[string]string{"name": "This field is required"})

	values := sess.Values()
	values["name"] = "mutated"
	if got := sess.StringValue("name"); got != "" {
		t.Fatalf("values copy leaked mutation: %q", got)
	}

	errs := sess.Errors()
	delete(errs, "name")
	if got := sess.ErrorFor("name"); got == "" {
		t.Fatalf("errors copy leaked mutation")
	}
}
