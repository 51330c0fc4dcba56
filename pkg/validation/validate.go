// Package validation implements the pure field-level rules applied before a
// section may be advanced. Rules run in a fixed order and the first failure
// wins; an empty string result means the value is valid.
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/formflow/formflow/pkg/schema"
)

// MessageRequired is the generic required-field message used when the field
// carries no custom override.
const MessageRequired = "This field is required"

var (
	// emailPattern is deliberately loose: something before an @, something
	// after, and a dot-separated suffix.
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	// phonePattern accepts exactly ten digits, nothing else.
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// Field validates a single value against its field declaration. The returned
// string is a human-readable message, or "" when the value passes.
//
// Note that a checkbox holding false passes the required check: false is a
// present value, so a mandatory checkbox can never fail here. That mirrors
// the service's own behaviour.
func Field(field schema.Field, value any) string {
	if field.Required && isEmpty(value) {
		if msg := field.ValidationMessage(); msg != "" {
			return msg
		}
		return MessageRequired
	}

	str, isString := value.(string)
	if isString {
		// Length limits count characters, not bytes, matching how input
		// entry truncates.
		length := utf8.RuneCountInString(str)
		if field.MinLength != nil && length < *field.MinLength {
			return fmt.Sprintf("Must be at least %d characters", *field.MinLength)
		}
		if field.MaxLength != nil && length > *field.MaxLength {
			return fmt.Sprintf("Must be at most %d characters", *field.MaxLength)
		}
	}

	if field.Kind == schema.FieldKindEmail && isString && str != "" && !emailPattern.MatchString(str) {
		return "Enter a valid email address"
	}
	if field.Kind == schema.FieldKindTel && isString && str != "" && !phonePattern.MatchString(str) {
		return "Enter a valid 10-digit phone number"
	}

	return ""
}

// Section validates every field of one section against the supplied values
// and returns exactly the failing fields keyed by identifier.
func Section(section schema.Section, values map[string]any) map[string]string {
	failures := make(map[string]string)
	for _, field := range section.Fields {
		if msg := Field(field, values[field.FieldID]); msg != "" {
			failures[field.FieldID] = msg
		}
	}
	return failures
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}
