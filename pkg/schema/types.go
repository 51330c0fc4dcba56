package schema

// User identifies the person filling the form. The service keys forms by
// roll number, so the pair is created once at login and never mutated.
type User struct {
	RollNumber string `json:"rollNumber" yaml:"rollNumber"`
	Name       string `json:"name" yaml:"name"`
}

// FieldKind is the closed enum of input kinds the renderer understands.
// Kinds are normalised to lower case during decode; anything outside this
// set renders as an explicit no-op.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindTel      FieldKind = "tel"
	FieldKindEmail    FieldKind = "email"
	FieldKindTextarea FieldKind = "textarea"
	FieldKindDate     FieldKind = "date"
	FieldKindDropdown FieldKind = "dropdown"
	FieldKindRadio    FieldKind = "radio"
	FieldKindCheckbox FieldKind = "checkbox"
)

// Known reports whether the kind belongs to the supported set.
func (k FieldKind) Known() bool {
	switch k {
	case FieldKindText, FieldKindTel, FieldKindEmail, FieldKindTextarea,
		FieldKindDate, FieldKindDropdown, FieldKindRadio, FieldKindCheckbox:
		return true
	default:
		return false
	}
}

// Option is one selectable value/label pair for dropdown and radio fields.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Validation carries the optional per-field message override the server can
// attach to a field.
type Validation struct {
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Field models a single input declared by the server.
type Field struct {
	FieldID     string      `json:"fieldId" yaml:"fieldId"`
	Kind        FieldKind   `json:"type" yaml:"type"`
	Label       string      `json:"label" yaml:"label"`
	Placeholder string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool        `json:"required" yaml:"required"`
	Validation  *Validation `json:"validation,omitempty" yaml:"validation,omitempty"`
	Options     []Option    `json:"options,omitempty" yaml:"options,omitempty"`
	MinLength   *int        `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int        `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
}

// ValidationMessage returns the custom required-message override, if any.
func (f Field) ValidationMessage() string {
	if f.Validation == nil {
		return ""
	}
	return f.Validation.Message
}

// Section is an ordered group of fields validated and presented together.
type Section struct {
	OrderIndex  int     `json:"sectionId" yaml:"sectionId"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

// Form is the full server-declared form definition. It is immutable once
// decoded for the session.
type Form struct {
	Title    string    `json:"formTitle" yaml:"formTitle"`
	FormID   string    `json:"formId" yaml:"formId"`
	Version  string    `json:"version,omitempty" yaml:"version,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// FieldIDs returns every field identifier declared by the form, in section
// order. The session seeds its value store from this list.
func (f Form) FieldIDs() []string {
	var out []string
	for _, section := range f.Sections {
		for _, field := range section.Fields {
			out = append(out, field.FieldID)
		}
	}
	return out
}

// FieldByID looks a field up across all sections.
func (f Form) FieldByID(id string) (Field, bool) {
	for _, section := range f.Sections {
		for _, field := range section.Fields {
			if field.FieldID == id {
				return field, true
			}
		}
	}
	return Field{}, false
}
