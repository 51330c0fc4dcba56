package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeForm parses a form document from JSON or YAML bytes and normalises it
// for rendering: sections sorted by their declared order, field kinds lower
// cased, and display strings sanitised.
func DecodeForm(data []byte) (Form, error) {
	form, err := parseForm(data)
	if err != nil {
		return Form{}, err
	}
	Normalize(&form)
	if err := Validate(form); err != nil {
		return Form{}, err
	}
	return form, nil
}

func parseForm(data []byte) (Form, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Form{}, errors.New("schema: document is empty")
	}

	var form Form
	if err := json.Unmarshal(data, &form); err == nil {
		return form, nil
	}
	if err := yaml.Unmarshal(data, &form); err == nil {
		return form, nil
	}
	return Form{}, errors.New("schema: document is not valid JSON or YAML")
}

// Normalize sorts sections into presentation order and scrubs every
// server-provided display string. Field kinds are folded to lower case so
// documents may spell them either way.
func Normalize(form *Form) {
	if form == nil {
		return
	}

	form.Title = sanitizeText(form.Title)

	sort.SliceStable(form.Sections, func(i, j int) bool {
		return form.Sections[i].OrderIndex < form.Sections[j].OrderIndex
	})

	for si := range form.Sections {
		section := &form.Sections[si]
		section.Title = sanitizeText(section.Title)
		section.Description = sanitizeText(section.Description)

		for fi := range section.Fields {
			field := &section.Fields[fi]
			field.Kind = FieldKind(strings.ToLower(strings.TrimSpace(string(field.Kind))))
			field.Label = sanitizeText(field.Label)
			field.Placeholder = sanitizeText(field.Placeholder)
			if field.Validation != nil {
				field.Validation.Message = sanitizeText(field.Validation.Message)
			}
			for oi := range field.Options {
				field.Options[oi].Label = sanitizeText(field.Options[oi].Label)
			}
		}
	}
}

// Validate enforces the structural invariants the rest of the pipeline
// relies on: non-empty field identifiers unique across the whole form, and
// at least one option on every choice field. A required choice field with no
// options could never be satisfied interactively.
func Validate(form Form) error {
	seen := make(map[string]struct{})
	for _, section := range form.Sections {
		for _, field := range section.Fields {
			id := strings.TrimSpace(field.FieldID)
			if id == "" {
				return fmt.Errorf("schema: section %q declares a field without an id", section.Title)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("schema: duplicate field id %q", id)
			}
			seen[id] = struct{}{}

			isChoice := field.Kind == FieldKindDropdown || field.Kind == FieldKindRadio
			if isChoice && len(field.Options) == 0 {
				return fmt.Errorf("schema: %s field %q declares no options", field.Kind, id)
			}
		}
	}
	return nil
}
