// Package tui walks a form session through the terminal: one prompt per
// field, one navigation choice per section, forward movement gated on the
// section validating clean. Prompts go through PromptDriver so the loop can
// run against a scripted driver in tests.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/formflow/formflow/pkg/schema"
	"github.com/formflow/formflow/pkg/session"
	"github.com/formflow/formflow/pkg/validation"
)

const (
	navNext   = "Next"
	navSubmit = "Submit"
	navBack   = "Back"

	defaultDropdownSentinel = "Select an option"
)

// Renderer drives one interactive fill of a form session.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
}

// New constructs a renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		driver:       driver,
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver, err = newSurveyDriver()
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format produced by Run.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Run fills the session's form section by section and returns the collected
// values serialized in the configured output format. Validation failures on
// advance re-prompt only the failing fields; Back is always available past
// the first section.
func (r *Renderer) Run(ctx context.Context, sess *session.Session) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if sess == nil {
		return nil, errors.New("tui: session is required")
	}
	if len(sess.Form().Sections) == 0 {
		return nil, ErrEmptyForm
	}

	wizard := session.NewWizard(sess, validation.Section)
	pending := fieldIDSet(wizard.Section())
	announce := true

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		section := wizard.Section()
		if announce {
			if err := r.announceSection(ctx, wizard, len(sess.Form().Sections)); err != nil {
				return nil, err
			}
			announce = false
		}

		for _, field := range section.Fields {
			if _, ok := pending[field.FieldID]; !ok {
				continue
			}
			if err := r.promptField(ctx, field, sess); err != nil {
				return nil, err
			}
		}
		pending = nil

		choice, err := r.promptNavigation(ctx, wizard)
		if err != nil {
			return nil, err
		}

		if choice == navBack {
			wizard.Retreat()
			pending = fieldIDSet(wizard.Section())
			announce = true
			continue
		}

		switch wizard.Advance() {
		case session.OutcomeBlocked:
			pending = make(map[string]struct{})
			for _, field := range section.Fields {
				msg := sess.ErrorFor(field.FieldID)
				if msg == "" {
					continue
				}
				if err := r.driver.Info(ctx, fmt.Sprintf("%s: %s", displayLabel(field), msg)); err != nil {
					return nil, err
				}
				pending[field.FieldID] = struct{}{}
			}
		case session.OutcomeAdvanced:
			pending = fieldIDSet(wizard.Section())
			announce = true
		case session.OutcomeSubmitted:
			return r.serialize(sess.Values())
		}
	}
}

func (r *Renderer) announceSection(ctx context.Context, wizard *session.Wizard, total int) error {
	section := wizard.Section()
	header := section.Title
	if header == "" {
		header = fmt.Sprintf("Section %d", wizard.Index()+1)
	}
	if err := r.driver.Info(ctx, fmt.Sprintf("-- %s (%d/%d)", header, wizard.Index()+1, total)); err != nil {
		return err
	}
	if section.Description != "" {
		return r.driver.Info(ctx, section.Description)
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, field schema.Field, sess *session.Session) error {
	switch field.Kind {
	case schema.FieldKindText, schema.FieldKindTel, schema.FieldKindEmail, schema.FieldKindDate:
		return r.promptText(ctx, field, sess)
	case schema.FieldKindTextarea:
		return r.promptTextArea(ctx, field, sess)
	case schema.FieldKindDropdown:
		return r.promptDropdown(ctx, field, sess)
	case schema.FieldKindRadio:
		return r.promptRadio(ctx, field, sess)
	case schema.FieldKindCheckbox:
		return r.promptCheckbox(ctx, field, sess)
	default:
		// Unsupported kind: no control is produced.
		return nil
	}
}

func (r *Renderer) promptText(ctx context.Context, field schema.Field, sess *session.Session) error {
	response, err := r.driver.Input(ctx, InputConfig{
		Message:     displayLabel(field),
		Default:     sess.StringValue(field.FieldID),
		Placeholder: field.Placeholder,
	})
	if err != nil {
		return err
	}
	if field.MaxLength != nil {
		response = truncate(response, *field.MaxLength)
	}
	return sess.SetValue(field.FieldID, response)
}

func (r *Renderer) promptTextArea(ctx context.Context, field schema.Field, sess *session.Session) error {
	response, err := r.driver.TextArea(ctx, TextAreaConfig{
		Message: displayLabel(field),
		Default: sess.StringValue(field.FieldID),
		Help:    field.Placeholder,
	})
	if err != nil {
		return err
	}
	if field.MaxLength != nil {
		response = truncate(response, *field.MaxLength)
	}
	return sess.SetValue(field.FieldID, response)
}

func (r *Renderer) promptDropdown(ctx context.Context, field schema.Field, sess *session.Session) error {
	sentinel := field.Placeholder
	if sentinel == "" {
		sentinel = defaultDropdownSentinel
	}

	options := make([]string, 0, len(field.Options)+1)
	options = append(options, sentinel)
	for _, opt := range field.Options {
		options = append(options, optionLabel(opt))
	}

	defaultIdx := 0
	if current := sess.StringValue(field.FieldID); current != "" {
		for i, opt := range field.Options {
			if opt.Value == current {
				defaultIdx = i + 1
				break
			}
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(field),
		Options:      options,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return err
	}
	if idx <= 0 || idx > len(field.Options) {
		// Sentinel keeps the field empty.
		return sess.SetValue(field.FieldID, "")
	}
	return sess.SetValue(field.FieldID, field.Options[idx-1].Value)
}

func (r *Renderer) promptRadio(ctx context.Context, field schema.Field, sess *session.Session) error {
	if len(field.Options) == 0 {
		return sess.SetValue(field.FieldID, "")
	}

	options := make([]string, 0, len(field.Options))
	for _, opt := range field.Options {
		options = append(options, optionLabel(opt))
	}

	defaultIdx := -1
	if current := sess.StringValue(field.FieldID); current != "" {
		for i, opt := range field.Options {
			if opt.Value == current {
				defaultIdx = i
				break
			}
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(field),
		Options:      options,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(field.Options) {
		return sess.SetValue(field.FieldID, "")
	}
	return sess.SetValue(field.FieldID, field.Options[idx].Value)
}

func (r *Renderer) promptCheckbox(ctx context.Context, field schema.Field, sess *session.Session) error {
	response, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(field),
		Default: sess.BoolValue(field.FieldID),
	})
	if err != nil {
		return err
	}
	return sess.SetValue(field.FieldID, response)
}

func (r *Renderer) promptNavigation(ctx context.Context, wizard *session.Wizard) (string, error) {
	forward := navNext
	if wizard.OnLast() {
		forward = navSubmit
	}

	options := []string{forward}
	if wizard.Index() > 0 {
		options = append(options, navBack)
	}
	if len(options) == 1 {
		return forward, nil
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Continue",
		Options:      options,
		DefaultIndex: 0,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return forward, nil
	}
	return options[idx], nil
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func displayLabel(field schema.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.FieldID
}

func optionLabel(opt schema.Option) string {
	if opt.Label != "" {
		return opt.Label
	}
	return opt.Value
}

func fieldIDSet(section schema.Section) map[string]struct{} {
	out := make(map[string]struct{}, len(section.Fields))
	for _, field := range section.Fields {
		out[field.FieldID] = struct{}{}
	}
	return out
}

func truncate(value string, max int) string {
	if max <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max])
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for key, value := range values {
		flattened.Set(key, fmt.Sprint(value))
	}
	return flattened.Encode()
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%v\n", key, values[key])
	}
	return b.String()
}
