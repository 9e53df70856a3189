package tui

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/session"
	"github.com/goliatone/go-formstate/pkg/submission"
	"github.com/goliatone/go-formstate/pkg/validation"
)

const defaultMaxAttempts = 3

// Renderer drives a session from the terminal: it prompts for every field,
// feeds answers through the session as change and blur events, and submits
// once all fields have been visited.
type Renderer struct {
	driver           PromptDriver
	outputFormat     OutputFormat
	maxAttempts      int
	inlineValidation bool
	theme            Theme
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		maxAttempts:  defaultMaxAttempts,
		theme:        Theme{ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// ContentType reports the serialization format used by Run.
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

// Run prompts for every field and submits. When submission fails, only the
// fields with visible errors are asked again, up to the configured number of
// rounds. It returns the serialized values of the accepted submission.
func (r *Renderer) Run(ctx context.Context, s *session.Session) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if s == nil {
		return nil, ErrNoSession
	}

	fields := s.State().Schema().Fields()
	pending := fields

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		for _, field := range pending {
			if err := r.promptField(ctx, s, field); err != nil {
				return nil, err
			}
		}

		result := s.Submit(ctx)
		if result.OK {
			return r.serialize(s.State().Values())
		}
		if !errors.Is(result.Err, submission.ErrInvalid) {
			return nil, result.Err
		}

		pending = nil
		for _, field := range fields {
			if s.VisibleError(field.Name) != "" {
				pending = append(pending, field)
			}
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("%s%d field(s) need attention", r.theme.ErrorPrefix, len(pending))); err != nil {
			return nil, err
		}
	}

	return nil, ErrSubmitRejected
}

// promptField asks for one field. The answer is a change followed by a blur,
// mirroring what a browser emits, and any resulting error is shown at once.
func (r *Renderer) promptField(ctx context.Context, s *session.Session, field model.Field) error {
	if msg := s.VisibleError(field.Name); msg != "" {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}

	value, err := r.ask(ctx, s, field)
	if err != nil {
		return err
	}
	if err := s.Change(ctx, field.Name, value); err != nil {
		return fmt.Errorf("tui: change %s: %w", field.Name, err)
	}
	if err := s.Blur(field.Name); err != nil {
		return fmt.Errorf("tui: blur %s: %w", field.Name, err)
	}

	if msg := s.VisibleError(field.Name); msg != "" {
		return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
	}
	return nil
}

func (r *Renderer) ask(ctx context.Context, s *session.Session, field model.Field) (model.Value, error) {
	label := displayLabel(field)
	current, _ := s.State().Value(field.Name)

	switch field.Kind {
	case model.KindText, model.KindEmail, model.KindNumber:
		cfg := InputConfig{
			Message: label,
			Default: current.String(),
			Help:    displayHelp(field),
		}
		if r.inlineValidation {
			cfg.Validator = func(answer string) error {
				return validation.Check(field, model.Text(answer))
			}
		}
		answer, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return model.Value{}, err
		}
		return model.Text(answer), nil

	case model.KindRadio:
		options := make([]string, len(field.Options))
		for i, option := range field.Options {
			options[i] = sanitize(option)
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			PageSize:     len(options),
			DefaultIndex: indexOf(field.Options, current.String()),
			Help:         displayHelp(field),
		})
		if err != nil {
			return model.Value{}, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return model.Text(""), nil
		}
		return model.Text(field.Options[idx]), nil

	case model.KindCheckbox:
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: current.Bool(),
			Help:    displayHelp(field),
		})
		if err != nil {
			return model.Value{}, err
		}
		return model.Flag(answer), nil

	default:
		return model.Value{}, fmt.Errorf("tui: unsupported field kind %q", field.Kind)
	}
}

func (r *Renderer) serialize(values model.Values) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		out, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return out, nil
	}
}

func displayLabel(field model.Field) string {
	label := sanitize(field.DisplayLabel())
	if label == "" {
		label = field.Name
	}
	if field.Required {
		label += " *"
	}
	return label
}

func displayHelp(field model.Field) string {
	var parts []string
	switch field.Kind {
	case model.KindText, model.KindEmail:
		if field.MinLength != nil {
			parts = append(parts, fmt.Sprintf("min %d characters", *field.MinLength))
		}
		if field.MaxLength != nil {
			parts = append(parts, fmt.Sprintf("max %d characters", *field.MaxLength))
		}
	case model.KindNumber:
		if field.Min != nil {
			parts = append(parts, "min "+validation.FormatNumber(*field.Min))
		}
		if field.Max != nil {
			parts = append(parts, "max "+validation.FormatNumber(*field.Max))
		}
	}
	return strings.Join(parts, ", ")
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitize strips markup from schema-provided text before it reaches the
// terminal. Entities escaped by the policy are decoded back to plain text.
func sanitize(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	cleaned := textPolicy.Sanitize(strings.TrimSpace(raw))
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func encodeForm(values model.Values) string {
	form := url.Values{}
	for name, v := range values {
		form.Set(name, v.String())
	}
	return form.Encode()
}

func prettyPrint(values model.Values) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s\n", name, values[name].String())
	}
	return b.String()
}
