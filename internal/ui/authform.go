package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/talekeeper/keeper/internal/auth"
)

// Errors returned by the credential prompt.
var (
	// ErrCancelled is returned when the user aborts a form.
	ErrCancelled = errors.New("ui: cancelled by user")
	// ErrHeadlessNoDefaults is returned in headless mode when no field
	// values were supplied.
	ErrHeadlessNoDefaults = errors.New("ui: headless mode requires credentials from flags or environment")
)

// CredentialPrompt fills an auth.Form, interactively with huh or from the
// headless defaults.
type CredentialPrompt struct {
	theme    *Theme
	headless *HeadlessManager
}

// NewCredentialPrompt creates a CredentialPrompt.
func NewCredentialPrompt(theme *Theme, hm *HeadlessManager) *CredentialPrompt {
	return &CredentialPrompt{theme: theme, headless: hm}
}

// Fill completes form. Values already present are kept as the initial
// field contents. The mode may be toggled by the user before the fields
// are shown.
func (p *CredentialPrompt) Fill(ctx context.Context, form *auth.Form) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.headless.IsHeadless() {
		return p.fillHeadless(form)
	}
	return p.fillInteractive(ctx, form)
}

func (p *CredentialPrompt) fillHeadless(form *auth.Form) error {
	if !p.headless.HasDefaults() {
		return ErrHeadlessNoDefaults
	}
	for _, field := range []struct {
		key string
		dst *string
	}{
		{"name", &form.Name},
		{"email", &form.Email},
		{"username", &form.Username},
		{"password", &form.Password},
	} {
		if v, ok := p.headless.GetDefault(field.key); ok && *field.dst == "" {
			*field.dst = v
		}
	}
	return nil
}

// fillInteractive runs the mode toggle and the field group as separate
// forms so the field set matches the chosen mode.
func (p *CredentialPrompt) fillInteractive(ctx context.Context, form *auth.Form) error {
	theme := p.theme.formTheme()

	var toggle bool
	confirm := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(form.Mode.String()).
			Description(form.Mode.ToggleLabel()).
			Affirmative("Switch").
			Negative("Continue").
			Value(&toggle),
	)).WithTheme(theme)
	if err := runForm(ctx, confirm); err != nil {
		return err
	}
	if toggle {
		form.Toggle()
	}

	fields := make([]huh.Field, 0, 4)
	if form.Mode == auth.ModeSignUp {
		fields = append(fields,
			requiredInput("Name", &form.Name),
			requiredInput("Email", &form.Email),
		)
	}
	fields = append(fields,
		requiredInput("Username", &form.Username),
		requiredInput("Password", &form.Password).EchoMode(huh.EchoModePassword),
	)

	group := huh.NewGroup(fields...).
		Title(form.Mode.String()).
		Description(form.Mode.SubmitLabel() + " to continue")
	return runForm(ctx, huh.NewForm(group).WithTheme(theme))
}

func requiredInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", strings.ToLower(title))
			}
			return nil
		})
}

func runForm(ctx context.Context, form *huh.Form) error {
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("credential form: %w", err)
	}
	return nil
}
