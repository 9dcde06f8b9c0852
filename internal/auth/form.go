// Package auth implements the credential exchange: it submits the sign-in or
// sign-up form, stores the resulting session and decides where the user goes next.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/talekeeper/keeper/internal/api"
)

// ErrMissingField is wrapped by Validate for every blank required field.
var ErrMissingField = errors.New("auth: missing required field")

// Mode selects the auth endpoint and the required fields.
type Mode int

const (
	// ModeSignIn posts username and password to /auth/login.
	ModeSignIn Mode = iota
	// ModeSignUp posts name, email, username and password to /auth/signup.
	ModeSignUp
)

// String returns the form title for the mode.
func (m Mode) String() string {
	if m == ModeSignUp {
		return "Sign Up"
	}
	return "Sign In"
}

// SubmitLabel is the button text of the form.
func (m Mode) SubmitLabel() string {
	if m == ModeSignUp {
		return "Register"
	}
	return "Login"
}

// ToggleLabel is the hint offering the other mode.
func (m Mode) ToggleLabel() string {
	if m == ModeSignUp {
		return "Have an account? Sign In"
	}
	return "Need an account? Sign Up"
}

// Form holds the credential fields as typed by the user.
type Form struct {
	Mode     Mode
	Name     string
	Email    string
	Username string
	Password string
}

// Toggle switches between sign-in and sign-up, keeping typed values.
func (f *Form) Toggle() {
	if f.Mode == ModeSignUp {
		f.Mode = ModeSignIn
		return
	}
	f.Mode = ModeSignUp
}

// RequiredFields lists the field names the current mode requires.
func (f Form) RequiredFields() []string {
	if f.Mode == ModeSignUp {
		return []string{"name", "email", "username", "password"}
	}
	return []string{"username", "password"}
}

// Validate checks presence only; formats are left to the backend.
func (f Form) Validate() error {
	var missing []string
	for _, name := range f.RequiredFields() {
		if strings.TrimSpace(f.value(name)) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

// Credentials converts the form into the request body for its mode.
func (f Form) Credentials() api.Credentials {
	creds := api.Credentials{Username: f.Username, Password: f.Password}
	if f.Mode == ModeSignUp {
		creds.Name = f.Name
		creds.Email = f.Email
	}
	return creds
}

func (f Form) value(name string) string {
	switch name {
	case "name":
		return f.Name
	case "email":
		return f.Email
	case "username":
		return f.Username
	case "password":
		return f.Password
	}
	return ""
}
