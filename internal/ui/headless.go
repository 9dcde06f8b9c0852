package ui

import (
	"maps"
	"os"

	"github.com/mattn/go-isatty"
)

// HeadlessManager decides whether prompts can be shown and holds the
// values used in their place when they cannot.
type HeadlessManager struct {
	forced   *bool
	input    *os.File
	defaults map[string]string
}

// NewHeadlessManager creates a HeadlessManager that detects headless mode
// from the TTY state of os.Stdin.
func NewHeadlessManager() *HeadlessManager {
	return &HeadlessManager{input: os.Stdin}
}

// IsHeadless returns true when no terminal is attached to the input.
// ForceHeadless overrides detection.
func (h *HeadlessManager) IsHeadless() bool {
	if h.forced != nil {
		return *h.forced
	}
	fd := h.input.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// ForceHeadless overrides TTY detection. Pass true to force headless mode,
// or false to force interactive mode regardless of TTY state.
func (h *HeadlessManager) ForceHeadless(force bool) {
	h.forced = &force
}

// ClearForce removes any forced override, reverting to automatic TTY detection.
func (h *HeadlessManager) ClearForce() {
	h.forced = nil
}

// SetDefaults stores the values headless prompts answer with. Keys are
// form field names ("name", "email", "username", "password").
func (h *HeadlessManager) SetDefaults(defaults map[string]string) {
	if len(defaults) == 0 {
		h.defaults = nil
		return
	}
	h.defaults = make(map[string]string, len(defaults))
	maps.Copy(h.defaults, defaults)
}

// GetDefault retrieves a default value by key.
func (h *HeadlessManager) GetDefault(key string) (string, bool) {
	v, ok := h.defaults[key]
	return v, ok
}

// HasDefaults returns true when at least one default value has been set.
func (h *HeadlessManager) HasDefaults() bool {
	return len(h.defaults) > 0
}
