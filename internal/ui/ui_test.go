package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/talekeeper/keeper/internal/auth"
)

func testTheme() *Theme {
	return NewTheme(true)
}

// newTestProgram creates a tea.Program configured for test environments without a TTY.
func newTestProgram(m tea.Model) *tea.Program {
	return tea.NewProgram(m,
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
	)
}

// startTestProgram starts a tea.Program in a goroutine and returns a done channel.
func startTestProgram(p *tea.Program) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()
	// Allow the program goroutine to initialize before sending messages.
	time.Sleep(10 * time.Millisecond)
	return done
}

func waitForProgram(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("tea.Program did not exit within 2 second timeout")
	}
}

func TestInteractiveSpinner_SetTitleThenStop(t *testing.T) {
	p := newTestProgram(newSpinnerModel(testTheme(), "Searching"))
	s := &interactiveSpinner{program: p, once: sync.Once{}}
	done := startTestProgram(p)

	s.SetTitle("Still searching")
	s.Stop()
	s.Stop()

	waitForProgram(t, done)
}

func TestSpinnerModel_Update(t *testing.T) {
	t.Parallel()

	m := newSpinnerModel(testTheme(), "Searching")
	next, _ := m.Update(spinnerTitleMsg("Found"))
	if got := next.(spinnerModel).title; got != "Found" {
		t.Errorf("title = %q", got)
	}
	next, cmd := next.Update(spinnerStopMsg{})
	if !next.(spinnerModel).done || cmd == nil {
		t.Error("stop message did not finish the model")
	}
	if v := next.View(); v != "" {
		t.Errorf("View() after stop = %q", v)
	}
}

func TestNewSpinner_Headless(t *testing.T) {
	t.Parallel()

	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	var buf bytes.Buffer
	s := NewSpinner(NewTheme(false), hm, &buf, "Consulting the shelves")
	s.SetTitle("Almost there")
	s.Stop()
	s.SetTitle("ignored")

	if got := buf.String(); got != "Consulting the shelves\nAlmost there\n" {
		t.Errorf("output = %q", got)
	}
}

func TestHeadlessManager(t *testing.T) {
	t.Parallel()

	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	if !hm.IsHeadless() {
		t.Error("ForceHeadless(true) not honored")
	}
	hm.ForceHeadless(false)
	if hm.IsHeadless() {
		t.Error("ForceHeadless(false) not honored")
	}

	src := map[string]string{"username": "ada"}
	hm.SetDefaults(src)
	src["username"] = "mutated"
	if v, ok := hm.GetDefault("username"); !ok || v != "ada" {
		t.Errorf("GetDefault = %q, %v", v, ok)
	}
	hm.SetDefaults(nil)
	if hm.HasDefaults() {
		t.Error("HasDefaults() after clearing")
	}
	if _, ok := hm.GetDefault("username"); ok {
		t.Error("GetDefault found a cleared key")
	}
}

func TestCredentialPrompt_Headless(t *testing.T) {
	t.Parallel()

	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	prompt := NewCredentialPrompt(testTheme(), hm)

	form := &auth.Form{}
	if err := prompt.Fill(context.Background(), form); !errors.Is(err, ErrHeadlessNoDefaults) {
		t.Fatalf("Fill() without defaults error = %v", err)
	}

	hm.SetDefaults(map[string]string{"username": "ada", "password": "secret", "email": "a@b.c"})
	form = &auth.Form{Mode: auth.ModeSignUp, Name: "Ada"}
	if err := prompt.Fill(context.Background(), form); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	want := auth.Form{Mode: auth.ModeSignUp, Name: "Ada", Email: "a@b.c", Username: "ada", Password: "secret"}
	if *form != want {
		t.Errorf("form = %+v, want %+v", *form, want)
	}
}

func TestCredentialPrompt_CancelledContext(t *testing.T) {
	t.Parallel()

	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewCredentialPrompt(testTheme(), hm).Fill(ctx, &auth.Form{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fill() error = %v, want context.Canceled", err)
	}
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in  string
		cmd Command
		arg string
	}{
		{"/new", CommandNew, ""},
		{"  /LOAD  abc123 ", CommandLoad, "abc123"},
		{"/load", CommandLoad, ""},
		{"/quit", CommandQuit, ""},
		{"/exit", CommandQuit, ""},
		{"/help", CommandHelp, ""},
		{"/unknown thing", CommandNone, ""},
		{"books by orwell", CommandNone, ""},
	}
	for _, tt := range tests {
		cmd, arg := ParseCommand(tt.in)
		if cmd != tt.cmd || arg != tt.arg {
			t.Errorf("ParseCommand(%q) = %v, %q; want %v, %q", tt.in, cmd, arg, tt.cmd, tt.arg)
		}
	}
}

func TestTheme_Cards(t *testing.T) {
	t.Parallel()

	th := testTheme()
	card := th.Card("Session", th.KeyValue("user", "ada"))
	for _, want := range []string{"Session", "user", "ada", "╭", "╯"} {
		if !strings.Contains(card, want) {
			t.Errorf("Card() missing %q:\n%s", want, card)
		}
	}
	if got := th.SuccessCard("Signed in", "Route: dashboard"); !strings.Contains(got, "✓ Signed in") || !strings.Contains(got, "Route: dashboard") {
		t.Errorf("SuccessCard() =\n%s", got)
	}
	if got := th.ErrorCard("Sign in failed"); !strings.Contains(got, "✗ Sign in failed") {
		t.Errorf("ErrorCard() =\n%s", got)
	}
}

func TestMarkdown_Render(t *testing.T) {
	t.Parallel()

	md := NewMarkdown(60, true)
	out := md.Render("📖 *Dune* — 1965")
	if !strings.Contains(out, "Dune") || !strings.Contains(out, "1965") {
		t.Errorf("Render() = %q", out)
	}
	if got := md.Render(""); got != "" {
		t.Errorf("Render(\"\") = %q", got)
	}

	var nilMD *Markdown
	if got := nilMD.Render("plain"); got != "plain" {
		t.Errorf("nil renderer Render() = %q", got)
	}
}
