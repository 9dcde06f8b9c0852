package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Spinner shows that a lookup is in flight.
type Spinner interface {
	SetTitle(title string)
	Stop()
}

// NewSpinner starts a spinner writing to w. Headless or colorless output
// gets a single log line instead of an animation.
func NewSpinner(theme *Theme, hm *HeadlessManager, w io.Writer, title string) Spinner {
	if hm.IsHeadless() || theme.NoColor {
		return newHeadlessSpinner(title, w)
	}
	return newInteractiveSpinner(theme, title, w)
}

type spinnerTitleMsg string

type spinnerStopMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinnerModel(theme *Theme, title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Moon))
	s.Style = theme.Primary
	return spinnerModel{spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTitleMsg:
		m.title = string(msg)
		return m, nil
	case spinnerStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

type interactiveSpinner struct {
	program *tea.Program
	once    sync.Once
}

func newInteractiveSpinner(theme *Theme, title string, w io.Writer) *interactiveSpinner {
	p := tea.NewProgram(newSpinnerModel(theme, title), tea.WithOutput(w), tea.WithInput(nil))
	s := &interactiveSpinner{program: p}
	go func() {
		_, _ = p.Run()
	}()
	return s
}

// SetTitle updates the spinner title.
func (s *interactiveSpinner) SetTitle(title string) {
	s.program.Send(spinnerTitleMsg(title))
}

// Stop halts the spinner and waits for the program to exit.
func (s *interactiveSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{})
		s.program.Wait()
	})
}

type headlessSpinner struct {
	writer  io.Writer
	stopped bool
}

func newHeadlessSpinner(title string, w io.Writer) *headlessSpinner {
	_, _ = fmt.Fprintf(w, "%s\n", title)
	return &headlessSpinner{writer: w}
}

// SetTitle prints the new title as a log line.
func (s *headlessSpinner) SetTitle(title string) {
	if s.stopped {
		return
	}
	_, _ = fmt.Fprintf(s.writer, "%s\n", title)
}

// Stop marks the spinner stopped.
func (s *headlessSpinner) Stop() {
	s.stopped = true
}
