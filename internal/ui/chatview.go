package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/talekeeper/keeper/internal/api"
	"github.com/talekeeper/keeper/internal/chat"
)

// Conversation is the chat state the view drives. *chat.Router satisfies it.
type Conversation interface {
	Send(ctx context.Context, text string) (chat.Message, error)
	Load(ctx context.Context, chatID string) error
	NewConversation()
	Messages() []chat.Message
	ConversationID() string
}

var _ Conversation = (*chat.Router)(nil)

const (
	headerHeight = 2
	footerHeight = 2
	labelUser    = "YOU"
	labelBot     = "KEEPER OF TALES"
)

type replyMsg struct {
	err error
}

type loadedMsg struct {
	chatID string
	err    error
}

// ChatModel is the Bubble Tea model of the chat screen. Sends and loads
// run as commands; the Conversation is the single source of messages.
type ChatModel struct {
	ctx   context.Context
	conv  Conversation
	theme *Theme

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	markdown *Markdown

	width   int
	height  int
	ready   bool
	busy    bool
	pending string
	status  string
	failed  bool
}

// NewChatModel creates the chat screen for conv.
func NewChatModel(ctx context.Context, conv Conversation, theme *Theme) ChatModel {
	in := textinput.New()
	in.Placeholder = "Whisper your query..."
	in.Prompt = "› "
	in.CharLimit = 500
	in.Focus()
	if !theme.NoColor {
		in.PromptStyle = theme.Primary
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Moon))
	sp.Style = theme.Primary

	return ChatModel{
		ctx:     ctx,
		conv:    conv,
		theme:   theme,
		input:   in,
		spinner: sp,
		status:  HelpText,
	}
}

// Init starts the cursor blink.
func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input, window resizes and command results.
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vpHeight := max(msg.Height-headerHeight-footerHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.input.Width = max(msg.Width-4, 10)
		m.markdown = NewMarkdown(msg.Width-4, m.theme.NoColor)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case replyMsg:
		m.busy = false
		m.pending = ""
		m.failed = msg.err != nil
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = HelpText
		}
		m.refresh()
		return m, nil

	case loadedMsg:
		m.busy = false
		m.failed = msg.err != nil
		if msg.err != nil {
			m.status = "Could not open conversation " + msg.chatID
		} else {
			m.status = "Opened conversation " + msg.chatID
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m ChatModel) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if m.busy || strings.TrimSpace(text) == "" {
		return m, nil
	}
	m.input.Reset()
	m.failed = false

	cmd, arg := ParseCommand(text)
	switch cmd {
	case CommandQuit:
		return m, tea.Quit
	case CommandHelp:
		m.status = HelpText
		return m, nil
	case CommandNew:
		m.conv.NewConversation()
		m.status = "New conversation"
		m.refresh()
		return m, nil
	case CommandLoad:
		if arg == "" {
			m.status = "Usage: /load CHAT_ID"
			m.failed = true
			return m, nil
		}
		m.busy = true
		m.status = "Opening " + arg
		return m, tea.Batch(m.spinner.Tick, m.load(arg))
	}

	m.busy = true
	m.pending = text
	m.status = "The Keeper is searching the shelves"
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, m.send(text))
}

func (m ChatModel) send(text string) tea.Cmd {
	ctx, conv := m.ctx, m.conv
	return func() tea.Msg {
		_, err := conv.Send(ctx, text)
		return replyMsg{err: err}
	}
}

func (m ChatModel) load(chatID string) tea.Cmd {
	ctx, conv := m.ctx, m.conv
	return func() tea.Msg {
		return loadedMsg{chatID: chatID, err: conv.Load(ctx, chatID)}
	}
}

func (m *ChatModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m ChatModel) renderHistory() string {
	msgs := m.conv.Messages()
	var sb strings.Builder
	for _, msg := range msgs {
		sb.WriteString(m.renderMessage(msg))
		sb.WriteString("\n\n")
	}
	if m.pending != "" {
		sb.WriteString(m.renderMessage(chat.Message{Sender: api.SenderUser, Text: m.pending}))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m ChatModel) renderMessage(msg chat.Message) string {
	label := m.theme.Primary.Bold(true).Render(labelUser)
	if msg.IsBot() {
		label = m.theme.Success.Bold(true).Render(labelBot)
	}
	body := msg.Text
	if msg.Special {
		body = m.markdown.Render(msg.Text)
	} else if m.width > 4 {
		body = lipgloss.NewStyle().Width(m.width - 4).Render(msg.Text)
	}
	return label + "\n" + body
}

// View renders the header, history, status line and input.
func (m ChatModel) View() string {
	if !m.ready {
		return "Opening the library..."
	}

	title := m.theme.Primary.Bold(true).Render("📚 Keeper of Tales")
	if id := m.conv.ConversationID(); id != "" {
		title += m.theme.Muted.Render(fmt.Sprintf("  · chat %s", id))
	}

	status := m.theme.Muted.Render(m.status)
	if m.failed {
		status = m.theme.Error.Render(m.status)
	}
	if m.busy {
		status = m.spinner.View() + " " + status
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.theme.Border.Render(strings.Repeat("─", max(m.width, 1))),
		m.viewport.View(),
		status,
		m.input.View(),
	)
}

// RunChat runs the chat screen on the alternate screen until the user quits.
func RunChat(ctx context.Context, conv Conversation, theme *Theme, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewChatModel(ctx, conv, theme), opts...)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("chat screen: %w", err)
	}
	return nil
}
