package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/talekeeper/keeper/internal/api"
	"github.com/talekeeper/keeper/internal/chat"
)

// fakeConversation is an in-memory Conversation.
type fakeConversation struct {
	mu       sync.Mutex
	messages []chat.Message
	id       string
	loadErr  error
	sent     []string
	resets   int
}

func newFakeConversation() *fakeConversation {
	return &fakeConversation{messages: []chat.Message{{Sender: api.SenderBot, Text: chat.Greeting, Special: true}}}
}

func (f *fakeConversation) Send(_ context.Context, text string) (chat.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	reply := chat.Message{Sender: api.SenderBot, Text: "📖 *Reply to " + text + "*", Special: true}
	f.messages = append(f.messages, chat.Message{Sender: api.SenderUser, Text: text}, reply)
	return reply, nil
}

func (f *fakeConversation) Load(_ context.Context, chatID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return f.loadErr
	}
	f.id = chatID
	f.messages = []chat.Message{{Sender: api.SenderUser, Text: "stored question"}}
	return nil
}

func (f *fakeConversation) NewConversation() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	f.id = ""
	f.messages = f.messages[:1]
}

func (f *fakeConversation) Messages() []chat.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]chat.Message(nil), f.messages...)
}

func (f *fakeConversation) ConversationID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id
}

func sizedModel(t *testing.T, conv Conversation) ChatModel {
	t.Helper()
	m := NewChatModel(context.Background(), conv, testTheme())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(ChatModel)
}

func typeAndEnter(m ChatModel, text string) (ChatModel, tea.Cmd) {
	m.input.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(ChatModel), cmd
}

// runCmd executes cmd and returns the first replyMsg or loadedMsg it yields.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			switch inner := c().(type) {
			case replyMsg, loadedMsg:
				return inner
			}
		}
	case replyMsg, loadedMsg:
		return msg
	}
	t.Fatal("command produced no reply")
	return nil
}

func TestChatModel_ViewBeforeSize(t *testing.T) {
	t.Parallel()

	m := NewChatModel(context.Background(), newFakeConversation(), testTheme())
	if got := m.View(); got != "Opening the library..." {
		t.Errorf("View() = %q", got)
	}
}

func TestChatModel_ShowsGreeting(t *testing.T) {
	t.Parallel()

	m := sizedModel(t, newFakeConversation())
	view := m.View()
	for _, want := range []string{"Keeper of Tales", "KEEPER OF TALES", "Welcome, wayfarer of words"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestChatModel_Send(t *testing.T) {
	t.Parallel()

	conv := newFakeConversation()
	m := sizedModel(t, conv)

	m, cmd := typeAndEnter(m, "books by orwell")
	if !m.busy || m.pending != "books by orwell" {
		t.Fatalf("busy = %v, pending = %q", m.busy, m.pending)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	// A second enter while busy is ignored.
	if _, again := typeAndEnter(m, "another"); again != nil {
		t.Error("submit while busy produced a command")
	}

	next, _ := m.Update(runCmd(t, cmd))
	m = next.(ChatModel)
	if m.busy || m.pending != "" {
		t.Errorf("still busy after reply")
	}
	if len(conv.sent) != 1 || conv.sent[0] != "books by orwell" {
		t.Errorf("sent = %v", conv.sent)
	}
	if !strings.Contains(m.renderHistory(), "Reply to books by orwell") {
		t.Error("reply not rendered")
	}
}

func TestChatModel_BlankInputIgnored(t *testing.T) {
	t.Parallel()

	conv := newFakeConversation()
	m, cmd := typeAndEnter(sizedModel(t, conv), "   ")
	if cmd != nil || m.busy {
		t.Error("blank input was submitted")
	}
}

func TestChatModel_Commands(t *testing.T) {
	t.Parallel()

	conv := newFakeConversation()
	m := sizedModel(t, conv)

	m, cmd := typeAndEnter(m, "/load abc")
	next, _ := m.Update(runCmd(t, cmd))
	m = next.(ChatModel)
	if conv.ConversationID() != "abc" || m.status != "Opened conversation abc" {
		t.Errorf("id = %q, status = %q", conv.ConversationID(), m.status)
	}
	if !strings.Contains(m.View(), "chat abc") {
		t.Error("header does not show conversation id")
	}

	m, _ = typeAndEnter(m, "/new")
	if conv.resets != 1 || m.status != "New conversation" {
		t.Errorf("resets = %d, status = %q", conv.resets, m.status)
	}

	m, cmd = typeAndEnter(m, "/load")
	if cmd != nil || !m.failed {
		t.Error("/load without id should only report usage")
	}

	_, cmd = typeAndEnter(m, "/quit")
	if cmd == nil {
		t.Fatal("/quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("/quit did not quit")
	}
}

func TestChatModel_LoadFailure(t *testing.T) {
	t.Parallel()

	conv := newFakeConversation()
	conv.loadErr = errors.New("404")
	m := sizedModel(t, conv)

	m, cmd := typeAndEnter(m, "/load nope")
	next, _ := m.Update(runCmd(t, cmd))
	m = next.(ChatModel)
	if !m.failed || !strings.Contains(m.status, "nope") {
		t.Errorf("failed = %v, status = %q", m.failed, m.status)
	}
	if len(conv.Messages()) != 1 {
		t.Error("failed load changed messages")
	}
}

func TestChatModel_CtrlCQuits(t *testing.T) {
	t.Parallel()

	m := sizedModel(t, newFakeConversation())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
}
