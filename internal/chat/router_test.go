package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/talekeeper/keeper/internal/api"
	"github.com/talekeeper/keeper/internal/intent"
)

func newTestRouter(t *testing.T, fb *fakeBackend, persist bool) *Router {
	t.Helper()
	r := NewRouter(fb, Options{Persist: persist})
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRouter_StartsWithGreeting(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, newFakeBackend(), false)
	msgs := r.Messages()
	if len(msgs) != 1 || msgs[0].Text != Greeting || !msgs[0].Special || !msgs[0].IsBot() {
		t.Errorf("Messages() = %+v", msgs)
	}
	if r.ConversationID() != "" {
		t.Errorf("ConversationID() = %q, want empty", r.ConversationID())
	}
}

func TestRouter_Send(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend()
	fb.books = []api.Book{{Title: "Animal Farm", Year: "1945"}}
	r := newTestRouter(t, fb, true)

	reply, err := r.Send(context.Background(), "books by orwell")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	want := "🖋️ *Behold, the works of George Orwell:*\n\n📜 *Animal Farm* — 1945"
	if reply.Text != want || !reply.Special {
		t.Errorf("reply = %+v", reply)
	}

	msgs := r.Messages()
	if len(msgs) != 3 {
		t.Fatalf("len(Messages()) = %d, want 3", len(msgs))
	}
	if msgs[1].Sender != api.SenderUser || msgs[1].Text != "books by orwell" || msgs[1].Special {
		t.Errorf("user message = %+v", msgs[1])
	}
	if msgs[2] != reply {
		t.Errorf("last message = %+v, want reply", msgs[2])
	}

	flush(t, r)
	saves := fb.savedRequests()
	if len(saves) != 2 {
		t.Fatalf("got %d saves, want 2", len(saves))
	}
	if saves[0].Sender != api.SenderUser || chatIDOf(saves[0]) != "<nil>" {
		t.Errorf("first save = %+v", saves[0])
	}
	if saves[1].Sender != api.SenderBot || saves[1].Text != want || chatIDOf(saves[1]) != "chat-1" {
		t.Errorf("second save = %+v", saves[1])
	}
	if r.ConversationID() != "chat-1" {
		t.Errorf("ConversationID() = %q, want chat-1", r.ConversationID())
	}
}

func TestRouter_SendEmpty(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend()
	r := newTestRouter(t, fb, true)
	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := r.Send(context.Background(), text); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Send(%q) error = %v, want ErrEmptyMessage", text, err)
		}
	}
	if n := len(r.Messages()); n != 1 {
		t.Errorf("blank input changed the log: %d messages", n)
	}
}

func TestRouter_LookupFailureIsAReply(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend()
	fb.lookErr = errBackendDown
	fb.saveErr = errBackendDown
	r := newTestRouter(t, fb, true)

	reply, err := r.Send(context.Background(), "tell me about fantasy and mystery")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if reply.Text != ReplyLibraryTrembles {
		t.Errorf("reply = %q", reply.Text)
	}
	if calls := fb.callLog(); len(calls) != 1 || calls[0] != "genre:Fantasy" {
		t.Errorf("calls = %v", calls)
	}

	// Persistence failures never block the log.
	flush(t, r)
	if n := len(r.Messages()); n != 3 {
		t.Errorf("len(Messages()) = %d, want 3", n)
	}
	if r.ConversationID() != "" {
		t.Errorf("ConversationID() = %q after failed saves", r.ConversationID())
	}
}

func TestRouter_ClarificationSkipsNetwork(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend()
	r := newTestRouter(t, fb, false)
	reply, err := r.Send(context.Background(), "something similar please")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if reply.Text != intent.PromptWhichBook {
		t.Errorf("reply = %q", reply.Text)
	}
	if calls := fb.callLog(); len(calls) != 0 {
		t.Errorf("calls = %v, want none", calls)
	}
}

func TestRouter_NewConversation(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend()
	r := newTestRouter(t, fb, true)
	_, _ = r.Send(context.Background(), "hello")
	_, _ = r.Send(context.Background(), "horror")
	flush(t, r)
	if r.ConversationID() == "" {
		t.Fatal("conversation id not assigned")
	}

	r.NewConversation()

	msgs := r.Messages()
	if len(msgs) != 1 || msgs[0].Text != Greeting {
		t.Errorf("Messages() = %+v, want greeting only", msgs)
	}
	if r.ConversationID() != "" {
		t.Errorf("ConversationID() = %q, want empty", r.ConversationID())
	}
}

func TestRouter_Load(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend()
	fb.chats["abc"] = &api.Chat{Messages: []api.ChatMessage{
		{Sender: api.SenderUser, Text: "any horror?"},
		{Sender: api.SenderBot, Text: "🌑 *The Horror shelf lies empty...*"},
		{Sender: api.SenderUser, Text: "books by king"},
		{Sender: api.SenderBot, Text: "🌫️ *The echoes of Stephen King fade...*"},
	}}
	r := newTestRouter(t, fb, true)

	if err := r.Load(context.Background(), " abc "); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	msgs := r.Messages()
	if len(msgs) != 4 {
		t.Fatalf("len(Messages()) = %d, want 4", len(msgs))
	}
	for i, m := range msgs {
		if m.Special != m.IsBot() {
			t.Errorf("message %d: sender %s special %v", i, m.Sender, m.Special)
		}
	}
	if r.ConversationID() != "abc" {
		t.Errorf("ConversationID() = %q, want abc", r.ConversationID())
	}

	_, _ = r.Send(context.Background(), "hello")
	flush(t, r)
	for _, req := range fb.savedRequests() {
		if chatIDOf(req) != "abc" {
			t.Errorf("save after load went to %s", chatIDOf(req))
		}
	}
}

func TestRouter_LoadFailureKeepsState(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend()
	r := newTestRouter(t, fb, false)
	_, _ = r.Send(context.Background(), "hello")
	before := r.Messages()

	err := r.Load(context.Background(), "missing")
	var se *api.StatusError
	if !errors.As(err, &se) || se.StatusCode != 404 {
		t.Fatalf("Load() error = %v, want 404 StatusError", err)
	}
	if got := r.Messages(); len(got) != len(before) {
		t.Errorf("log changed on failed load: %d -> %d", len(before), len(got))
	}

	if err := r.Load(context.Background(), "  "); !errors.Is(err, api.ErrEmptyChatID) {
		t.Errorf("Load(blank) error = %v, want ErrEmptyChatID", err)
	}
}

func TestRouter_PersistDisabled(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend()
	r := newTestRouter(t, fb, false)
	if r.Persisting() {
		t.Error("Persisting() = true")
	}
	_, _ = r.Send(context.Background(), "hello")
	flush(t, r)
	if n := len(fb.savedRequests()); n != 0 {
		t.Errorf("saved %d messages with persistence off", n)
	}
}
