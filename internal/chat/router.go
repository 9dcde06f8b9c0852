package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/talekeeper/keeper/internal/api"
	"github.com/talekeeper/keeper/internal/intent"
)

// ErrEmptyMessage is returned by Send for blank input.
var ErrEmptyMessage = errors.New("chat: empty message")

// History fetches a stored conversation.
type History interface {
	GetChat(ctx context.Context, chatID string) (*api.Chat, error)
}

// Backend is everything the Router needs from the server.
type Backend interface {
	Lookup
	History
	Saver
}

var _ Backend = (*api.Client)(nil)

// Options configures a Router.
type Options struct {
	// Vocabulary used by the classifier. The zero value selects the
	// built-in lists.
	Vocabulary intent.Vocabulary
	// Persist enables mirroring messages to the backend chat store.
	Persist bool
	Logger  *slog.Logger
}

// Router owns one conversation: it appends user messages, answers them
// through the classifier and lookups, and mirrors both sides to the
// backend. It is safe for concurrent use.
type Router struct {
	backend Backend
	vocab   intent.Vocabulary
	persist *Persister
	logger  *slog.Logger

	// sendMu keeps each question and its answer adjacent in the log.
	sendMu sync.Mutex

	mu       sync.Mutex
	messages []Message
	gen      uint64
}

// NewRouter creates a Router showing the greeting.
func NewRouter(backend Backend, opts Options) *Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	vocab := opts.Vocabulary
	if len(vocab.Genres) == 0 || len(vocab.Authors) == 0 {
		vocab = intent.NewVocabulary(vocab.Genres, vocab.Authors)
	}

	var saver Saver
	if opts.Persist {
		saver = backend
	}
	return &Router{
		backend:  backend,
		vocab:    vocab,
		persist:  NewPersister(saver, logger),
		logger:   logger,
		messages: greeting(),
	}
}

// Send appends text as a user message, answers it and returns the bot
// message. Lookup failures become fixed replies, so the only error is
// ErrEmptyMessage.
func (r *Router) Send(ctx context.Context, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}

	r.sendMu.Lock()
	defer r.sendMu.Unlock()

	gen := r.append(userMessage(text), 0, false)

	in := intent.Classify(text, r.vocab)
	r.logger.Debug("classified message", "intent", in.Kind.String(), "subject", in.Subject(), "lookup", in.NeedsLookup())

	reply := botMessage(Answer(ctx, r.backend, in, r.logger))
	if r.append(reply, gen, true) != gen {
		r.logger.Debug("conversation changed while answering; reply dropped")
	}
	return reply, nil
}

// append adds msg to the log and queues its save. When checkGen is set the
// message is only added if the conversation is still generation gen. It
// returns the current generation.
func (r *Router) append(msg Message, gen uint64, checkGen bool) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if checkGen && r.gen != gen {
		return r.gen
	}
	r.messages = append(r.messages, msg)
	r.persist.Enqueue(msg)
	return r.gen
}

// Classify exposes the router's classifier without touching the log.
func (r *Router) Classify(text string) intent.Intent {
	return intent.Classify(text, r.vocab)
}

// Load replaces the log with the stored conversation chatID. On failure the
// log is left as it was.
func (r *Router) Load(ctx context.Context, chatID string) error {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return api.ErrEmptyChatID
	}

	stored, err := r.backend.GetChat(ctx, chatID)
	if err != nil {
		r.logger.Warn("load conversation failed", "chat_id", chatID, "error", err)
		return fmt.Errorf("load conversation %s: %w", chatID, err)
	}

	msgs := make([]Message, len(stored.Messages))
	for i, m := range stored.Messages {
		msgs[i] = fromStored(m)
	}

	r.mu.Lock()
	r.messages = msgs
	r.gen++
	r.persist.Reset(chatID)
	r.mu.Unlock()

	r.logger.Info("conversation loaded", "chat_id", chatID, "messages", len(msgs))
	return nil
}

// NewConversation forgets the conversation id and shows the greeting.
func (r *Router) NewConversation() {
	r.mu.Lock()
	r.messages = greeting()
	r.gen++
	r.persist.Reset("")
	r.mu.Unlock()
}

// Messages returns a copy of the log.
func (r *Router) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// ConversationID returns the backend id of the conversation, or "".
func (r *Router) ConversationID() string {
	return r.persist.ChatID()
}

// Persisting reports whether messages are mirrored to the backend.
func (r *Router) Persisting() bool {
	return r.persist.Enabled()
}

// Flush waits for queued saves.
func (r *Router) Flush(ctx context.Context) error {
	return r.persist.Flush(ctx)
}

// Close drains queued saves and stops the save worker.
func (r *Router) Close() error {
	return r.persist.Close()
}
