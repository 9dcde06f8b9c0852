package chat

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/talekeeper/keeper/internal/api"
)

// ErrPersisterClosed is returned by Flush after Close.
var ErrPersisterClosed = errors.New("chat: persister closed")

// Saver is the write side of the backend chat store.
type Saver interface {
	SaveMessage(ctx context.Context, req api.SaveMessageRequest) (*api.SaveMessageResponse, error)
}

var _ Saver = (*api.Client)(nil)

// conversation holds the backend id of one conversation. Each
// conversation gets its own value, so saves queued for an abandoned
// conversation keep writing to it and never touch the current one.
type conversation struct {
	id string
}

type saveJob struct {
	conv    *conversation
	msg     api.ChatMessage
	flushed chan struct{}
}

// Persister mirrors appended messages to the backend, one save at a time
// in enqueue order. The first save of a conversation is sent without a
// chat id; the id it returns is used for every following save. Failures
// are logged and skipped.
type Persister struct {
	saver  Saver
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	cond    *sync.Cond
	current *conversation
	queue   []saveJob
	closed  bool
}

// NewPersister starts the save worker. A nil saver disables persistence:
// messages are dropped and only the conversation id is tracked.
func NewPersister(saver Saver, logger *slog.Logger) *Persister {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Persister{
		saver:   saver,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		current: &conversation{},
	}
	p.cond = sync.NewCond(&p.mu)

	if saver == nil {
		logger.Debug("chat persistence disabled: no session")
		close(p.done)
		return p
	}
	go p.run()
	return p
}

// Enabled reports whether messages are saved to the backend.
func (p *Persister) Enabled() bool {
	return p.saver != nil
}

// Enqueue schedules msg for saving into the current conversation.
func (p *Persister) Enqueue(msg Message) {
	if p.saver == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.logger.Warn("dropping chat save after close", "sender", msg.Sender)
		return
	}
	p.queue = append(p.queue, saveJob{
		conv: p.current,
		msg:  api.ChatMessage{Sender: msg.Sender, Text: msg.Text},
	})
	p.cond.Signal()
}

// Reset switches to another conversation. An empty chatID starts a
// conversation the backend has not seen yet.
func (p *Persister) Reset(chatID string) {
	p.mu.Lock()
	p.current = &conversation{id: chatID}
	p.mu.Unlock()
}

// ChatID returns the backend id of the current conversation, or "" until
// its first save succeeds.
func (p *Persister) ChatID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current.id
}

// Flush waits until every save enqueued before the call has been attempted.
func (p *Persister) Flush(ctx context.Context) error {
	if p.saver == nil {
		return nil
	}
	marker := make(chan struct{})
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPersisterClosed
	}
	p.queue = append(p.queue, saveJob{flushed: marker})
	p.cond.Signal()
	p.mu.Unlock()

	select {
	case <-marker:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains the queue and stops the worker. It is safe to call twice.
func (p *Persister) Close() error {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	<-p.done
	p.cancel()
	return nil
}

func (p *Persister) run() {
	defer close(p.done)
	for {
		job, ok := p.next()
		if !ok {
			return
		}
		if job.flushed != nil {
			close(job.flushed)
			continue
		}
		p.save(job)
	}
}

func (p *Persister) next() (saveJob, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.queue) == 0 {
		if p.closed {
			return saveJob{}, false
		}
		p.cond.Wait()
	}
	job := p.queue[0]
	p.queue[0] = saveJob{}
	p.queue = p.queue[1:]
	return job, true
}

func (p *Persister) save(job saveJob) {
	p.mu.Lock()
	chatID := job.conv.id
	p.mu.Unlock()

	req := api.SaveMessageRequest{Sender: job.msg.Sender, Text: job.msg.Text}
	if chatID != "" {
		req.ChatID = &chatID
	}

	resp, err := p.saver.SaveMessage(p.ctx, req)
	if err != nil {
		p.logger.Warn("chat save failed", "sender", job.msg.Sender, "chat_id", chatID, "error", err)
		return
	}
	if chatID != "" || resp == nil || resp.ID == "" {
		return
	}

	p.mu.Lock()
	if job.conv.id == "" {
		job.conv.id = resp.ID
	}
	p.mu.Unlock()
	p.logger.Info("conversation created", "chat_id", resp.ID)
}
