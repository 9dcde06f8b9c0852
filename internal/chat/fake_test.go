package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/talekeeper/keeper/internal/api"
)

var errBackendDown = errors.New("backend down")

// fakeBackend is an in-memory Backend that records every call.
type fakeBackend struct {
	mu sync.Mutex

	books   []api.Book
	popular []api.PopularBook
	authors []api.PopularAuthor
	chats   map[string]*api.Chat
	lookErr error
	saveErr error
	// failSaves makes the next n saves fail.
	failSaves int
	// saveGate, when set, is received from before each save completes.
	saveGate chan struct{}

	calls []string
	saves []api.SaveMessageRequest
	next  int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{chats: make(map[string]*api.Chat)}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeBackend) Recommendations(_ context.Context, genre string) ([]api.Book, error) {
	f.record("genre:" + genre)
	return f.books, f.lookErr
}

func (f *fakeBackend) BooksByAuthor(_ context.Context, author string) ([]api.Book, error) {
	f.record("author:" + author)
	return f.books, f.lookErr
}

func (f *fakeBackend) SimilarBooks(_ context.Context, title string) ([]api.Book, error) {
	f.record("similar:" + title)
	return f.books, f.lookErr
}

func (f *fakeBackend) PopularBooks(context.Context) ([]api.PopularBook, error) {
	f.record("popular-books")
	return f.popular, f.lookErr
}

func (f *fakeBackend) PopularAuthors(context.Context) ([]api.PopularAuthor, error) {
	f.record("popular-authors")
	return f.authors, f.lookErr
}

func (f *fakeBackend) GetChat(_ context.Context, chatID string) (*api.Chat, error) {
	f.record("get-chat:" + chatID)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookErr != nil {
		return nil, f.lookErr
	}
	c, ok := f.chats[chatID]
	if !ok {
		return nil, &api.StatusError{StatusCode: 404, Message: "Chat not found"}
	}
	return c, nil
}

func (f *fakeBackend) SaveMessage(_ context.Context, req api.SaveMessageRequest) (*api.SaveMessageResponse, error) {
	if f.saveGate != nil {
		<-f.saveGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.ChatID != nil {
		id := *req.ChatID
		req.ChatID = &id
	}
	f.saves = append(f.saves, req)
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if f.failSaves > 0 {
		f.failSaves--
		return nil, errBackendDown
	}
	if req.ChatID != nil {
		return &api.SaveMessageResponse{ID: *req.ChatID}, nil
	}
	f.next++
	return &api.SaveMessageResponse{ID: fmt.Sprintf("chat-%d", f.next)}, nil
}

func (f *fakeBackend) savedRequests() []api.SaveMessageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.SaveMessageRequest(nil), f.saves...)
}

func (f *fakeBackend) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
