package chat

import (
	"context"
	"testing"

	"github.com/talekeeper/keeper/internal/api"
	"github.com/talekeeper/keeper/internal/intent"
)

func TestAnswer_FailuresBecomeFixedReplies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   intent.Intent
		want string
	}{
		{"similar", intent.Intent{Kind: intent.KindSimilar, Title: "dune"}, ReplyLibraryTrembles},
		{"popular books", intent.Intent{Kind: intent.KindGeneralBook}, ReplyPopularBooksDown},
		{"popular authors", intent.Intent{Kind: intent.KindGeneralAuthor}, ReplyPopularAuthDown},
		{"author", intent.Intent{Kind: intent.KindAuthorSearch, Author: "Jane Austen"}, ReplyInkBleeds},
		{"fallback author", intent.Intent{Kind: intent.KindFallback, Author: "Jane Austen"}, ReplyInkBleeds},
		{"genre", intent.Intent{Kind: intent.KindGenre, Genre: "Fantasy"}, ReplyLibraryTrembles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fb := newFakeBackend()
			fb.lookErr = &api.StatusError{StatusCode: 500, Message: "boom"}
			if got := Answer(context.Background(), fb, tt.in, nil); got != tt.want {
				t.Errorf("Answer() = %q, want %q", got, tt.want)
			}
			if n := len(fb.callLog()); n != 1 {
				t.Errorf("made %d calls, want 1", n)
			}
		})
	}
}

func TestAnswer_PlaceholderSkipsNetwork(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend()
	in := intent.Classify("something similar", intent.DefaultVocabulary())
	if got := Answer(context.Background(), fb, in, nil); got != intent.PromptWhichBook {
		t.Errorf("Answer() = %q", got)
	}
	if calls := fb.callLog(); len(calls) != 0 {
		t.Errorf("calls = %v, want none", calls)
	}
}

func TestAnswer_Dispatch(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend()
	fb.books = []api.Book{{Title: "Emma", Year: "1815"}}
	v := intent.DefaultVocabulary()

	queries := map[string]string{
		"books like Emma":      "similar:Emma",
		"recommend me a book":  "popular-books",
		"suggest an author":    "popular-authors",
		"books by austen":      "author:Jane Austen",
		"any romance?":         "genre:Romance",
		"what about hemingway": "author:Ernest Hemingway",
	}
	for q, want := range queries {
		before := len(fb.callLog())
		Answer(context.Background(), fb, intent.Classify(q, v), nil)
		calls := fb.callLog()
		if len(calls) != before+1 || calls[before] != want {
			t.Errorf("%q: calls %v, want trailing %q", q, calls[before:], want)
		}
	}
}
