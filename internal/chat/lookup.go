package chat

import (
	"context"
	"log/slog"

	"github.com/talekeeper/keeper/internal/api"
	"github.com/talekeeper/keeper/internal/intent"
)

// Lookup is the read side of the backend used to answer intents.
type Lookup interface {
	Recommendations(ctx context.Context, genre string) ([]api.Book, error)
	BooksByAuthor(ctx context.Context, author string) ([]api.Book, error)
	SimilarBooks(ctx context.Context, title string) ([]api.Book, error)
	PopularBooks(ctx context.Context) ([]api.PopularBook, error)
	PopularAuthors(ctx context.Context) ([]api.PopularAuthor, error)
}

var _ Lookup = (*api.Client)(nil)

// Answer produces the bot reply for in. It issues at most one request.
// Lookup failures are logged and replaced by a fixed reply, so Answer
// never fails.
func Answer(ctx context.Context, l Lookup, in intent.Intent, logger *slog.Logger) string {
	if !in.NeedsLookup() {
		return in.Placeholder
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	switch in.Kind {
	case intent.KindSimilar:
		books, err := l.SimilarBooks(ctx, in.Title)
		if err != nil {
			logger.Warn("similar books lookup failed", "title", in.Title, "error", err)
			return ReplyLibraryTrembles
		}
		return FormatSimilar(in.Title, books)

	case intent.KindGeneralBook:
		books, err := l.PopularBooks(ctx)
		if err != nil {
			logger.Warn("popular books lookup failed", "error", err)
			return ReplyPopularBooksDown
		}
		return FormatPopularBooks(books)

	case intent.KindGeneralAuthor:
		authors, err := l.PopularAuthors(ctx)
		if err != nil {
			logger.Warn("popular authors lookup failed", "error", err)
			return ReplyPopularAuthDown
		}
		return FormatPopularAuthors(authors)

	case intent.KindAuthorSearch, intent.KindFallback:
		books, err := l.BooksByAuthor(ctx, in.Author)
		if err != nil {
			logger.Warn("author lookup failed", "author", in.Author, "error", err)
			return ReplyInkBleeds
		}
		return FormatAuthor(in.Author, books)

	case intent.KindGenre:
		books, err := l.Recommendations(ctx, in.Genre)
		if err != nil {
			logger.Warn("genre lookup failed", "genre", in.Genre, "error", err)
			return ReplyLibraryTrembles
		}
		return FormatGenre(in.Genre, books)
	}
	return intent.PromptUniverse
}
