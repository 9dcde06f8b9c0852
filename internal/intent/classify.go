// Package intent classifies a chat query into exactly one intent by
// case-insensitive substring matching against fixed word lists. It is pure:
// no network, no state.
package intent

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Kind is the classified purpose of a message.
type Kind int

const (
	// KindSimilar asks for books similar to a title.
	KindSimilar Kind = iota
	// KindGeneralBook asks for popular books.
	KindGeneralBook
	// KindGeneralAuthor asks for popular authors.
	KindGeneralAuthor
	// KindAuthorSearch asks for the books of a named author.
	KindAuthorSearch
	// KindGenre asks for books of a genre.
	KindGenre
	// KindFallback matched nothing above; an author may still resolve.
	KindFallback
)

var kindNames = [...]string{"similar", "general-book", "general-author", "author-search", "genre", "fallback"}

// String returns the glossary name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Clarification prompts returned when a parameter cannot be extracted.
const (
	PromptWhichBook   = "🔮 *Tell me which book you are referring to...*"
	PromptWhichAuthor = "🔮 *The name slips through my fingers like sand...*"
	PromptUniverse    = "📜 *The universe of books unfolds before you...*"
)

// Minimum rune length of a name token used by the author fallback pass.
const minAuthorToken = 4

// Intent is the classifier's verdict. At most one of Title, Author and
// Genre is set. When Placeholder is set the intent needs no lookup and
// Placeholder is the reply.
type Intent struct {
	Kind        Kind
	Title       string
	Author      string
	Genre       string
	Placeholder string
}

// NeedsLookup reports whether the intent must be answered by the backend.
func (i Intent) NeedsLookup() bool {
	return i.Placeholder == ""
}

// Subject returns the extracted parameter, if any.
func (i Intent) Subject() string {
	switch {
	case i.Title != "":
		return i.Title
	case i.Author != "":
		return i.Author
	default:
		return i.Genre
	}
}

var (
	similarTriggers = []string{"similar", "like", "related", "closest"}
	requestVerbs    = []string{"recommend", "suggest"}
	authorTriggers  = []string{"books by", "author", "written by"}

	titlePattern = regexp.MustCompile(`(?i)(similar to|like|related to|closest to) (.*)`)
)

// Classify returns the intent of query. The branches are tried in a fixed
// priority order and the first match wins:
// similar, general book, general author, author search, genre, fallback.
func Classify(query string, v Vocabulary) Intent {
	if v.genresFolded == nil && v.authorsFolded == nil {
		v = NewVocabulary(v.Genres, v.Authors)
	}
	q := fold(query)

	switch {
	case containsAny(q, similarTriggers):
		title, ok := ExtractTitle(query)
		if !ok {
			return Intent{Kind: KindSimilar, Placeholder: PromptWhichBook}
		}
		return Intent{Kind: KindSimilar, Title: title}

	case containsAny(q, requestVerbs) && strings.Contains(q, "book"):
		return Intent{Kind: KindGeneralBook}

	case containsAny(q, requestVerbs) && strings.Contains(q, "author"):
		return Intent{Kind: KindGeneralAuthor}

	case containsAny(q, authorTriggers):
		author, ok := v.findAuthor(q)
		if !ok {
			return Intent{Kind: KindAuthorSearch, Placeholder: PromptWhichAuthor}
		}
		return Intent{Kind: KindAuthorSearch, Author: author}
	}

	if genre, ok := v.findGenre(q); ok {
		return Intent{Kind: KindGenre, Genre: genre}
	}

	if author, ok := v.findAuthor(q); ok {
		return Intent{Kind: KindFallback, Author: author}
	}
	return Intent{Kind: KindFallback, Placeholder: PromptUniverse}
}

// ExtractTitle returns everything after the first "similar to", "like",
// "related to" or "closest to" in query, trimmed, keeping the user's casing.
func ExtractTitle(query string) (string, bool) {
	m := titlePattern.FindStringSubmatch(norm.NFC.String(query))
	if m == nil {
		return "", false
	}
	title := strings.TrimSpace(m[2])
	return title, title != ""
}

// FindAuthor resolves an author named in query using authors in list order:
// first a full-name substring pass, then a pass over each name's
// space-separated tokens of at least four runes.
func FindAuthor(query string, authors []string) (string, bool) {
	return NewVocabulary(nil, authors).findAuthor(fold(query))
}

func (v Vocabulary) findAuthor(q string) (string, bool) {
	for i, a := range v.authorsFolded {
		if strings.Contains(q, a) {
			return v.Authors[i], true
		}
	}
	for i, a := range v.authorsFolded {
		for _, part := range strings.Split(a, " ") {
			if utf8.RuneCountInString(part) >= minAuthorToken && strings.Contains(q, part) {
				return v.Authors[i], true
			}
		}
	}
	return "", false
}

func (v Vocabulary) findGenre(q string) (string, bool) {
	for i, g := range v.genresFolded {
		if strings.Contains(q, g) {
			return v.Genres[i], true
		}
	}
	return "", false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
