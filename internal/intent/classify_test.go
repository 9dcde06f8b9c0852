package intent

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	v := DefaultVocabulary()
	tests := []struct {
		query       string
		kind        Kind
		title       string
		author      string
		genre       string
		placeholder string
	}{
		{query: "recommend something similar to Dune", kind: KindSimilar, title: "Dune"},
		{query: "books like   The Hobbit  ", kind: KindSimilar, title: "The Hobbit"},
		{query: "anything closest to Beloved?", kind: KindSimilar, title: "Beloved?"},
		{query: "I want something similar", kind: KindSimilar, placeholder: PromptWhichBook},
		{query: "Can you recommend a book?", kind: KindGeneralBook},
		{query: "suggest books about fantasy by Orwell", kind: KindGeneralBook},
		{query: "recommend an author", kind: KindGeneralAuthor},
		{query: "books by orwell", kind: KindAuthorSearch, author: "George Orwell"},
		{query: "anything written by Jane Austen", kind: KindAuthorSearch, author: "Jane Austen"},
		{query: "who is your favourite author", kind: KindAuthorSearch, placeholder: PromptWhichAuthor},
		{query: "tell me about fantasy and mystery", kind: KindGenre, genre: "Fantasy"},
		{query: "SCIENCE FICTION please", kind: KindGenre, genre: "Science Fiction"},
		{query: "murakami", kind: KindFallback, author: "Haruki Murakami"},
		{query: "hello there", kind: KindFallback, placeholder: PromptUniverse},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			got := Classify(tt.query, v)
			if got.Kind != tt.kind {
				t.Fatalf("Kind = %v, want %v", got.Kind, tt.kind)
			}
			if got.Title != tt.title {
				t.Errorf("Title = %q, want %q", got.Title, tt.title)
			}
			if got.Author != tt.author {
				t.Errorf("Author = %q, want %q", got.Author, tt.author)
			}
			if got.Genre != tt.genre {
				t.Errorf("Genre = %q, want %q", got.Genre, tt.genre)
			}
			if got.Placeholder != tt.placeholder {
				t.Errorf("Placeholder = %q, want %q", got.Placeholder, tt.placeholder)
			}
			if got.NeedsLookup() != (tt.placeholder == "") {
				t.Errorf("NeedsLookup() = %v", got.NeedsLookup())
			}
		})
	}
}

func TestClassify_RequestBeatsGenreAndAuthor(t *testing.T) {
	t.Parallel()

	got := Classify("recommend a fantasy book written by Tolkien", DefaultVocabulary())
	if got.Kind != KindGeneralBook {
		t.Errorf("Kind = %v, want %v", got.Kind, KindGeneralBook)
	}
}

func TestClassify_ZeroVocabularyUsesDefaults(t *testing.T) {
	t.Parallel()

	got := Classify("horror", Vocabulary{})
	if got.Kind != KindGenre || got.Genre != "Horror" {
		t.Errorf("got %+v", got)
	}
}

func TestClassify_CustomVocabulary(t *testing.T) {
	t.Parallel()

	v := NewVocabulary([]string{"Cozy Mystery"}, []string{"Ursula K. Le Guin"})
	if got := Classify("any cozy mystery?", v); got.Genre != "Cozy Mystery" {
		t.Errorf("Genre = %q", got.Genre)
	}
	if got := Classify("fantasy", v); got.Placeholder != PromptUniverse {
		t.Errorf("built-in genre matched a custom vocabulary: %+v", got)
	}
	if got := Classify("ursula", v); got.Author != "Ursula K. Le Guin" {
		t.Errorf("Author = %q", got.Author)
	}
}

func TestFindAuthor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query  string
		want   string
		wantOK bool
	}{
		{"orwell", "George Orwell", true},
		{"GEORGE ORWELL essays", "George Orwell", true},
		// Full-name pass runs over the whole list before the token pass.
		{"stephen king or charles", "Stephen King", true},
		{"elif şafak", "Elif Şafak", true},
		// "Lu" is shorter than four runes.
		{"lu", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			got, ok := FindAuthor(tt.query, DefaultAuthors)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FindAuthor(%q) = %q, %v; want %q, %v", tt.query, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFindAuthor_DecomposedInput(t *testing.T) {
	t.Parallel()

	// "s" followed by U+0327 COMBINING CEDILLA composes to "ş".
	got, ok := FindAuthor("books of elif s\u0327afak", DefaultAuthors)
	if !ok || got != "Elif Şafak" {
		t.Errorf("got %q, %v", got, ok)
	}
}

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query  string
		want   string
		wantOK bool
	}{
		{"similar to Dune", "Dune", true},
		{"Something Related To War and Peace", "War and Peace", true},
		{"like ", "", false},
		{"similar", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			got, ok := ExtractTitle(tt.query)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractTitle(%q) = %q, %v; want %q, %v", tt.query, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	if KindGeneralAuthor.String() != "general-author" {
		t.Errorf("got %q", KindGeneralAuthor.String())
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("got %q", Kind(99).String())
	}
}
