package chat

import (
	"testing"

	"github.com/talekeeper/keeper/internal/api"
)

func intPtr(n int) *int { return &n }

func TestFormatBooks(t *testing.T) {
	t.Parallel()

	books := []api.Book{{Title: "Dune", Year: "1965"}, {Title: "Hyperion"}}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "similar",
			got:  FormatSimilar("dune", books),
			want: "🌠 *Here are some books similar to dune:*\n\n📖 *Dune* — 1965\n📖 *Hyperion* — a classic of its kind",
		},
		{
			name: "similar empty",
			got:  FormatSimilar("dune", nil),
			want: "🌑 *I couldn't find any similar books to dune...*",
		},
		{
			name: "genre",
			got:  FormatGenre("Science Fiction", books),
			want: "🌠 *In the realm of Science Fiction, I found these...*\n\n📖 *Dune* — 1965\n📖 *Hyperion* — a timeless tale",
		},
		{
			name: "genre empty",
			got:  FormatGenre("Horror", []api.Book{}),
			want: "🌑 *The Horror shelf lies empty...*",
		},
		{
			name: "author",
			got:  FormatAuthor("Frank Herbert Hayward", books),
			want: "🖋️ *Behold, the works of Frank Herbert Hayward:*\n\n📜 *Dune* — 1965\n📜 *Hyperion* — an untold year",
		},
		{
			name: "author empty",
			got:  FormatAuthor("Marie Lu", nil),
			want: "🌫️ *The echoes of Marie Lu fade...*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("got\n%q\nwant\n%q", tt.got, tt.want)
			}
		})
	}
}

func TestFormatPopular(t *testing.T) {
	t.Parallel()

	books := []api.PopularBook{
		{Title: "Dune", ReadCount: intPtr(12), WishCount: intPtr(0)},
		{Title: "Emma"},
	}
	want := "🔥 *These books burn bright with fame:*\n\n" +
		"📘 *Dune* — ⭐ 12 reads, 💖 0 wishes\n" +
		"📘 *Emma* — ⭐ unknown reads, 💖 unknown wishes"
	if got := FormatPopularBooks(books); got != want {
		t.Errorf("FormatPopularBooks() =\n%q\nwant\n%q", got, want)
	}
	if got := FormatPopularBooks(nil); got != "📚 *The shelves of renown are momentarily bare...*" {
		t.Errorf("empty books = %q", got)
	}

	authors := []api.PopularAuthor{{AuthorName: "Jane Austen", ReadCount: intPtr(3)}}
	wantAuthors := "📖 *Here are authors the realm reveres:*\n\n👤 *Jane Austen* — ⭐ 3 reads, 💖 unknown wishes"
	if got := FormatPopularAuthors(authors); got != wantAuthors {
		t.Errorf("FormatPopularAuthors() =\n%q\nwant\n%q", got, wantAuthors)
	}
	if got := FormatPopularAuthors(nil); got != "🖋️ *The storytellers are hidden in shadow...*" {
		t.Errorf("empty authors = %q", got)
	}
}
