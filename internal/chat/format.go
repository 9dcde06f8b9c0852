package chat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/talekeeper/keeper/internal/api"
)

// Fixed replies used when a lookup fails.
const (
	ReplyLibraryTrembles  = "⚡ *The library trembles...*"
	ReplyInkBleeds        = "🌪️ *The ink bleeds, the pages flutter...*"
	ReplyPopularBooksDown = "🚫 *I could not fetch popular books right now...*"
	ReplyPopularAuthDown  = "🚫 *I could not fetch popular authors right now...*"
)

const (
	emptyPopularBooks   = "📚 *The shelves of renown are momentarily bare...*"
	emptyPopularAuthors = "🖋️ *The storytellers are hidden in shadow...*"

	headerPopularBooks   = "🔥 *These books burn bright with fame:*"
	headerPopularAuthors = "📖 *Here are authors the realm reveres:*"

	unknownCount = "unknown"
)

// FormatSimilar renders the books similar to title.
func FormatSimilar(title string, books []api.Book) string {
	if len(books) == 0 {
		return fmt.Sprintf("🌑 *I couldn't find any similar books to %s...*", title)
	}
	return withHeader(fmt.Sprintf("🌠 *Here are some books similar to %s:*", title),
		bookLines(books, "📖", "a classic of its kind"))
}

// FormatGenre renders the recommendations for genre.
func FormatGenre(genre string, books []api.Book) string {
	if len(books) == 0 {
		return fmt.Sprintf("🌑 *The %s shelf lies empty...*", genre)
	}
	return withHeader(fmt.Sprintf("🌠 *In the realm of %s, I found these...*", genre),
		bookLines(books, "📖", "a timeless tale"))
}

// FormatAuthor renders the works of author.
func FormatAuthor(author string, books []api.Book) string {
	if len(books) == 0 {
		return fmt.Sprintf("🌫️ *The echoes of %s fade...*", author)
	}
	return withHeader(fmt.Sprintf("🖋️ *Behold, the works of %s:*", author),
		bookLines(books, "📜", "an untold year"))
}

// FormatPopularBooks renders the most read books.
func FormatPopularBooks(books []api.PopularBook) string {
	if len(books) == 0 {
		return emptyPopularBooks
	}
	lines := make([]string, len(books))
	for i, b := range books {
		lines[i] = fmt.Sprintf("📘 *%s* — ⭐ %s reads, 💖 %s wishes", b.Title, count(b.ReadCount), count(b.WishCount))
	}
	return withHeader(headerPopularBooks, lines)
}

// FormatPopularAuthors renders the most read authors.
func FormatPopularAuthors(authors []api.PopularAuthor) string {
	if len(authors) == 0 {
		return emptyPopularAuthors
	}
	lines := make([]string, len(authors))
	for i, a := range authors {
		lines[i] = fmt.Sprintf("👤 *%s* — ⭐ %s reads, 💖 %s wishes", a.AuthorName, count(a.ReadCount), count(a.WishCount))
	}
	return withHeader(headerPopularAuthors, lines)
}

func bookLines(books []api.Book, glyph, noYear string) []string {
	lines := make([]string, len(books))
	for i, b := range books {
		year := string(b.Year)
		if year == "" {
			year = noYear
		}
		lines[i] = fmt.Sprintf("%s *%s* — %s", glyph, b.Title, year)
	}
	return lines
}

func withHeader(header string, lines []string) string {
	return header + "\n\n" + strings.Join(lines, "\n")
}

func count(n *int) string {
	if n == nil {
		return unknownCount
	}
	return strconv.Itoa(*n)
}
