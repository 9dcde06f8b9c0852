package intent

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultGenres is the genre list matched in order; the first genre whose
// name appears in the query wins.
var DefaultGenres = []string{
	"Philosophical Fiction", "Science Fiction", "Fantasy", "Mystery", "Historical",
	"Thriller", "Romance", "Biography", "Self-Help", "Dystopian",
	"Horror", "Adventure", "Classic", "Satire", "Psychological Drama", "Erotica",
}

// DefaultAuthors is the author list matched in order by FindAuthor.
var DefaultAuthors = []string{
	"Friedrich Nietzsche", "Fyodor Dostoyevsky", "Albert Camus", "Colleen Hoover",
	"Charles Bukowski", "Frank Herbert Hayward", "Marie Lu", "George Orwell", "J.K. Rowling",
	"Stephen King", "Leo Tolstoy", "Jane Austen", "Mark Twain Media", "Haruki Murakami",
	"Gabriel Garcia Marquez", "J.R.R. Tolkien", "Agatha Christie", "William Shakespeare",
	"Homer H. Hickam", "Ernest Hemingway", "Virginia Woolf", "Isaac Asimov", "John Steinbeck",
	"George R.R. Martin", "Kurt Vonnegut", "Toni Morrison", "H. G. Wells Society", "Ray Bradbury",
	"Douglas Adams", "Margaret Atwood", "Khaled Hosseini", "John Green", "F. Scott Fitzgerald",
	"Oscar Wilde", "Maya Angelou", "Arthur C. Clarke", "C.S. Lewis", "Joseph Conrad", "Dan Brown",
	"Emily Dickinson", "Vladimir Nabokov", "Sylvia Plath", "William Faulkner", "Jack Kerouac",
	"Herman Melville", "J.D. Salinger", "Charles Dickens", "Società Dante Alighieri", "Marcel Proust",
	"William Golding", "Chimamanda Ngozi Adichie", "Jodi Picoult", "James Patterson Jr.", "Neil Gaiman",
	"Danielle Steel", "Nicholas Sparks", "E.L. James", "Ken Follett", "Paulo Coelho Netto", "Harper Lee",
	"Lisa Gardner", "Patricia Cornwell", "Stephenie Meyer", "Richard Adams", "Ruth Ware", "Tom Clancy",
	"Elena Ferrante", "David Baldacci", "Anne Rice", "Dean Koontz", "Sandra Brown", "Karin Slaughter",
	"Michael Connelly", "Tana French", "Greg Iles", "Kate Morton", "Catherine Coulter", "Jeffrey Archer",
	"Lee Child", "John Grisham", "David Foster Wallace", "Michael Crichton", "Nelson De Mille", "David Mitchell",
	"Shirley Jackson", "Rachel Carson", "Margaret Mitchell", "Leonard Cohen", "Jack London", "Beryl Bainbridge",
	"Zadie Smith", "Ruth Rendell", "Alice Munro", "Elif Şafak", "Jamaica Kincaid", "Roald Dahl", "Walt Whitman",
	"Jean-Paul Sartre", "E.M. Forster", "James Joyce", "Dorothy Parker", "Henry James", "Caitlin Moran", "Philip K. Dick",
	"Ayn Rand", "Arthur Miller", "Harlan Coben", "Liane Moriarty", "Margaret Drabble", "William Somerset Maugham",
	"Christopher Marlowe", "Bram Stoker", "Mary Shelley", "Louise Erdrich", "Paul Auster",
}

// Vocabulary is the pair of static word lists the classifier matches against.
// Entries keep their display spelling; matching uses a folded copy.
type Vocabulary struct {
	Genres  []string
	Authors []string

	genresFolded  []string
	authorsFolded []string
}

// NewVocabulary builds a Vocabulary. An empty list selects the built-in one.
func NewVocabulary(genres, authors []string) Vocabulary {
	if len(genres) == 0 {
		genres = DefaultGenres
	}
	if len(authors) == 0 {
		authors = DefaultAuthors
	}
	v := Vocabulary{
		Genres:        append([]string(nil), genres...),
		Authors:       append([]string(nil), authors...),
		genresFolded:  make([]string, len(genres)),
		authorsFolded: make([]string, len(authors)),
	}
	for i, g := range genres {
		v.genresFolded[i] = fold(g)
	}
	for i, a := range authors {
		v.authorsFolded[i] = fold(a)
	}
	return v
}

// DefaultVocabulary returns the built-in genre and author lists.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary(nil, nil)
}

// fold normalizes to NFC and lower-cases, so a composed "Ş" typed by the
// user matches the list entry whatever form either side arrived in.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
