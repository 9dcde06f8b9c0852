package devapi

// Title is a catalog entry served by the stub lookups.
type Title struct {
	Title  string
	Author string
	Year   int
	Genres []string
	Reads  int
	Wishes int
}

// DefaultCatalog is a small shelf covering every lookup path. Some years
// are zero so clients exercise their missing-year placeholder.
func DefaultCatalog() []Title {
	return []Title{
		{Title: "Nineteen Eighty-Four", Author: "George Orwell", Year: 1949, Genres: []string{"Dystopian", "Science Fiction", "Classic"}, Reads: 412, Wishes: 96},
		{Title: "Animal Farm", Author: "George Orwell", Year: 1945, Genres: []string{"Satire", "Classic"}, Reads: 380, Wishes: 41},
		{Title: "Homage to Catalonia", Author: "George Orwell", Genres: []string{"Biography", "Historical"}, Reads: 57, Wishes: 12},
		{Title: "Brave New World", Author: "Aldous Huxley", Year: 1932, Genres: []string{"Dystopian", "Science Fiction"}, Reads: 298, Wishes: 77},
		{Title: "Fahrenheit 451", Author: "Ray Bradbury", Year: 1953, Genres: []string{"Dystopian", "Science Fiction"}, Reads: 265, Wishes: 58},
		{Title: "The Handmaid's Tale", Author: "Margaret Atwood", Year: 1985, Genres: []string{"Dystopian"}, Reads: 241, Wishes: 88},
		{Title: "Dune", Author: "Frank Herbert Hayward", Year: 1965, Genres: []string{"Science Fiction", "Adventure"}, Reads: 356, Wishes: 120},
		{Title: "Foundation", Author: "Isaac Asimov", Year: 1951, Genres: []string{"Science Fiction"}, Reads: 199, Wishes: 64},
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", Year: 1937, Genres: []string{"Fantasy", "Adventure"}, Reads: 450, Wishes: 73},
		{Title: "The Fellowship of the Ring", Author: "J.R.R. Tolkien", Year: 1954, Genres: []string{"Fantasy", "Adventure"}, Reads: 401, Wishes: 90},
		{Title: "A Game of Thrones", Author: "George R.R. Martin", Year: 1996, Genres: []string{"Fantasy"}, Reads: 333, Wishes: 101},
		{Title: "Neverwhere", Author: "Neil Gaiman", Genres: []string{"Fantasy"}, Reads: 122, Wishes: 47},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Year: 1813, Genres: []string{"Romance", "Classic"}, Reads: 390, Wishes: 66},
		{Title: "Emma", Author: "Jane Austen", Year: 1815, Genres: []string{"Romance", "Classic"}, Reads: 174, Wishes: 29},
		{Title: "Murder on the Orient Express", Author: "Agatha Christie", Year: 1934, Genres: []string{"Mystery", "Classic"}, Reads: 288, Wishes: 45},
		{Title: "The Girl on the Train", Author: "Paula Hawkins", Year: 2015, Genres: []string{"Thriller", "Mystery"}, Reads: 140, Wishes: 22},
		{Title: "The Shining", Author: "Stephen King", Year: 1977, Genres: []string{"Horror"}, Reads: 276, Wishes: 70},
		{Title: "It", Author: "Stephen King", Year: 1986, Genres: []string{"Horror"}, Reads: 231, Wishes: 55},
		{Title: "Crime and Punishment", Author: "Fyodor Dostoyevsky", Year: 1866, Genres: []string{"Philosophical Fiction", "Psychological Drama", "Classic"}, Reads: 265, Wishes: 83},
		{Title: "The Stranger", Author: "Albert Camus", Year: 1942, Genres: []string{"Philosophical Fiction"}, Reads: 219, Wishes: 61},
		{Title: "Thus Spoke Zarathustra", Author: "Friedrich Nietzsche", Year: 1883, Genres: []string{"Philosophical Fiction"}, Reads: 98, Wishes: 54},
		{Title: "Norwegian Wood", Author: "Haruki Murakami", Year: 1987, Genres: []string{"Romance", "Psychological Drama"}, Reads: 208, Wishes: 92},
		{Title: "Atomic Habits", Author: "James Clear", Year: 2018, Genres: []string{"Self-Help"}, Reads: 310, Wishes: 40},
	}
}
