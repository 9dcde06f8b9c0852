package devapi

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/talekeeper/keeper/internal/api"
)

// Store errors, mapped to HTTP statuses by the handlers.
var (
	ErrInvalidCredentials = errors.New("devapi: invalid credentials")
	ErrUserExists         = errors.New("devapi: user already exists")
	ErrChatNotFound       = errors.New("devapi: chat not found")
	ErrUnknownToken       = errors.New("devapi: unknown token")
)

type user struct {
	profile api.User
	hash    []byte
}

type storedChat struct {
	owner    string
	messages []api.ChatMessage
}

// Store is the in-memory state of the stub backend. It is safe for
// concurrent use.
type Store struct {
	mu      sync.RWMutex
	users   map[string]*user // by lower-cased username
	tokens  map[string]string
	chats   map[string]*storedChat
	catalog []Title
	cost    int
}

// NewStore creates a Store serving catalog. A nil catalog selects
// DefaultCatalog.
func NewStore(catalog []Title) *Store {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Store{
		users:   make(map[string]*user),
		tokens:  make(map[string]string),
		chats:   make(map[string]*storedChat),
		catalog: catalog,
		cost:    bcrypt.DefaultCost,
	}
}

// AddUser registers a user with the given interests, as a seed for demos
// and tests.
func (s *Store) AddUser(creds api.Credentials, interests []string) (api.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.cost)
	if err != nil {
		return api.User{}, err
	}

	key := strings.ToLower(creds.Username)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[key]; ok {
		return api.User{}, ErrUserExists
	}
	u := &user{
		profile: api.User{
			ID:        uuid.NewString(),
			Username:  creds.Username,
			Name:      creds.Name,
			Email:     creds.Email,
			Interests: slices.Clone(interests),
		},
		hash: hash,
	}
	if u.profile.Interests == nil {
		u.profile.Interests = []string{}
	}
	s.users[key] = u
	return u.profile, nil
}

// Authenticate checks a username and password and issues a session token.
func (s *Store) Authenticate(username, password string) (string, api.User, error) {
	s.mu.RLock()
	u, ok := s.users[strings.ToLower(username)]
	s.mu.RUnlock()
	if !ok {
		return "", api.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.hash, []byte(password)); err != nil {
		return "", api.User{}, ErrInvalidCredentials
	}
	return s.issueToken(u.profile), u.profile, nil
}

func (s *Store) issueToken(p api.User) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = p.ID
	s.mu.Unlock()
	return token
}

// UserForToken resolves a bearer token to a user id.
func (s *Store) UserForToken(token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.tokens[token]
	if !ok {
		return "", ErrUnknownToken
	}
	return id, nil
}

// AppendMessage adds msg to chatID, creating a chat when chatID is empty.
// It returns the chat id.
func (s *Store) AppendMessage(owner, chatID string, msg api.ChatMessage) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if chatID == "" {
		chatID = uuid.NewString()
		s.chats[chatID] = &storedChat{owner: owner}
	}
	c, ok := s.chats[chatID]
	if !ok || c.owner != owner {
		return "", ErrChatNotFound
	}
	c.messages = append(c.messages, msg)
	return chatID, nil
}

// Chat returns a copy of the messages of chatID.
func (s *Store) Chat(owner, chatID string) ([]api.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.chats[chatID]
	if !ok || c.owner != owner {
		return nil, ErrChatNotFound
	}
	return slices.Clone(c.messages), nil
}

// ByGenre returns the titles tagged with genre, case-insensitively.
func (s *Store) ByGenre(genre string) []api.Book {
	return s.books(func(t Title) bool {
		return slices.ContainsFunc(t.Genres, func(g string) bool { return strings.EqualFold(g, genre) })
	})
}

// ByAuthor returns the titles written by author, case-insensitively.
func (s *Store) ByAuthor(author string) []api.Book {
	return s.books(func(t Title) bool { return strings.EqualFold(t.Author, author) })
}

// Similar returns titles sharing a genre with title, excluding title
// itself. An unknown title has no similar books.
func (s *Store) Similar(title string) []api.Book {
	idx := slices.IndexFunc(s.catalog, func(t Title) bool { return strings.EqualFold(t.Title, title) })
	if idx < 0 {
		return []api.Book{}
	}
	ref := s.catalog[idx]
	return s.books(func(t Title) bool {
		if t.Title == ref.Title {
			return false
		}
		return slices.ContainsFunc(t.Genres, func(g string) bool { return slices.Contains(ref.Genres, g) })
	})
}

// PopularBooks returns up to limit titles by read count, highest first.
func (s *Store) PopularBooks(limit int) []api.PopularBook {
	sorted := slices.Clone(s.catalog)
	slices.SortStableFunc(sorted, func(a, b Title) int { return b.Reads - a.Reads })
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]api.PopularBook, len(sorted))
	for i, t := range sorted {
		out[i] = api.PopularBook{Title: t.Title, ReadCount: ptr(t.Reads), WishCount: ptr(t.Wishes)}
	}
	return out
}

// PopularAuthors aggregates reads and wishes per author and returns up to
// limit authors by reads, highest first.
func (s *Store) PopularAuthors(limit int) []api.PopularAuthor {
	var order []string
	totals := make(map[string]*[2]int)
	for _, t := range s.catalog {
		sum, ok := totals[t.Author]
		if !ok {
			sum = new([2]int)
			totals[t.Author] = sum
			order = append(order, t.Author)
		}
		sum[0] += t.Reads
		sum[1] += t.Wishes
	}
	slices.SortStableFunc(order, func(a, b string) int { return totals[b][0] - totals[a][0] })
	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}
	out := make([]api.PopularAuthor, len(order))
	for i, name := range order {
		out[i] = api.PopularAuthor{AuthorName: name, ReadCount: ptr(totals[name][0]), WishCount: ptr(totals[name][1])}
	}
	return out
}

func (s *Store) books(keep func(Title) bool) []api.Book {
	out := []api.Book{}
	for _, t := range s.catalog {
		if !keep(t) {
			continue
		}
		b := api.Book{Title: t.Title}
		if t.Year != 0 {
			b.Year = api.Year(strconv.Itoa(t.Year))
		}
		out = append(out, b)
	}
	return out
}

func ptr(n int) *int { return &n }
