package api

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Sender identifies the author of a persisted chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Credentials are the form fields posted to the auth endpoints.
// Name and Email are only sent on sign-up.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is the profile returned by the auth endpoints.
type User struct {
	ID        string   `json:"_id"`
	Username  string   `json:"username,omitempty"`
	Name      string   `json:"name,omitempty"`
	Email     string   `json:"email,omitempty"`
	Interests []string `json:"interests"`
}

// AuthResponse is the body of a successful login or sign-up.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// ChatMessage is a message as stored by the backend chat store.
type ChatMessage struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// Chat is the body of GET /chat/{id}.
type Chat struct {
	ID       string        `json:"_id,omitempty"`
	Messages []ChatMessage `json:"messages"`
}

// SaveMessageRequest is the body of POST /chat. A nil ChatID asks the
// backend to open a new conversation.
type SaveMessageRequest struct {
	Sender Sender  `json:"sender"`
	Text   string  `json:"text"`
	ChatID *string `json:"chatId"`
}

// SaveMessageResponse carries the conversation id assigned by the backend.
type SaveMessageResponse struct {
	ID string `json:"_id"`
}

// Year is a publication year. The backend sends it as a number, a string,
// or not at all; the empty value means unknown.
type Year string

// UnmarshalJSON accepts numbers, strings and null.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	// A zero year is as good as missing.
	if f, err := n.Float64(); err == nil && f == 0 {
		*y = ""
		return nil
	}
	*y = Year(n.String())
	return nil
}

// MarshalJSON writes numeric years as numbers.
func (y Year) MarshalJSON() ([]byte, error) {
	if y == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.Atoi(string(y)); err == nil {
		return []byte(y), nil
	}
	return json.Marshal(string(y))
}

// Book is an item of the recommendation, author and similarity lookups.
type Book struct {
	Title string `json:"title"`
	Year  Year   `json:"year,omitempty"`
}

// PopularBook is an item of GET /popular-books.
type PopularBook struct {
	Title     string `json:"title"`
	ReadCount *int   `json:"readCount,omitempty"`
	WishCount *int   `json:"wishCount,omitempty"`
}

// PopularAuthor is an item of GET /popular-authors.
type PopularAuthor struct {
	AuthorName string `json:"authorName"`
	ReadCount  *int   `json:"readCount,omitempty"`
	WishCount  *int   `json:"wishCount,omitempty"`
}
