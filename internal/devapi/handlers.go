package devapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/talekeeper/keeper/internal/api"
)

// maxBody caps request bodies.
const maxBody = 64 << 10

type ctxKey struct{}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"message": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a {"message": ...} body, the shape the client surfaces.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds api.Credentials
	if !decode(w, r, &creds) {
		return
	}
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		Error(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, user, err := s.store.Authenticate(creds.Username, creds.Password)
	if err != nil {
		s.logger.Info("login rejected", "username", creds.Username)
		Error(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	JSON(w, http.StatusOK, api.AuthResponse{Message: "Login successful", Token: token, User: user})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var creds api.Credentials
	if !decode(w, r, &creds) {
		return
	}
	for _, v := range []string{creds.Name, creds.Email, creds.Username, creds.Password} {
		if strings.TrimSpace(v) == "" {
			Error(w, http.StatusBadRequest, "All fields are required")
			return
		}
	}

	if _, err := s.store.AddUser(creds, nil); err != nil {
		if errors.Is(err, ErrUserExists) {
			Error(w, http.StatusBadRequest, "User already exists")
			return
		}
		s.logger.Error("signup failed", "error", err)
		Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	token, user, err := s.store.Authenticate(creds.Username, creds.Password)
	if err != nil {
		Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	s.logger.Info("user registered", "user_id", user.ID)
	JSON(w, http.StatusCreated, api.AuthResponse{Message: "User registered successfully", Token: token, User: user})
}

// requireToken resolves the bearer token and stores the user id in the
// request context.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			Error(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		userID, err := s.store.UserForToken(token)
		if err != nil {
			Error(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

func (s *Server) handleSaveMessage(w http.ResponseWriter, r *http.Request) {
	var req api.SaveMessageRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Sender != api.SenderUser && req.Sender != api.SenderBot {
		Error(w, http.StatusBadRequest, "Sender must be user or bot")
		return
	}

	var chatID string
	if req.ChatID != nil {
		chatID = *req.ChatID
	}
	id, err := s.store.AppendMessage(userID(r), chatID, api.ChatMessage{Sender: req.Sender, Text: req.Text})
	if err != nil {
		Error(w, http.StatusNotFound, "Chat not found")
		return
	}
	messages, _ := s.store.Chat(userID(r), id)
	JSON(w, http.StatusOK, api.Chat{ID: id, Messages: messages})
}

func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatId")
	messages, err := s.store.Chat(userID(r), chatID)
	if err != nil {
		Error(w, http.StatusNotFound, "Chat not found")
		return
	}
	JSON(w, http.StatusOK, api.Chat{ID: chatID, Messages: messages})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, s.store.ByGenre(r.URL.Query().Get("genre")))
}

func (s *Server) handleAuthor(w http.ResponseWriter, r *http.Request) {
	author := r.URL.Query().Get("author")
	if author == "" {
		Error(w, http.StatusBadRequest, "Author is required")
		return
	}
	JSON(w, http.StatusOK, s.store.ByAuthor(author))
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		Error(w, http.StatusBadRequest, "Title is required")
		return
	}
	JSON(w, http.StatusOK, s.store.Similar(title))
}

func (s *Server) handlePopularBooks(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, s.store.PopularBooks(popularLimit))
}

func (s *Server) handlePopularAuthors(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, s.store.PopularAuthors(popularLimit))
}
