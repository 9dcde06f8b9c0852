// Package session persists the signed-in user's token and profile.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/talekeeper/keeper/internal/config"
	"github.com/talekeeper/keeper/internal/defs"
)

// ErrNoSession is returned by Load when nobody is signed in.
var ErrNoSession = errors.New("session: not signed in")

// Profile is the user profile returned at sign-in.
type Profile struct {
	ID        string   `yaml:"id"`
	Username  string   `yaml:"username,omitempty"`
	Name      string   `yaml:"name,omitempty"`
	Email     string   `yaml:"email,omitempty"`
	Interests []string `yaml:"interests"`
}

// Session is the locally held token and profile.
type Session struct {
	Token string  `yaml:"token"`
	User  Profile `yaml:"user"`
}

// Store loads, saves and deletes the single active session.
type Store interface {
	Load() (*Session, error)
	Save(s *Session) error
	Delete() error
}

// FileStore keeps the session in a YAML file readable only by the owner.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// Compile-time interface check.
var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore under dir (~/.keeper when empty).
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		if resolved, err := config.ResolveDir(); err == nil {
			dir = resolved
		}
	}
	return &FileStore{path: filepath.Join(dir, defs.SessionYAML)}
}

// Path returns the session file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the session. A missing file or a file without a token yields ErrNoSession.
func (s *FileStore) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if sess.Token == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Save overwrites any previous session wholesale.
func (s *FileStore) Save(sess *Session) error {
	if sess == nil {
		return errors.New("session: nil session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := config.AtomicWrite(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Delete removes the session file. Deleting a missing session is not an error.
func (s *FileStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store, used by headless one-shot commands and tests.
type MemoryStore struct {
	mu   sync.Mutex
	sess *Session
}

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// Load returns a copy of the held session.
func (m *MemoryStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return nil, ErrNoSession
	}
	cp := *m.sess
	cp.User.Interests = append([]string(nil), m.sess.User.Interests...)
	return &cp, nil
}

// Save replaces the held session.
func (m *MemoryStore) Save(sess *Session) error {
	if sess == nil {
		return errors.New("session: nil session")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sess
	cp.User.Interests = append([]string(nil), sess.User.Interests...)
	m.sess = &cp
	return nil
}

// Delete drops the held session.
func (m *MemoryStore) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}
