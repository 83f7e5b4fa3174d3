package repository

import (
	"context"
	"fmt"
	"os"
	"sync"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"

	"gopkg.in/yaml.v3"
)

// FileCredentialStore reads username -> {password, name} from a YAML file.
type FileCredentialStore struct {
	path   string
	reload bool

	mu    sync.RWMutex
	creds map[string]models.Credential
}

// NewFileCredentialStore loads path once. A missing or malformed file is
// returned as an error so callers can abort startup. With reload set, every
// Lookup re-reads the file.
func NewFileCredentialStore(path string, reload bool) (*FileCredentialStore, error) {
	s := &FileCredentialStore{path: path, reload: reload}
	creds, err := s.read()
	if err != nil {
		return nil, err
	}
	s.creds = creds
	return s, nil
}

func (s *FileCredentialStore) Lookup(_ context.Context, username string) (models.Credential, bool, error) {
	if s.reload {
		creds, err := s.read()
		if err != nil {
			return models.Credential{}, false, err
		}
		s.mu.Lock()
		s.creds = creds
		s.mu.Unlock()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.creds[username]
	return c, ok, nil
}

// Len returns the number of loaded credentials.
func (s *FileCredentialStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.creds)
}

func (s *FileCredentialStore) read() (map[string]models.Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", models.ErrConfiguration, s.path, err)
	}
	return ParseCredentials(data)
}

// ParseCredentials decodes a YAML mapping of usernames to credential records.
func ParseCredentials(data []byte) (map[string]models.Credential, error) {
	var raw map[string]models.Credential
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse credentials: %v", models.ErrConfiguration, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: credential file is empty", models.ErrConfiguration)
	}
	creds := make(map[string]models.Credential, len(raw))
	for user, c := range raw {
		c.Username = user
		creds[user] = c
	}
	return creds, nil
}

var _ repository.CredentialStore = (*FileCredentialStore)(nil)
