package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	"StockPulse/pkg/kv"
)

const sessionKeyPrefix = "session"

// KVSessionStore keeps sessions as JSON records in a kv.Store. Records never
// expire; logout overwrites them with the logged-out state.
type KVSessionStore struct {
	store kv.Store
}

func NewKVSessionStore(store kv.Store) *KVSessionStore {
	return &KVSessionStore{store: store}
}

// Load returns the stored session, or a fresh logged-out session for an
// unknown id.
func (s *KVSessionStore) Load(ctx context.Context, id string) (models.Session, error) {
	data, err := s.store.Get(ctx, kv.Key(sessionKeyPrefix, id))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return models.Session{ID: id}, nil
		}
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return models.Session{}, fmt.Errorf("decode session: %w", err)
	}
	sess.ID = id
	return sess, nil
}

func (s *KVSessionStore) Save(ctx context.Context, sess models.Session) error {
	if sess.ID == "" {
		return errors.New("save session: empty id")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.store.Set(ctx, kv.Key(sessionKeyPrefix, sess.ID), data, 0)
}

func (s *KVSessionStore) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, kv.Key(sessionKeyPrefix, id))
}

var _ repository.SessionStore = (*KVSessionStore)(nil)
