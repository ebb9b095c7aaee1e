package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

type Session struct {
	ID        string    `msgpack:"id"`
	Username  string    `msgpack:"username"`
	CreatedAt time.Time `msgpack:"created_at"`
}

// SessionStore keeps login sessions in Redis. Every successful lookup
// pushes the expiry forward by the configured TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, username string) (*Session, error) {
	session := &Session{ID: uuid.NewString(), Username: username, CreatedAt: time.Now().UTC()}
	payload, err := msgpack.Marshal(session)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), payload, s.ttl).Err(); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns nil without error when the session does not exist or expired.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}
	data, err := s.client.GetEx(ctx, sessionKey(id), s.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var session Session
	if err := msgpack.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete reports whether a session was removed.
func (s *SessionStore) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	n, err := s.client.Del(ctx, sessionKey(id)).Result()
	return n > 0, err
}

func sessionKey(id string) string {
	return "session:" + id
}
