package conversation

import (
	"context"
	"encoding/json"
	"time"

	"medicore/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "chat:session:"

// RedisSessionStore keeps booking sessions as JSON values with a TTL, so a
// stale mid-flow session expires instead of blocking later "book" attempts.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, phone string) (*models.BookingSession, error) {
	key := sessionKeyPrefix + phone
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.BookingSession) error {
	key := sessionKeyPrefix + session.Phone
	session.UpdatedAt = time.Now()
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, sessionKeyPrefix+phone).Err()
}
