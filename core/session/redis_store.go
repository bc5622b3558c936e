package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Values are stored as "<expiresUnixMilli>|<json>" so the scripts below can
// check expiry without decoding JSON.
var (
	lookupScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then return false end
local sep = string.find(v, '|', 1, true)
if not sep then
  redis.call('DEL', KEYS[1])
  return false
end
if tonumber(string.sub(v, 1, sep - 1)) < tonumber(ARGV[1]) then
  redis.call('DEL', KEYS[1])
  return -1
end
return string.sub(v, sep + 1)
`)

	// replaceScript touches two keys; both share the prefix's hash tag so
	// they map to one Cluster slot.
	replaceScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then return 0 end
redis.call('DEL', KEYS[1])
redis.call('SET', KEYS[2], ARGV[1], 'PX', ARGV[2])
return 1
`)
)

const (
	defaultRedisPrefix = "{folio:session}:"
	// redisGrace keeps expired entries around briefly so a lookup can still
	// tell "expired" from "never existed".
	redisGrace = time.Minute
)

// RedisStore shares sessions between replicas. Lookup-with-eviction and
// Replace run as Lua scripts, so each is atomic on the server.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix namespaces session keys. A prefix without a {hash tag} is
// wrapped in one, so "app:session:" becomes "{app:session}:" and every
// session key lands in the same Redis Cluster slot.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = hashTagged(prefix)
		}
	}
}

// NewRedisStore returns a store on client. Standalone, Sentinel and Cluster
// clients all work.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) (*RedisStore, error) {
	if client == nil {
		return nil, ErrNilStore
	}
	s := &RedisStore{client: client, prefix: defaultRedisPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *RedisStore) key(id string) string { return s.prefix + id }

func hashTagged(prefix string) string {
	if open := strings.IndexByte(prefix, '{'); open >= 0 {
		if end := strings.IndexByte(prefix[open+1:], '}'); end > 0 {
			return prefix
		}
	}
	return "{" + strings.TrimSuffix(prefix, ":") + "}:"
}

// Create stores sess with a TTL of its remaining lifetime plus a short
// grace period.
func (s *RedisStore) Create(ctx context.Context, sess Session) error {
	val, ttl, err := encodeRedisValue(sess, time.Now())
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(sess.ID), val, ttl).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// Lookup returns the session for id, evicting and reporting ErrExpired
// when it is past its expiry.
func (s *RedisStore) Lookup(ctx context.Context, id string, now time.Time) (Session, error) {
	res, err := lookupScript.Run(ctx, s.client, []string{s.key(id)}, now.UnixMilli()).Result()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, errors.Join(ErrStore, err)
	}

	switch v := res.(type) {
	case int64:
		return Session{}, ErrExpired
	case string:
		var sess Session
		if err := json.Unmarshal([]byte(v), &sess); err != nil {
			return Session{}, errors.Join(ErrStore, err)
		}
		return sess, nil
	default:
		return Session{}, fmt.Errorf("%w: unexpected script result %T", ErrStore, res)
	}
}

// Replace atomically deletes oldID and stores next. It returns
// ErrNotFound when oldID is unknown.
func (s *RedisStore) Replace(ctx context.Context, oldID string, next Session) error {
	val, ttl, err := encodeRedisValue(next, time.Now())
	if err != nil {
		return err
	}
	n, err := replaceScript.Run(ctx, s.client,
		[]string{s.key(oldID), s.key(next.ID)},
		val, ttl.Milliseconds(),
	).Int()
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// DeleteExpired walks the key space with SCAN and evicts expired entries
// through the lookup script. Redis TTLs remove stale keys on their own;
// this only closes the grace window early.
func (s *RedisStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	n := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		id := strings.TrimPrefix(iter.Val(), s.prefix)
		if _, err := s.Lookup(ctx, id, now); errors.Is(err, ErrExpired) {
			n++
		} else if err != nil && !errors.Is(err, ErrNotFound) {
			return n, err
		}
	}
	if err := iter.Err(); err != nil {
		return n, errors.Join(ErrStore, err)
	}
	return n, nil
}

func encodeRedisValue(sess Session, now time.Time) (string, time.Duration, error) {
	body, err := json.Marshal(sess)
	if err != nil {
		return "", 0, errors.Join(ErrStore, err)
	}
	ttl := sess.Remaining(now) + redisGrace
	return strconv.FormatInt(sess.ExpiresAt.UnixMilli(), 10) + "|" + string(body), ttl, nil
}
