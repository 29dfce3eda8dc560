// Package auth resolves the staff member operating the API from a session
// cookie. Session keys: 32 or 64 bytes for HMAC, 16/24/32 bytes for AES.
package auth

import (
	"bytes"
	"context"
	"encoding/base32"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

// ShiftLength is how long an idle session survives. Every authenticated
// request slides the Redis expiry forward by the same amount.
const ShiftLength = 12 * time.Hour

const redisKeyPrefix = "vetclinic:session:"

// RedisStore keeps session values in Redis under vetclinic:session:<id>;
// the cookie carries only the signed and encrypted ID.
type RedisStore struct {
	client  redis.Cmdable
	codecs  []securecookie.Codec
	options *sessions.Options
}

// NewSessionStore returns a Redis-backed store.
func NewSessionStore(client redis.Cmdable, authKey, encryptionKey []byte, secureCookie bool) *RedisStore {
	return &RedisStore{
		client:  client,
		codecs:  securecookie.CodecsFromPairs(authKey, encryptionKey),
		options: sessionOptions(secureCookie),
	}
}

// NewCookieSessionStore keeps session values in the cookie itself. The API
// uses it when Redis is disabled.
func NewCookieSessionStore(authKey, encryptionKey []byte, secureCookie bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(authKey, encryptionKey)
	store.Options = sessionOptions(secureCookie)
	return store
}

func sessionOptions(secureCookie bool) *sessions.Options {
	return &sessions.Options{
		Path:     "/api",
		MaxAge:   int(ShiftLength / time.Second),
		HttpOnly: true,
		Secure:   secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New never fails: an absent, forged or expired session yields a fresh one.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	id, ok := s.decodeID(r, name)
	if !ok {
		return session, nil
	}
	values, err := s.touch(r.Context(), id)
	if err != nil {
		return session, nil
	}
	session.ID = id
	session.Values = values
	session.IsNew = false
	return session, nil
}

func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(r.Context(), redisKeyPrefix+session.ID).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = newSessionID()
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if err := s.client.Set(r.Context(), redisKeyPrefix+session.ID, buf.Bytes(), ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	cookie, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), cookie, session.Options))
	return nil
}

func (s *RedisStore) decodeID(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return "", false
	}
	return id, id != ""
}

// touch loads the values for id and pushes its expiry out by a full shift.
func (s *RedisStore) touch(ctx context.Context, id string) (map[any]any, error) {
	ttl := time.Duration(s.options.MaxAge) * time.Second
	data, err := s.client.GetEx(ctx, redisKeyPrefix+id, ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session %s expired", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	values := make(map[any]any)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&values); err != nil {
		return nil, fmt.Errorf("decode session values: %w", err)
	}
	return values, nil
}

func newSessionID() string {
	return strings.TrimRight(base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
}
