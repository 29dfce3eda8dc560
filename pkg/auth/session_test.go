package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	testAuthKey = []byte("test-auth-key-must-be-32-bytes!!")
	testEncKey  = []byte("test-enc-key-must-be-32-bytes!!!")
)

func TestSessionOptions(t *testing.T) {
	opts := sessionOptions(true)
	if opts.MaxAge != int(ShiftLength/time.Second) {
		t.Errorf("MaxAge = %d", opts.MaxAge)
	}
	if !opts.Secure || !opts.HttpOnly {
		t.Errorf("expected secure http-only cookie, got %+v", opts)
	}
}

func TestRedisStore_NewWithoutCookie(t *testing.T) {
	// No cookie means Redis is never consulted, so a nil client is fine.
	store := NewSessionStore(nil, testAuthKey, testEncKey, false)
	r := httptest.NewRequest(http.MethodGet, "/api/items", http.NoBody)

	s, err := store.New(r, SessionName)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !s.IsNew {
		t.Error("expected a fresh session")
	}
}

func TestRedisStore_TamperedCookie(t *testing.T) {
	store := NewSessionStore(nil, testAuthKey, testEncKey, false)
	r := httptest.NewRequest(http.MethodGet, "/api/items", http.NoBody)
	r.AddCookie(&http.Cookie{Name: SessionName, Value: "forged"})

	s, err := store.New(r, SessionName)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !s.IsNew || s.ID != "" {
		t.Errorf("forged cookie must yield a fresh session, got id %q", s.ID)
	}
}

// Skipped unless REDIS_URL is set.
func TestRedisStore_Integration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("parse REDIS_URL: %v", err)
	}
	client := redis.NewClient(opt)
	defer client.Close()

	store := NewSessionStore(client, testAuthKey, testEncKey, false)
	userID := uuid.NewString()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/login", http.NoBody)
	s, _ := store.New(r, SessionName)
	s.Values[SessionUserIDKey] = userID
	if err := store.Save(r, w, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	key := redisKeyPrefix + s.ID
	t.Cleanup(func() { client.Del(context.Background(), key) })

	// Shorten the TTL, then confirm a read slides it back to a full shift.
	client.Expire(context.Background(), key, time.Minute)

	next := httptest.NewRequest(http.MethodGet, "/api/items", http.NoBody)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	loaded, err := store.New(next, SessionName)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if loaded.IsNew {
		t.Fatal("expected stored session to load")
	}
	if loaded.Values[SessionUserIDKey] != userID {
		t.Errorf("user_id = %v, want %s", loaded.Values[SessionUserIDKey], userID)
	}
	if ttl := client.TTL(context.Background(), key).Val(); ttl < ShiftLength-time.Minute {
		t.Errorf("expected TTL slid to a full shift, got %s", ttl)
	}

	del := httptest.NewRecorder()
	loaded.Options.MaxAge = -1
	if err := store.Save(next, del, loaded); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := client.Exists(context.Background(), key).Val(); n != 0 {
		t.Error("expected session key removed")
	}
}
