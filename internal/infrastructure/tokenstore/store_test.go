package tokenstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/curato/curation-client/internal/core/ports"
)

func exerciseStore(t *testing.T, store ports.TokenStore) {
	t.Helper()
	ctx := context.Background()

	if _, ok := store.Token(ctx); ok {
		t.Fatalf("expected empty store")
	}

	if err := store.SetToken(ctx, "abc.def.ghi"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if got, ok := store.Token(ctx); !ok || got != "abc.def.ghi" {
		t.Fatalf("expected token round-trip, got %q (%v)", got, ok)
	}

	if err := store.SetToken(ctx, "second"); err != nil {
		t.Fatalf("SetToken overwrite: %v", err)
	}
	if got, _ := store.Token(ctx); got != "second" {
		t.Fatalf("expected overwrite, got %q", got)
	}

	blob := json.RawMessage(`{"username":"alice"}`)
	if err := store.SetUser(ctx, blob); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	if got, ok := store.User(ctx); !ok || string(got) != string(blob) {
		t.Fatalf("expected user round-trip, got %s (%v)", got, ok)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := store.Token(ctx); ok {
		t.Fatalf("expected token cleared")
	}
	if _, ok := store.User(ctx); ok {
		t.Fatalf("expected user cleared")
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second Clear should be a no-op, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(""))
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	exerciseStore(t, NewFileStore(path, "", zerolog.Nop()))
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx := context.Background()

	if err := NewFileStore(path, "app:", zerolog.Nop()).SetToken(ctx, "persisted"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	got, ok := NewFileStore(path, "app:", zerolog.Nop()).Token(ctx)
	if !ok || got != "persisted" {
		t.Fatalf("expected persisted token, got %q (%v)", got, ok)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		t.Fatalf("invalid json on disk: %v", err)
	}
	if values["app:token"] != "persisted" {
		t.Fatalf("expected prefixed key, got %v", values)
	}
}

func TestFileStore_CorruptFileReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := NewFileStore(path, "", zerolog.Nop())
	ctx := context.Background()

	if _, ok := store.Token(ctx); ok {
		t.Fatalf("expected corrupt store to read as absent")
	}
	if err := store.SetToken(ctx, "fresh"); err != nil {
		t.Fatalf("SetToken over corrupt file: %v", err)
	}
	if got, _ := store.Token(ctx); got != "fresh" {
		t.Fatalf("expected fresh token, got %q", got)
	}
}

func TestNewKeys(t *testing.T) {
	keys := NewKeys("")
	if keys.Token != "curato:token" || keys.User != "curato:user" {
		t.Fatalf("unexpected default keys: %+v", keys)
	}
	keys = NewKeys("x_")
	if keys.Token != "x_token" || keys.User != "x_user" {
		t.Fatalf("unexpected prefixed keys: %+v", keys)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("CURATO_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CURATO_TEST_REDIS_ADDR not set")
	}
	client, err := ConnectRedis(context.Background(), RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	store := NewRedisStore(client, "curato-test:"+t.Name()+":", zerolog.Nop())
	_ = store.Clear(context.Background())
	exerciseStore(t, store)
}
