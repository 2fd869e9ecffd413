package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/models"
)

// fakeKV is an in-memory KVRepository for session tests.
type fakeKV struct {
	data    map[string]string
	failGet error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	if f.failGet != nil {
		return "", f.failGet
	}
	value, ok := f.data[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrKeyNotFound)
	}
	return value, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) Remove(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestSessionSaveAndGet(t *testing.T) {
	kv := newFakeKV()
	repo := NewSessionRepository(kv, logger.Nop())
	ctx := context.Background()

	session := models.Session{
		Token:     "acc-1",
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		User: models.SessionUser{
			AccountID: "acc-1",
			Email:     "jane@example.com",
			Name:      "Jane",
		},
	}

	if err := repo.Save(ctx, session); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if got.User.AccountID != session.User.AccountID || got.User.Email != session.User.Email {
		t.Errorf("expected session %+v, got %+v", session, got)
	}
}

func TestSessionGet_AbsentReturnsNotFound(t *testing.T) {
	repo := NewSessionRepository(newFakeKV(), logger.Nop())

	_, err := repo.Get(context.Background())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionGet_StorageFailureDegradesToNotFound(t *testing.T) {
	kv := newFakeKV()
	kv.failGet = errors.New("database is locked")
	repo := NewSessionRepository(kv, logger.Nop())

	_, err := repo.Get(context.Background())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionGet_CorruptPayloadClearedAndNotFound(t *testing.T) {
	kv := newFakeKV()
	kv.data[sessionKey] = "{not json"
	repo := NewSessionRepository(kv, logger.Nop())

	_, err := repo.Get(context.Background())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, ok := kv.data[sessionKey]; ok {
		t.Error("expected corrupt session payload to be removed")
	}
}

func TestSessionClear_AbsentIsNoOp(t *testing.T) {
	repo := NewSessionRepository(newFakeKV(), logger.Nop())

	if err := repo.Clear(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
