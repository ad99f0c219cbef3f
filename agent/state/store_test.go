package state

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreLoadMissing(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	_, err := store.Load(context.Background(), "nope")
	if !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
}

func TestMemoryStoreSaveAndLoadSharesPointer(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	st := NewSessionState("s1", time.Now())
	if err := store.Save(context.Background(), st); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != st {
		t.Fatal("expected the live session pointer back")
	}
}

func TestMemoryStoreSaveRejectsInvalid(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.Save(context.Background(), nil); !errors.Is(err, ErrNilSessionState) {
		t.Fatalf("expected ErrNilSessionState, got %v", err)
	}

	st := NewSessionState("  ", time.Now())
	if err := store.Save(context.Background(), st); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}

	st = NewSessionState("s1", time.Now())
	st.Cart["ghost"] = 2
	if err := store.Save(context.Background(), st); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	st := NewSessionState("s1", time.Now())
	if err := store.Save(context.Background(), st); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(context.Background(), "s1"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound after delete, got %v", err)
	}
}
