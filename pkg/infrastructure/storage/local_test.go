package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAndRead(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	data := []byte{0x0e, 0x10, 0x8e, 0x28}
	path, err := store.Write(ctx, "2026/w-1.fit", data)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "w-1.fit" {
		t.Errorf("returned path = %q, want basename w-1.fit", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("written file missing: %v", err)
	}

	got, err := store.Read(ctx, "2026/w-1.fit")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Read = %v, want %v", got, data)
	}
}

func TestWriteOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	if _, err := store.Write(ctx, "w-2.fit", []byte("old")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Write(ctx, "w-2.fit", []byte("new")); err != nil {
		t.Fatal(err)
	}

	got, err := store.Read(ctx, "w-2.fit")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Errorf("Read = %q, want %q", got, "new")
	}
}

func TestReadMissing(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	if _, err := store.Read(context.Background(), "absent.fit"); err == nil {
		t.Fatal("expected error for missing artifact")
	}
}
