package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	shared "github.com/liftsync/server/pkg"
)

func openTemp(t *testing.T) *Manifest {
	t.Helper()
	m, err := Open(filepath.Join(t.TempDir(), "state", "manifest.db"))
	if err != nil {
		t.Fatalf("open manifest: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestShouldRebuildLifecycle(t *testing.T) {
	ctx := context.Background()
	m := openTemp(t)

	rebuild, err := m.ShouldRebuild(ctx, "w-1", "fp-a")
	if err != nil {
		t.Fatalf("ShouldRebuild: %v", err)
	}
	if !rebuild {
		t.Error("expected rebuild for unseen workout")
	}

	rec := &shared.ArtifactRecord{
		SourceID:    "w-1",
		Fingerprint: "fp-a",
		Path:        "fit_output/w-1.fit",
		Size:        512,
		SHA256:      "deadbeef",
		HRSource:    "daily",
	}
	if err := m.MarkBuilt(ctx, rec); err != nil {
		t.Fatalf("MarkBuilt: %v", err)
	}

	rebuild, err = m.ShouldRebuild(ctx, "w-1", "fp-a")
	if err != nil {
		t.Fatalf("ShouldRebuild after MarkBuilt: %v", err)
	}
	if rebuild {
		t.Error("expected no rebuild for unchanged payload")
	}

	// Payload changed: same workout, new fingerprint.
	rebuild, err = m.ShouldRebuild(ctx, "w-1", "fp-b")
	if err != nil {
		t.Fatalf("ShouldRebuild with new fingerprint: %v", err)
	}
	if !rebuild {
		t.Error("expected rebuild after payload change")
	}
}

func TestMarkBuiltReplacesRow(t *testing.T) {
	ctx := context.Background()
	m := openTemp(t)

	first := &shared.ArtifactRecord{SourceID: "w-2", Fingerprint: "fp-a", Path: "a.fit", Size: 1, SHA256: "aa"}
	second := &shared.ArtifactRecord{SourceID: "w-2", Fingerprint: "fp-b", Path: "b.fit", Size: 2, SHA256: "bb"}

	if err := m.MarkBuilt(ctx, first); err != nil {
		t.Fatalf("MarkBuilt first: %v", err)
	}
	if err := m.MarkBuilt(ctx, second); err != nil {
		t.Fatalf("MarkBuilt second: %v", err)
	}

	rebuild, err := m.ShouldRebuild(ctx, "w-2", "fp-a")
	if err != nil {
		t.Fatal(err)
	}
	if !rebuild {
		t.Error("old fingerprint should no longer be current")
	}
	rebuild, err = m.ShouldRebuild(ctx, "w-2", "fp-b")
	if err != nil {
		t.Fatal(err)
	}
	if rebuild {
		t.Error("new fingerprint should be current")
	}
}

func TestHashBytes(t *testing.T) {
	got := HashBytes([]byte("hello world"))
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got != want {
		t.Errorf("HashBytes = %q, want %q", got, want)
	}
}

func TestHashFileMatchesHashBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.fit")
	content := []byte("not really a fit file")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	fromFile, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if fromFile != HashBytes(content) {
		t.Errorf("HashFile = %q, HashBytes = %q", fromFile, HashBytes(content))
	}
}
