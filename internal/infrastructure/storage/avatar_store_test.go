package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileName(t *testing.T) {
	name := FileName("../my pic.final.PNG")
	if !strings.HasPrefix(name, "mypic.final") || !strings.HasSuffix(name, ".PNG") {
		t.Fatalf("unexpected name %q", name)
	}
	if strings.ContainsAny(name, " /") {
		t.Fatalf("name must be a flat base name without spaces: %q", name)
	}
	if FileName("a.png") == FileName("a.png") {
		t.Fatalf("names must be unique per upload")
	}
}

func TestAvatarStore_SaveRemovePath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewAvatarStore(dir, "default.jpg")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	name, err := store.Save(ctx, "face.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil || string(b) != "png-bytes" {
		t.Fatalf("stored content mismatch: %q %v", b, err)
	}
	if got := store.Path(name); got != filepath.Join(dir, name) {
		t.Fatalf("expected stored path, got %s", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temporary upload files must not linger, found %d entries", len(entries))
	}

	if err := store.Remove(ctx, name); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := store.Path(name); got != filepath.Join(dir, "default.jpg") {
		t.Fatalf("expected default path for a removed file, got %s", got)
	}
	if err := store.Remove(ctx, name); err != nil {
		t.Fatalf("removing a missing file must be a no-op, got %v", err)
	}
}

func TestAvatarStore_KeepsDefaultAndConfinesNames(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewAvatarStore(dir, "default.jpg")
	if err := os.WriteFile(filepath.Join(dir, "default.jpg"), []byte("d"), 0o644); err != nil {
		t.Fatalf("seed default: %v", err)
	}

	if err := store.Remove(context.Background(), "default.jpg"); err != nil {
		t.Fatalf("remove default: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "default.jpg")); err != nil {
		t.Fatalf("default avatar must survive removal")
	}

	outside := filepath.Join(t.TempDir(), "secret.txt")
	_ = os.WriteFile(outside, []byte("s"), 0o644)
	if got := store.Path("../" + filepath.Base(filepath.Dir(outside)) + "/secret.txt"); got != filepath.Join(dir, "default.jpg") {
		t.Fatalf("names must be confined to the avatar directory, got %s", got)
	}
	if got := store.Path(".."); got != filepath.Join(dir, "default.jpg") {
		t.Fatalf("expected default for %q, got %s", "..", got)
	}
}

func TestNewAvatarStore_RequiresDir(t *testing.T) {
	if _, err := NewAvatarStore("", ""); err == nil {
		t.Fatalf("expected error without a directory")
	}
}
