package rudder

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileFeed_MissingFile(t *testing.T) {
	feed := NewFileFeed(filepath.Join(t.TempDir(), "absent.json"))
	if _, err := feed.Watch(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFileFeed_EmitsInitialContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte("initial"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := NewFileFeed(path).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	select {
	case v := <-out:
		if string(v) != "initial" {
			t.Errorf("expected initial, got %q", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial emission")
	}
}

func TestFileFeed_EmitsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte("one"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := NewFileFeed(path).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	// Drain the initial emission first
	select {
	case <-out:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial emission")
	}

	if err := os.WriteFile(path, []byte("two"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case v := <-out:
			// Some platforms deliver several events per write; accept the
			// first emission carrying the new contents.
			if string(v) == "two" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for write emission")
		}
	}
}

func TestFileFeed_EmitsOnAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	if err := os.WriteFile(path, []byte("one"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := NewFileFeed(path).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	select {
	case <-out:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial emission")
	}

	// Write-then-rename, the way editors save
	tmp := filepath.Join(dir, "data.txt.tmp")
	if err := os.WriteFile(tmp, []byte("two"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case v := <-out:
			if string(v) == "two" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for replace emission")
		}
	}
}
