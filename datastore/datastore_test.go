package datastore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	dds, err := NewDiskDataStore(root)
	if err != nil {
		t.Fatal(err)
	}

	err = dds.WriteFile(ctx, "nested/dir/num.csv", strings.NewReader(",0\n0,a\n"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := dds.ReadFile(ctx, "nested/dir/num.csv")
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != ",0\n0,a\n" {
		t.Fatalf("got %q", string(b))
	}

	// overwrite in place, no temp files left behind
	err = dds.WriteFile(ctx, "nested/dir/num.csv", strings.NewReader(",0\n"))
	if err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(filepath.Join(root, "nested", "dir"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single file, got %d entries", len(entries))
	}

	abs := filepath.Join(t.TempDir(), "abs.csv")
	if err := dds.WriteFile(ctx, abs, strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(abs); err != nil {
		t.Fatal("absolute paths should not be rooted", err)
	}

	if _, err := dds.ReadFile(ctx, "missing.csv"); err == nil {
		t.Fatal("expected error reading a missing file")
	}
}

func TestS3Key(t *testing.T) {
	s, err := NewS3DataStore("bucket", "runs/2024")
	if err != nil {
		t.Fatal(err)
	}
	if k := s.Key("num.csv"); k != "runs/2024/num.csv" {
		t.Fatalf("got key %s", k)
	}

	s, err = NewS3DataStore("bucket", "")
	if err != nil {
		t.Fatal(err)
	}
	if k := s.Key("a/cat.csv"); k != "a/cat.csv" {
		t.Fatalf("got key %s", k)
	}

	if _, err := NewS3DataStore("", "x"); !errors.Is(err, ErrMissingBucket) {
		t.Fatalf("expected missing bucket, got %v", err)
	}
}
