package utils

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsPermanent(t *testing.T) {
	perm := PermError("bad column")
	if !IsPermanent(perm) {
		t.Fatal("PermError should be permanent")
	}
	wrapped := fmt.Errorf("error in stage 2: %w", fmt.Errorf("error in Transform: %w", perm))
	if !IsPermanent(wrapped) {
		t.Fatal("wrapped PermError should be permanent")
	}
	if !errors.Is(wrapped, perm) {
		t.Fatal("errors.Is should find the sentinel")
	}
	if IsPermanent(errors.New("connection reset")) {
		t.Fatal("plain error should not be permanent")
	}
	if IsPermanent(nil) {
		t.Fatal("nil should not be permanent")
	}
}

func TestHelpers(t *testing.T) {
	if !ContainsString([]string{"a", "b"}, "b") || ContainsString([]string{"a"}, "c") {
		t.Fatal("ContainsString")
	}
	if got := ArrayOrEmpty[string](nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if *Ptr(3) != 3 {
		t.Fatal("Ptr")
	}
	if id := GenKSortedID("pipe_"); !strings.HasPrefix(id, "pipe_") || len(id) != len("pipe_")+27 {
		t.Fatalf("bad id %s", id)
	}
	if len(GenRandomShortID()) != 8 {
		t.Fatal("short id should be 8 chars")
	}
}
