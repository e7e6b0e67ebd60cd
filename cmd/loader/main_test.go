package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	accept := []string{"y\n", "Y\n", "yes\n", "YES\n", "s\n", "sim\n", " Sim \n"}
	for _, in := range accept {
		if !confirm(strings.NewReader(in)) {
			t.Errorf("confirm(%q) = false, want true", in)
		}
	}
	decline := []string{"n\n", "no\n", "\n", "anything\n", ""}
	for _, in := range decline {
		if confirm(strings.NewReader(in)) {
			t.Errorf("confirm(%q) = true, want false", in)
		}
	}
}

func TestMissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.csv")
	if err := os.WriteFile(present, []byte("a,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	absent := filepath.Join(dir, "absent.csv")

	missing := missingFiles(present, absent)
	if len(missing) != 1 || missing[0] != absent {
		t.Errorf("missingFiles = %v, want [%s]", missing, absent)
	}

	if got := missingFiles(present); len(got) != 0 {
		t.Errorf("missingFiles(present) = %v, want empty", got)
	}
}
