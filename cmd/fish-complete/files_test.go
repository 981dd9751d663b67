package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vially/fish-shell/pkg/complete"
)

func TestDirFileExpander_MatchesPrefixAndMarksDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "report.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	exp := dirFileExpander{}
	cands, err := exp.ExpandFiles(filepath.Join(dir, "re"), complete.FileExpandOptions{WantDescriptions: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 1 || cands[0].Text != "port.txt" {
		t.Fatalf("got %+v, want a single suffix candidate for report.txt", cands)
	}
	if cands[0].Description != "file" {
		t.Errorf("description = %q, want %q", cands[0].Description, "file")
	}

	cands, err = exp.ExpandFiles(filepath.Join(dir, "s"), complete.FileExpandOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 1 || cands[0].Text != "ub/" {
		t.Fatalf("got %+v, want a single suffix candidate for sub/", cands)
	}
	if cands[0].Flags&complete.NoSpace == 0 {
		t.Errorf("expected NoSpace on a directory candidate")
	}
}

func TestDirFileExpander_DirectoriesOnly(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "report.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	exp := dirFileExpander{}
	cands, err := exp.ExpandFiles(dir+string(filepath.Separator), complete.FileExpandOptions{DirectoriesOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 1 || cands[0].Text != "sub/" {
		t.Fatalf("got %+v, want only the sub/ directory", cands)
	}
}

func TestExternalScanner_StopsEarly(t *testing.T) {
	calls := 0
	s := externalScanner{each: func(f func(string)) {
		for _, name := range []string{"a", "b", "c"} {
			calls++
			f(name)
		}
	}}

	var seen []string
	s.EachExternal(func(name string) bool {
		seen = append(seen, name)
		return len(seen) < 2
	})
	if len(seen) != 2 {
		t.Fatalf("seen = %v, want 2 names before stopping", seen)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want the underlying scan to still run to completion (fsutil.EachExternal has no early-exit)", calls)
	}
}
