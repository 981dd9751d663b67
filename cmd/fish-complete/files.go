package main

import (
	"os"
	"path/filepath"

	"github.com/vially/fish-shell/pkg/complete"
)

// dirFileExpander is the host-side implementation of complete.FileExpander,
// the generic file/path expander that lives outside the completion engine
// itself since it talks to the real filesystem. It lists the directory named
// by token's prefix and fuzzy-matches the remaining basename against each
// entry.
type dirFileExpander struct{}

func (dirFileExpander) ExpandFiles(token string, opts complete.FileExpandOptions) ([]complete.Candidate, error) {
	dir, base := filepath.Split(token)
	listDir := dir
	if listDir == "" {
		listDir = "."
	}

	entries, err := os.ReadDir(listDir)
	if err != nil {
		return nil, nil
	}

	var out []complete.Candidate
	for _, entry := range entries {
		name := entry.Name()
		if opts.DirectoriesOnly && !entry.IsDir() {
			continue
		}

		m, ok := complete.Match(base, name, opts.FuzzyMatch)
		if !ok {
			continue
		}

		text := name
		flags := complete.AutoSpace
		if entry.IsDir() {
			text += "/"
			flags = complete.NoSpace
		}

		var desc string
		if opts.WantDescriptions && !opts.Autosuggest {
			if entry.IsDir() {
				desc = "directory"
			} else {
				desc = "file"
			}
		}

		suffix := complete.Suffix(base, text)
		if complete.RequiresFullReplacement(m.Tier) {
			suffix = dir + text
			flags |= complete.ReplacesToken
		}
		out = append(out, complete.NewCandidate(suffix, desc, m, flags))
	}
	return out, nil
}

// externalScanner adapts fsutil.EachExternal's fire-and-forget callback to
// shellenv.ExternalScanner's early-exit shape.
type externalScanner struct {
	each func(f func(string))
}

func (s externalScanner) EachExternal(f func(name string) bool) {
	done := false
	s.each(func(name string) {
		if done {
			return
		}
		if !f(name) {
			done = true
		}
	})
}
