package testutil

import (
	"os"
	"path/filepath"
)

// TempDir creates a new temporary directory for use in a test, resolves any
// symlinks in its path (as happens on macOS, where os.TempDir is a symlink),
// and arranges for it to be removed recursively when the test finishes.
func TempDir(c Cleanuper) string {
	dir, err := os.MkdirTemp("", "test")
	if err != nil {
		panic(err)
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { os.RemoveAll(resolved) })
	return resolved
}

// InTempDir creates a new temporary directory as with TempDir, changes the
// working directory into it, and restores the old working directory when the
// test finishes. It returns the path of the temporary directory.
func InTempDir(c Cleanuper) string {
	dir := TempDir(c)
	old, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	MustChdir(dir)
	c.Cleanup(func() { os.Chdir(old) })
	return dir
}

// Dir is a specification of a directory's contents, used with ApplyDir. Keys
// are file or directory names; values are either a Dir (a subdirectory), a
// File (a file with explicit permissions), or a string (a file with default
// permissions, equivalent to File{Content: value}).
type Dir map[string]any

// File is a file with explicit content and permission bits, for use as a
// value in a Dir.
type File struct {
	Perm    os.FileMode
	Content string
}

// ApplyDir builds the directory structure described by dir under the current
// working directory.
func ApplyDir(dir Dir) { applyDir(dir, ".") }

func applyDir(dir Dir, path string) {
	for name, content := range dir {
		full := filepath.Join(path, name)
		switch c := content.(type) {
		case Dir:
			MustMkdirAll(full)
			applyDir(c, full)
		case File:
			MustWriteFile(full, []byte(c.Content), orDefaultPerm(c.Perm))
		case string:
			MustWriteFile(full, []byte(c), 0644)
		default:
			panic("unsupported value in Dir, must be Dir, File or string")
		}
	}
}

func orDefaultPerm(perm os.FileMode) os.FileMode {
	if perm == 0 {
		return 0644
	}
	return perm
}
