package options

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// EntryType classifies what a Globber matched.
type EntryType int8

const (
	EntryUnknown EntryType = iota
	EntryRegular
	EntryDirectory
)

// GlobEntry is one match a Globber reports.
type GlobEntry struct {
	Name string
	Type EntryType
}

// Globber resolves an include directive's file name, which may carry
// a DOS-style wildcard ('*'/'?') in its final path component only,
// into the concrete files it names. Implementations are free to
// search however they like; the default walks the directory named by
// filespec's parent and matches its entries' base names.
type Globber interface {
	Glob(filespec string) ([]GlobEntry, error)
}

// dirGlobber is the default Globber, backed by doublestar for pattern
// matching instead of a hand-rolled backtracking matcher.
type dirGlobber struct{}

func (dirGlobber) Glob(filespec string) ([]GlobEntry, error) {
	dir := filepath.Dir(filespec)
	pattern := filepath.Base(filespec)

	if !hasMeta(pattern) {
		info, err := os.Stat(filespec)
		if err != nil {
			code := CodeNoSuchFile
			if os.IsPermission(err) {
				code = CodeNoAccess
			}
			return nil, &ResourceError{Op: "include", Path: filespec, code: code, Err: err}
		}
		return []GlobEntry{{Name: filespec, Type: entryType(info)}}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		code := CodeNoSuchFile
		if os.IsPermission(err) {
			code = CodeNoAccess
		}
		return nil, &ResourceError{Op: "include", Path: filespec, code: code, Err: err}
	}

	var out []GlobEntry
	for _, e := range entries {
		ok, err := doublestar.Match(pattern, e.Name())
		if err != nil {
			return nil, &ResourceError{Op: "include", Path: filespec, code: CodeBadParameter, Err: err}
		}
		if !ok {
			continue
		}
		info, err := e.Info()
		typ := EntryUnknown
		if err == nil {
			typ = entryType(info)
		}
		out = append(out, GlobEntry{Name: filepath.Join(dir, e.Name()), Type: typ})
	}
	return out, nil
}

func entryType(info os.FileInfo) EntryType {
	switch {
	case info.Mode().IsRegular():
		return EntryRegular
	case info.IsDir():
		return EntryDirectory
	default:
		return EntryUnknown
	}
}

func hasMeta(pattern string) bool {
	for _, r := range pattern {
		if r == '*' || r == '?' || r == '[' {
			return true
		}
	}
	return false
}
