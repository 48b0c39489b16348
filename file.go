package options

import (
	"os"
	"path/filepath"
)

// file is one open input: a string literal the caller handed to
// ParseOptions, or a file opened by ParseOptionsFile/an include
// directive. includer links back to whatever file's parseInclude
// opened this one, forming the chain includeFile walks for both cycle
// detection and depth limiting.
type file struct {
	includer *file
	name     string
	path     string
	handle   *os.File
	loc      Location
	buf      inputBuffer
	tokens   tokenStack
	indent   int
}

func newFile(name string) *file {
	f := &file{name: name, path: name}
	f.loc = Location{File: name, Line: 1, Column: 1}
	f.tokens.data = make([]token, 1, 64)
	f.tokens.data[0] = token{code: tokSpace}
	f.tokens.last = 1
	return f
}

// newStringFile wraps an in-memory document. It never refills: the
// whole document is already resident.
func newStringFile(data []byte) *file {
	f := newFile("<string>")
	f.buf.data = data
	f.buf.filled = len(data)
	f.buf.eof = true
	return f
}

// openFile opens path for reading and resolves its absolute path
// up front so later include-cycle checks compare canonical paths
// rather than whatever relative spelling an include directive used.
func openFile(name string) (*file, error) {
	f := newFile(name)
	path, err := filepath.Abs(name)
	if err != nil {
		return nil, &ResourceError{Op: "resolve", Path: name, code: CodeNoSuchFile, Err: err}
	}
	f.path = path

	handle, err := os.Open(name)
	if err != nil {
		code := CodeNoSuchFile
		if os.IsPermission(err) {
			code = CodeNoAccess
		}
		return nil, &ResourceError{Op: "open", Path: name, code: code, Err: err}
	}
	f.handle = handle
	f.buf.src = handle
	return f, nil
}

func (f *file) close() error {
	if f.handle != nil {
		return f.handle.Close()
	}
	return nil
}
