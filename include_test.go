package options

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestIncludeFileParsesChildUnderEnclosingSchema(t *testing.T) {
	dir := t.TempDir()
	childPath := writeTempFile(t, dir, "child.conf", "foo: bar\n")

	var got []string
	foo := Option("foo").WithAccept(func(n *Node, lex Lexeme, userCtx any) int32 {
		got = append(got, lex.String())
		return 0
	})
	// The enclosing section's own children are what the included file
	// gets parsed against — here, just foo, matching the flat
	// "foo: bar" content of child.conf.
	fileScope := &scope{option: &Node{Kind: KindSection, Children: []Node{foo}}}
	sc := &scope{encloser: fileScope, option: &includeNode}

	ps := &parser{file: newFile("<root>")}
	if err := ps.includeFile(sc, childPath); err != nil {
		t.Fatalf("includeFile: %v", err)
	}
	if len(got) != 1 || got[0] != "bar" {
		t.Fatalf("got = %v, want [bar]", got)
	}
}

func TestIncludeFileDetectsCycle(t *testing.T) {
	dir := t.TempDir()
	path, err := filepath.Abs(writeTempFile(t, dir, "a.conf", ""))
	if err != nil {
		t.Fatal(err)
	}

	root := newFile(path)
	root.path = path

	sc := &scope{encloser: &scope{option: &Node{Kind: KindSection}}, option: &includeNode}
	ps := &parser{file: root}

	err = ps.includeFile(sc, path)
	if err == nil {
		t.Fatal("expected a circular-include error")
	}
	if _, ok := err.(*SemanticError); !ok {
		t.Fatalf("err = %T, want *SemanticError", err)
	}
}

func TestIncludeFileRejectsExcessiveDepth(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "leaf.conf", "")

	// Build an includer chain one longer than the configured limit.
	var chain *file
	for i := 0; i < 3; i++ {
		f := newFile("<ancestor>")
		f.includer = chain
		chain = f
	}

	sc := &scope{encloser: &scope{option: &Node{Kind: KindSection}}, option: &includeNode}
	ps := &parser{cfg: ParseConfig{MaxIncludeDepth: 2}, file: chain}

	err := ps.includeFile(sc, path)
	if err == nil {
		t.Fatal("expected a depth-exceeded error")
	}
	if _, ok := err.(*SemanticError); !ok {
		t.Fatalf("err = %T, want *SemanticError", err)
	}
}

// fakeGlobber lets includeFilespec tests control exactly what entries
// a filespec expands to without touching the filesystem's own glob
// semantics.
type fakeGlobber struct {
	entries []GlobEntry
	err     error
}

func (g fakeGlobber) Glob(string) ([]GlobEntry, error) { return g.entries, g.err }

func TestIncludeFilespecSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	filePath := writeTempFile(t, dir, "a.conf", "foo: 1\n")

	var accepted []string
	foo := Option("foo").WithAccept(func(n *Node, lex Lexeme, userCtx any) int32 {
		accepted = append(accepted, lex.String())
		return 0
	})
	fileScope := &scope{option: &Node{Kind: KindSection, Children: []Node{foo}}}
	sc := &scope{encloser: fileScope, option: &includeNode}

	globber := fakeGlobber{entries: []GlobEntry{
		{Name: dir, Type: EntryDirectory},
		{Name: filePath, Type: EntryRegular},
	}}
	ps := &parser{cfg: ParseConfig{Globber: globber}, file: newFile("<root>")}

	if err := ps.includeFilespec(sc, "*.conf"); err != nil {
		t.Fatalf("includeFilespec: %v", err)
	}
	if len(accepted) != 1 || accepted[0] != "1" {
		t.Fatalf("accepted = %v, want [1]", accepted)
	}
}
