package options

// DefaultMaxIncludeDepth bounds how many files may be nested via
// "include:" directives before parsing fails, absent an explicit
// ParseConfig.MaxIncludeDepth override.
const DefaultMaxIncludeDepth = 32

// includeFilespec expands filespec through the configured Globber and
// includes every regular file it names, in the order the Globber
// returned them.
func (ps *parser) includeFilespec(sc *scope, filespec string) error {
	globber := ps.cfg.Globber
	if globber == nil {
		globber = dirGlobber{}
	}
	entries, err := globber.Glob(filespec)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Type != EntryRegular {
			continue
		}
		if err := ps.includeFile(sc, e.Name); err != nil {
			return err
		}
	}
	return nil
}

// includeFile opens name as a nested file, rejecting it if doing so
// would exceed the configured depth limit or would re-open a file
// already present in the current includer chain (a cycle), then
// parses it with a fresh file scope whose schema is the including
// section's own children — an included file continues the enclosing
// section's nesting, it does not start a brand new top-level schema.
// sc is the include directive's own scope (sc.option is the built-in
// include node, which has no children of its own); the reference
// implementation's equivalent construction reads the include node's
// own empty options field here, which would hand every included file
// an empty schema — its own assertion immediately above that line
// checks sc.encloser's option instead, so this follows the asserted
// intent rather than the literal field access.
func (ps *parser) includeFile(sc *scope, name string) error {
	depth := 1
	for f := ps.file; f != nil; f = f.includer {
		depth++
	}
	if depth > ps.maxIncludeDepth() {
		return ps.semanticErr(ps.file.loc, "include depth exceeded opening %s", name)
	}

	child, err := openFile(name)
	if err != nil {
		return err
	}
	child.includer = ps.file

	for anc := child.includer; anc != nil; anc = anc.includer {
		if anc.path == child.path {
			loc := child.loc
			child.close()
			return ps.semanticErr(loc, "circular include of %s", name)
		}
	}

	parent := ps.file
	ps.file = child

	root := Node{Kind: KindSection, Children: sc.encloser.option.Children}
	rootScope := &scope{option: &root}
	err = ps.parseFile(rootScope)

	ps.file = parent
	child.close()
	return err
}

func (ps *parser) maxIncludeDepth() int {
	if ps.cfg.MaxIncludeDepth > 0 {
		return ps.cfg.MaxIncludeDepth
	}
	return DefaultMaxIncludeDepth
}
