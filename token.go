package options

// tokenCode tags a token the scanner produced. The numeric layout
// deliberately reuses the classifier's SPACE/LINE_FEED/COMMENT/OPTION
// byte classes for the first four codes, then extends the OPTION and
// VALUE classes with two low bits each so the identifier family
// (OPTION/SECTION/SUBOPTION/INCLUDE) and the value family
// (VALUE/QUOTED_VALUE) can be tested with a single bit mask.
type tokenCode int32

const (
	tokEndOfFile tokenCode = 0
	tokSpace     tokenCode = 1
	tokLineFeed  tokenCode = 2
	tokComment   tokenCode = 3
	tokOption    tokenCode = 4
	tokSection   tokenCode = 5 // tokOption | 1
	tokSuboption tokenCode = 6 // tokOption | 2
	tokInclude   tokenCode = 7 // tokOption | 3
	tokValue     tokenCode = 8
	tokQuotedValue tokenCode = 9 // tokValue | 1
)

func (c tokenCode) String() string {
	switch c {
	case tokEndOfFile:
		return "end-of-file"
	case tokSpace:
		return "space"
	case tokLineFeed:
		return "line-feed"
	case tokComment:
		return "comment"
	case tokOption:
		return "option"
	case tokSection:
		return "section"
	case tokSuboption:
		return "suboption"
	case tokInclude:
		return "include"
	case tokValue:
		return "value"
	case tokQuotedValue:
		return "quoted-value"
	default:
		return "unknown"
	}
}

// isOptionFamily reports whether code identifies something that opens
// a new scope at the identifier level: an option, a section or an
// include. Deliberately excludes SUBOPTION even though its numeric
// code shares the OPTION bit (SUBOPTION = tokOption|2) — a suboption
// only ever closes its own single-token scope and must never be
// mistaken, inside parseOption, for the sibling/end-of-option
// identifier that terminates the enclosing option's scope.
func isOptionFamily(code tokenCode) bool {
	return code == tokOption || code == tokSection || code == tokInclude
}

// scanState is a bitmask over which identifier reclassifications the
// scanner is currently allowed to perform. The bit positions mirror
// the token codes they gate (1<<OPTION, 1<<SUBOPTION, 1<<VALUE) so
// the mask can be read directly off the grammar state machine in
// parser.go.
type scanState uint16

const (
	bitOption    scanState = 1 << tokOption
	bitSuboption scanState = 1 << tokSuboption
	bitValue     scanState = 1 << tokValue
)

func (s scanState) hasOption() bool    { return s&bitOption != 0 }
func (s scanState) hasSuboption() bool { return s&bitSuboption != 0 }
func (s scanState) hasValue() bool     { return s&bitValue != 0 }

// token is one entry on a file's token stack: a classified byte span
// plus the source location where it starts and, for identifiers that
// were resolved against the schema, the resolved node.
type token struct {
	code   tokenCode
	first  int
	size   int
	loc    Location
	option *Node
}

// tokenStack is the growable, index-stable token buffer a file keeps.
// Index 0 is a reserved zero-length SPACE sentinel representing "no
// indentation yet" for the virtual file scope; it is created once by
// newFile and is never touched by reduce. last is the read cursor:
// tokens at indices < last have been consumed (shifted) by the
// parser but may still be retained on the stack; tokens at indices >=
// last have not been shifted yet (they exist on the stack only after
// an unshift, and are otherwise scanned on demand by shift).
type tokenStack struct {
	data []token
	last int
}

// reduce permanently removes the token at idx, which must not be the
// index-0 sentinel and must not be at or ahead of the read cursor.
// Every other live index above idx (the current file's "latest
// indent" pointer included) shifts down by one; callers holding other
// token indices across a reduce (scopes pinned to an indentation
// token, enclosing loop's own token index) must account for this
// themselves, which parser.go does by construction — reduce is always
// called on tokens at or behind the cursor, and scopes are always
// pinned at indices at or below whatever is being reduced.
func (ps *parser) reduce(idx int) {
	f := ps.file
	f.tokens.data = append(f.tokens.data[:idx], f.tokens.data[idx+1:]...)
	if f.indent > idx {
		f.indent--
	}
	f.tokens.last--
}

// unshift moves the read cursor back by one, un-consuming the most
// recently shifted token so it can be re-read by an enclosing parse
// function.
func (ps *parser) unshift() {
	ps.file.tokens.last--
}

// shift returns the next token, scanning a fresh one via scan if the
// cursor has caught up with the stack, and advances the cursor. It
// returns the token's stack index alongside the token itself so
// callers can later reduce exactly this token.
func (ps *parser) shift(sc *scope, state scanState) (int, token, error) {
	f := ps.file
	if f.tokens.last == len(f.tokens.data) {
		if _, err := ps.scan(sc, state); err != nil {
			return 0, token{}, err
		}
	}
	idx := f.tokens.last
	t := f.tokens.data[idx]
	f.tokens.last++
	return idx, t, nil
}
