package options

import "bytes"

func classAt(f *file, idx int) class {
	if idx >= f.buf.filled {
		return classNone
	}
	return classTable[f.buf.data[idx]]
}

func byteAt(f *file, idx int) byte {
	if idx >= f.buf.filled {
		return 0
	}
	return f.buf.data[idx]
}

func scanSpace(f *file, idx int) int {
	for classAt(f, idx) == classSpace {
		idx++
	}
	return idx
}

func scanComment(f *file, idx int) int {
	for classAt(f, idx) > 0 && byteAt(f, idx) != '\n' {
		idx++
	}
	return idx
}

func scanIdentifier(f *file, idx int) int {
	for classAt(f, idx) == classOption {
		idx++
	}
	return idx
}

func scanValue(f *file, idx int) int {
	for classAt(f, idx) >= classOption && byteAt(f, idx) != '"' {
		idx++
	}
	return idx
}

// tokenize appends a token spanning [first,last) to the current
// file's token stack, advances the consumed cursor and the
// line/column location tracker, and returns the token. Every token
// the scanner produces, including END_OF_FILE, passes through here.
func (ps *parser) tokenize(code tokenCode, first, last int, node *Node) token {
	f := ps.file
	size := last - first
	t := token{code: code, first: first, size: size, loc: f.loc, option: node}
	f.tokens.data = append(f.tokens.data, t)
	f.buf.consumed += size
	if code == tokLineFeed {
		f.loc.Line++
		f.loc.Column = 1
	} else {
		f.loc.Column += size
	}
	return t
}

// scan produces and appends the next token, refilling the buffer as
// needed. It classifies the first unconsumed byte, then greedily
// extends the run for classes that may span multiple bytes (space,
// comment, identifier, value), refilling and continuing the same
// class whenever the run reaches the end of what is currently
// buffered. An identifier run that ends while more input might still
// arrive (last == filled but not yet eof) is re-extended rather than
// tokenized early, so a schema identifier never gets cut short purely
// by buffer boundaries.
func (ps *parser) scan(sc *scope, state scanState) (token, error) {
	f := ps.file
	first := f.buf.consumed
	last := first

	if last == f.buf.filled {
		more, err := f.buf.refill()
		if err != nil {
			return token{}, ps.resourceErr("read", f.name, err)
		}
		if !more && last == f.buf.filled {
			return ps.tokenize(tokEndOfFile, first, last, nil), nil
		}
	}

	if byteAt(f, last) == '"' {
		return ps.scanQuotedValue()
	}

	typ := classAt(f, last)
	if typ < 0 {
		return token{}, ps.syntaxErr(f.loc, "invalid character")
	}
	last++

scanLoop:
	for {
		if last == f.buf.filled {
			more, err := f.buf.refill()
			if err != nil {
				return token{}, ps.resourceErr("read", f.name, err)
			}
			if !more && last == f.buf.filled {
				break scanLoop
			}
		}

		switch typ {
		case classSpace:
			last = scanSpace(f, last)
		case classComment:
			last = scanComment(f, last)
		case classLineFeed:
			break scanLoop
		case classOption:
			last = scanIdentifier(f, last)
			if last == f.buf.filled && !f.buf.eof {
				continue scanLoop
			}
			if last < f.buf.filled {
				if tok, ok, err := ps.disambiguate(sc, state, first, last); err != nil {
					return token{}, err
				} else if ok {
					return tok, nil
				}
			}
			typ = classValue
			last = scanValue(f, last)
		default: // classValue
			last = scanValue(f, last)
		}

		if last != f.buf.filled {
			break scanLoop
		}
	}

	if typ == classOption {
		// An identifier run that disambiguate never saw (a single byte
		// cut off by end of input) is a plain value like any other.
		typ = classValue
	}
	return ps.tokenize(tokenCode(typ), first, last, nil), nil
}

// scanQuotedValue scans a "..." literal. Escaping only affects where
// the closing quote is recognized (a backslash-escaped quote does not
// end the value); the stored span still includes the backslash
// verbatim, since interpreting escapes is left to the Accept
// callback's consumer (spec.md Non-goals).
func (ps *parser) scanQuotedValue() (token, error) {
	f := ps.file
	first := f.buf.consumed
	last := first + 1
	escaped := false

	for {
		if last == f.buf.filled {
			more, err := f.buf.refill()
			if err != nil {
				return token{}, ps.resourceErr("read", f.name, err)
			}
			if !more && last == f.buf.filled {
				return token{}, ps.syntaxErr(f.loc, "unterminated quoted value")
			}
			continue
		}
		b := f.buf.data[last]
		if b == '\n' {
			return token{}, ps.syntaxErr(f.loc, "line feed in quoted value")
		}
		if b == '"' && !escaped {
			break
		}
		escaped = b == '\\' && !escaped
		last++
	}

	return ps.tokenize(tokQuotedValue, first, last+1, nil), nil
}

// disambiguate reclassifies a freshly scanned identifier run against
// the schema: a trailing ':' makes it an include/option/section, a
// trailing '=' makes it a suboption of the current option. Returns ok
// == false (no error) when no discriminator byte matched, in which
// case the caller falls back to scanning the run as a plain VALUE.
func (ps *parser) disambiguate(sc *scope, state scanState, first, last int) (token, bool, error) {
	f := ps.file
	end := byteAt(f, last)
	name := f.buf.data[first:last]

	switch end {
	case ':':
		if !state.hasOption() {
			return token{}, false, nil
		}
		if bytes.Equal(name, []byte("include")) {
			return ps.tokenize(tokInclude, first, last+1, &includeNode), true, nil
		}
		if node := f.resolveOption(sc, name); node != nil {
			return ps.tokenize(kindToTokenCode(node.Kind), first, last+1, node), true, nil
		}
	case '=':
		if state.hasSuboption() {
			if node := hasSuboption(sc.option, name); node != nil {
				return ps.tokenize(tokSuboption, first, last+1, node), true, nil
			}
		}
	}
	return token{}, false, nil
}
