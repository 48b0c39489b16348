package options

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// parser holds the state for a single ParseOptions/ParseOptionsFile
// call: the config it was invoked with, the currently active file
// (swapped out for the duration of a nested include), and the
// caller's opaque context threaded through every callback.
type parser struct {
	cfg     ParseConfig
	file    *file
	userCtx any
}

func (ps *parser) syntaxErr(loc Location, format string, args ...any) error {
	err := &SyntaxError{Loc: loc, Message: fmt.Sprintf(format, args...)}
	ps.logError(err, loc, CodeSyntaxError)
	return err
}

func (ps *parser) semanticErr(loc Location, format string, args ...any) error {
	err := &SemanticError{Loc: loc, Message: fmt.Sprintf(format, args...)}
	ps.logError(err, loc, CodeSemanticError)
	return err
}

func (ps *parser) resourceErr(op, path string, cause error) error {
	return &ResourceError{Op: op, Path: path, code: CodeNoSuchFile, Err: cause}
}

func (ps *parser) logError(err error, loc Location, code Code) {
	if ps.cfg.Logger == nil {
		return
	}
	ps.cfg.Logger.WithFields(logrus.Fields{
		"file":   loc.File,
		"line":   loc.Line,
		"column": loc.Column,
		"code":   int32(code),
	}).Error(err.Error())
}

// identifierLexeme recovers the lexeme for the token that opened sc,
// with the trailing ':' or '=' discriminator stripped — a documented
// deviation from the reference implementation, which leaves it in
// place (SPEC_FULL.md §9 item 1).
func (ps *parser) identifierLexeme(sc *scope) Lexeme {
	f := ps.file
	tok := f.tokens.data[sc.identifier]
	size := tok.size
	if size > 0 {
		if last := f.buf.data[tok.first+size-1]; last == ':' || last == '=' {
			size--
		}
	}
	return Lexeme{Loc: tok.loc, Text: f.buf.data[tok.first : tok.first+size]}
}

func (ps *parser) enterScope(sc *scope) error {
	if sc.option.Enter == nil {
		return nil
	}
	lex := ps.identifierLexeme(sc)
	if code := sc.option.Enter(sc.option, lex, ps.userCtx); code < 0 {
		return &CallbackAbort{Code: code}
	}
	return nil
}

// exitScope fires the Exit callback (if any) and, mirroring the
// reference implementation, always performs the pending indent
// cleanup regardless of what the callback returned — a scope that
// aborts parsing still leaves the token stack in a consistent state
// for whatever partial error reporting the caller wants to do.
func (ps *parser) exitScope(sc *scope) error {
	var cbErr error
	if sc.option.Exit != nil {
		lex := ps.identifierLexeme(sc)
		if code := sc.option.Exit(sc.option, lex, ps.userCtx); code < 0 {
			cbErr = &CallbackAbort{Code: code}
		}
	}
	if sc.encloser != nil && sc.indent > sc.encloser.indent {
		ps.reduce(sc.indent)
	}
	return cbErr
}

// accept delivers a value literal to the current scope's Accept
// callback, stripping the surrounding quotes for a quoted value.
func (ps *parser) accept(sc *scope, tok token) error {
	if sc.option.Accept == nil {
		return nil
	}
	f := ps.file
	data := f.buf.data[tok.first : tok.first+tok.size]
	if tok.code == tokQuotedValue {
		data = data[1 : len(data)-1]
	}
	lex := Lexeme{Loc: tok.loc, Text: data}
	if code := sc.option.Accept(sc.option, lex, ps.userCtx); code < 0 {
		return &CallbackAbort{Code: code}
	}
	return nil
}

// parseFile drives the top-level grammar: a flat sequence of
// zero-indented OPTION/SECTION/INCLUDE identifiers (and comments/blank
// lines), each recursed into immediately. sc is the virtual file
// scope wrapping the caller's top-level schema slice.
func (ps *parser) parseFile(sc *scope) error {
	indent := false
	state := bitOption

	for {
		idx, tok, err := ps.shift(sc, state)
		if err != nil {
			return err
		}

		switch {
		case tok.code == tokEndOfFile:
			return ps.exitScope(sc)
		case tok.code == tokSpace:
			if indent {
				ps.file.indent = idx
				indent = false
				continue
			}
		case tok.code == tokLineFeed:
			if ps.file.indent != 0 {
				if ps.file.indent < idx {
					idx--
				}
				ps.reduce(ps.file.indent)
			}
			ps.file.indent = 0
		case isOptionFamily(tok.code):
			if ps.file.indent != 0 {
				return ps.semanticErr(tok.loc, "no indentation expected at file scope")
			}
			child := &scope{encloser: sc, identifier: idx, option: tok.option}
			var cerr error
			switch tok.code {
			case tokOption:
				cerr = ps.parseOption(child)
			case tokSection:
				cerr = ps.parseSection(child)
			case tokInclude:
				cerr = ps.parseInclude(child)
			}
			if cerr != nil {
				return cerr
			}
		default:
			if tok.code != tokComment {
				return ps.semanticErr(tok.loc, "syntax error")
			}
		}

		indent = tok.code == tokLineFeed
		ps.reduce(idx)
	}
}

// parseSection drives the grammar under a SECTION identifier: nested
// OPTION/SECTION/INCLUDE identifiers, each at a consistent, strictly
// deeper indentation than the section's own.
func (ps *parser) parseSection(sc *scope) error {
	indent := false
	state := scanState(0)

	if err := ps.enterScope(sc); err != nil {
		return err
	}

	for {
		idx, tok, err := ps.shift(sc, state)
		if err != nil {
			return err
		}

		switch {
		case tok.code == tokEndOfFile:
			ps.unshift()
			return ps.exitScope(sc)
		case tok.code == tokSpace:
			if indent {
				if sc.indent == 0 && ps.file.inScope(sc.encloser.indent, idx) == -1 {
					sc.indent = idx
				}
				ps.file.indent = idx
				indent = false
				continue
			}
		case tok.code == tokLineFeed:
			if ps.file.indent > sc.indent && ps.file.indent > sc.encloser.indent && ps.file.indent > sc.identifier {
				if ps.file.indent < idx {
					idx--
				}
				ps.reduce(ps.file.indent)
			}
			state |= bitOption
			ps.file.indent = 0
		case isOptionFamily(tok.code):
			if !ps.file.isIndent(sc.indent, ps.file.indent) {
				return ps.syntaxErr(tok.loc, "invalid indentation")
			}
			switch ps.file.inScope(sc.indent, ps.file.indent) {
			case 1:
				ps.unshift()
				return ps.exitScope(sc)
			case -1:
				return ps.syntaxErr(tok.loc, "invalid indentation")
			}
			child := &scope{encloser: sc, identifier: idx, option: tok.option}
			var cerr error
			switch tok.code {
			case tokOption:
				cerr = ps.parseOption(child)
			case tokSection:
				cerr = ps.parseSection(child)
			case tokInclude:
				cerr = ps.parseInclude(child)
			}
			if cerr != nil {
				return cerr
			}
		default:
			if tok.code != tokComment {
				return ps.syntaxErr(tok.loc, "syntax error")
			}
		}

		indent = tok.code == tokLineFeed
		ps.reduce(idx)
	}
}

// parseOption drives the grammar under an OPTION identifier: an
// optional run of suboptions and/or value literals, terminated by the
// next identifier at or above this option's own indentation (or
// end of file).
func (ps *parser) parseOption(sc *scope) error {
	indent := false
	newline := false
	state := bitSuboption | bitValue

	if err := ps.enterScope(sc); err != nil {
		return err
	}

	for {
		idx, tok, err := ps.shift(sc, state)
		if err != nil {
			return err
		}

		if tok.code == tokEndOfFile || isOptionFamily(tok.code) {
			ps.unshift()
			return ps.exitScope(sc)
		}

		switch tok.code {
		case tokSpace:
			if indent {
				if sc.indent == 0 && ps.file.inScope(sc.encloser.indent, idx) == -1 {
					sc.indent = idx
				}
				ps.file.indent = idx
				indent = false
				continue
			}
		case tokLineFeed:
			if ps.file.indent > sc.indent && ps.file.indent > sc.encloser.indent && ps.file.indent > sc.identifier {
				if ps.file.indent < idx {
					idx--
				}
				ps.reduce(ps.file.indent)
			}
			state |= bitOption
			newline = true
			ps.file.indent = 0
		case tokSuboption:
			if newline {
				if !ps.file.isIndent(sc.indent, ps.file.indent) {
					return ps.syntaxErr(tok.loc, "invalid indentation")
				}
				if ps.file.inScope(sc.indent, ps.file.indent) != 0 {
					return ps.syntaxErr(tok.loc, "invalid indentation")
				}
			}
			child := &scope{encloser: sc, identifier: idx, option: tok.option}
			if err := ps.parseSuboption(child); err != nil {
				return err
			}
			state &^= bitOption | bitValue
		case tokValue, tokQuotedValue:
			if !state.hasValue() {
				return ps.semanticErr(tok.loc, "unexpected literal")
			}
			// A value at any indentation other than the option's own is
			// rejected (SPEC_FULL.md §9 item 4): a line that doesn't line
			// up with foo's established indent was meant to be a sibling
			// identifier, not a continuation value, so this is a syntax
			// error rather than a semantic one.
			if newline && ps.file.inScope(sc.indent, ps.file.indent) != 0 {
				return ps.syntaxErr(tok.loc, "bad indent")
			}
			if err := ps.accept(sc, tok); err != nil {
				return err
			}
			state &^= bitOption
		default:
			if tok.code != tokComment {
				return ps.syntaxErr(tok.loc, "syntax error")
			}
		}

		indent = tok.code == tokLineFeed
		ps.reduce(idx)
	}
}

// parseSuboption handles a single inline key=value pair: at most one
// further token (a value literal or the trailing line feed/EOF), then
// returns control to the enclosing parseOption.
func (ps *parser) parseSuboption(sc *scope) error {
	if err := ps.enterScope(sc); err != nil {
		return err
	}

	idx, tok, err := ps.shift(sc, bitValue)
	if err != nil {
		return err
	}

	switch tok.code {
	case tokEndOfFile:
		ps.unshift()
		return ps.exitScope(sc)
	case tokLineFeed:
		if ps.file.indent > sc.indent {
			indentIdx := ps.file.indent
			ps.reduce(indentIdx)
			if indentIdx < idx {
				idx--
			}
			ps.file.indent = 0
		}
		ps.reduce(idx)
	case tokValue, tokQuotedValue:
		if err := ps.accept(sc, tok); err != nil {
			return err
		}
		ps.reduce(idx)
	default:
		ps.reduce(idx)
	}

	return ps.exitScope(sc)
}

// parseInclude handles an "include:" directive: a single filename
// value (quoted or bare), optional trailing whitespace/comment, then
// the line feed/EOF the enclosing scope will re-read.
func (ps *parser) parseInclude(sc *scope) error {
	idx, tok, err := ps.shift(sc, 0)
	if err != nil {
		return err
	}
	if tok.code == tokSpace {
		ps.reduce(idx)
		idx, tok, err = ps.shift(sc, 0)
		if err != nil {
			return err
		}
	}

	if tok.code != tokValue && tok.code != tokQuotedValue {
		return ps.semanticErr(tok.loc, "include directive requires a file name")
	}
	valueIdx, valueTok := idx, tok

	idx, tok, err = ps.shift(sc, 0)
	if err != nil {
		return err
	}
	if tok.code == tokSpace {
		ps.reduce(idx)
		idx, tok, err = ps.shift(sc, 0)
		if err != nil {
			return err
		}
	}
	if tok.code == tokComment {
		ps.reduce(idx)
		idx, tok, err = ps.shift(sc, 0)
		if err != nil {
			return err
		}
	}

	if tok.code != tokLineFeed && tok.code != tokEndOfFile {
		return ps.semanticErr(tok.loc, "include directive takes only a file name")
	}
	ps.unshift()

	filespec := extractFilespec(ps.file, valueTok)
	err = ps.includeFilespec(sc, filespec)
	ps.reduce(valueIdx)
	return err
}

func extractFilespec(f *file, tok token) string {
	data := f.buf.data[tok.first : tok.first+tok.size]
	if tok.code == tokQuotedValue {
		data = data[1 : len(data)-1]
	}
	return string(data)
}
