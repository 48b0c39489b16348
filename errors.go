package options

import "fmt"

// Code identifies the two error taxonomies a parse can fail with: the
// parse-time codes (SyntaxError/SemanticError) and the resource-time
// codes (ResourceError), kept in separate Go types instead of a single
// collided int32 namespace so callers can tell them apart with
// errors.As instead of having to know which domain a bare -1 belongs
// to.
type Code int32

const (
	CodeSyntaxError   Code = -1
	CodeSemanticError Code = -2
	CodeOutOfMemory   Code = -1
	CodeNoAccess      Code = -2
	CodeNoSuchFile    Code = -3
	CodeBadParameter  Code = -4
)

// Location identifies a byte position in a source file.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// SyntaxError reports a scanner-level failure (an invalid byte class,
// an unterminated quoted value, or a line feed inside a quoted value)
// or a structural failure the parser finds under a section or option:
// invalid indentation, a value at the wrong indent, or an unexpected
// token.
type SyntaxError struct {
	Loc     Location
	Message string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("%s: %s", e.Loc, e.Message) }
func (e *SyntaxError) Code() int32   { return int32(CodeSyntaxError) }

// SemanticError reports a parser-level failure: indentation or an
// unexpected token at file scope, an unexpected literal, a malformed
// include directive, a circular include, or an include depth overrun.
type SemanticError struct {
	Loc     Location
	Message string
}

func (e *SemanticError) Error() string { return fmt.Sprintf("%s: %s", e.Loc, e.Message) }
func (e *SemanticError) Code() int32   { return int32(CodeSemanticError) }

// ResourceError reports a failure acquiring a resource external to the
// grammar itself: a file that could not be opened, a directory that
// could not be read for a wildcard include, and so on.
type ResourceError struct {
	Op   string
	Path string
	code Code
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.code)
}

func (e *ResourceError) Code() int32 { return int32(e.code) }
func (e *ResourceError) Unwrap() error { return e.Err }

// String names a resource-domain code, the only kind a ResourceError
// carries. The parse-domain codes share the values -1 and -2 with
// CodeOutOfMemory and CodeNoAccess, so String does not tell them apart.
func (c Code) String() string {
	switch c {
	case CodeOutOfMemory:
		return "out of memory"
	case CodeNoAccess:
		return "no access"
	case CodeNoSuchFile:
		return "no such file"
	case CodeBadParameter:
		return "bad parameter"
	default:
		return "unknown error"
	}
}

// CallbackAbort wraps a negative code returned by a schema callback,
// which aborts parsing immediately and propagates unchanged to the
// driver caller.
type CallbackAbort struct {
	Code int32
}

func (e *CallbackAbort) Error() string {
	return fmt.Sprintf("callback aborted parsing with code %d", e.Code)
}
