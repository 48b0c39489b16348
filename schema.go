package options

// Kind distinguishes the four shapes a schema node can take.
type Kind int8

const (
	KindSection Kind = iota
	KindOption
	KindSuboption
	KindInclude
)

func (k Kind) String() string {
	switch k {
	case KindSection:
		return "section"
	case KindOption:
		return "option"
	case KindSuboption:
		return "suboption"
	case KindInclude:
		return "include"
	default:
		return "unknown"
	}
}

// Lexeme is the byte span plus source location a callback receives:
// an identifier (trailing ':'/'=' stripped) or a value (quotes
// stripped for quoted values, no escape processing).
type Lexeme struct {
	Loc  Location
	Text []byte
}

func (l Lexeme) String() string { return string(l.Text) }

// Callback is invoked as the parser enters/exits a schema node or
// accepts a value under it. A negative return code aborts parsing and
// is propagated to the driver caller as a *CallbackAbort.
type Callback func(node *Node, lex Lexeme, userCtx any) int32

// Node is one entry in a static, caller-built schema tree. Sections
// hold Option/Section children; options hold Suboption children and
// may carry a value directly; suboptions are terminal. The include
// directive is represented by the process-wide includeNode and is not
// constructed by callers.
type Node struct {
	Kind     Kind
	Pattern  string
	Children []Node
	Enter    Callback
	Exit     Callback
	Accept   Callback
}

// Section builds a schema node for a section identifier, i.e. one
// that only ever introduces nested options or sections.
func Section(pattern string, children ...Node) Node {
	return Node{Kind: KindSection, Pattern: pattern, Children: children}
}

// Option builds a schema node for an option identifier. Its children
// are looked up only as suboptions (key=value pairs on the option's
// line or its indented continuation lines).
func Option(pattern string, children ...Node) Node {
	return Node{Kind: KindOption, Pattern: pattern, Children: children}
}

// Suboption builds a terminal schema node for an inline key=value
// pair attached to an option.
func Suboption(pattern string) Node {
	return Node{Kind: KindSuboption, Pattern: pattern}
}

// WithEnter attaches an Enter callback, fired when the parser opens
// this node's scope (before any children or value are read).
func (n Node) WithEnter(cb Callback) Node { n.Enter = cb; return n }

// WithExit attaches an Exit callback, fired when the parser closes
// this node's scope.
func (n Node) WithExit(cb Callback) Node { n.Exit = cb; return n }

// WithAccept attaches an Accept callback, fired once per value
// literal read under this node (options and suboptions only).
func (n Node) WithAccept(cb Callback) Node { n.Accept = cb; return n }

// includeNode is the built-in, process-wide schema node for the
// "include" directive. It is never part of a caller-supplied schema
// slice; the scanner recognizes the identifier "include" directly.
var includeNode = Node{Kind: KindInclude, Pattern: "include"}

// matchesName compares a schema node's pattern against a scanned
// identifier. The literal wildcard pattern "*" matches any identifier
// (used by GenericSchema); every other pattern must match exactly.
func matchesName(pattern string, name []byte) bool {
	if pattern == "*" {
		return true
	}
	return len(pattern) == len(name) && pattern == string(name)
}

// hasOption returns the child of a section matching name, or nil.
func hasOption(parent *Node, name []byte) *Node {
	if parent == nil || parent.Kind != KindSection {
		return nil
	}
	for i := range parent.Children {
		if matchesName(parent.Children[i].Pattern, name) {
			return &parent.Children[i]
		}
	}
	return nil
}

// hasSuboption returns the child of an option matching name, or nil.
func hasSuboption(parent *Node, name []byte) *Node {
	if parent == nil || parent.Kind != KindOption {
		return nil
	}
	for i := range parent.Children {
		if matchesName(parent.Children[i].Pattern, name) {
			return &parent.Children[i]
		}
	}
	return nil
}

// genericSchemaDepth bounds how deeply GenericSchema nests wildcard
// sections/options. A linter that accepts any schema has to pick some
// finite bound; documents nested deeper than this are reported as a
// schema mismatch rather than silently accepted.
const genericSchemaDepth = 16

// GenericSchema builds a schema that accepts any identifier as either
// a section or an option, options additionally accepting any
// suboption, nested up to genericSchemaDepth levels deep. It exists
// for tools like cmd/optcheck that need to lint a file without a
// compiled-in schema of their own.
func GenericSchema() []Node {
	return genericSchemaLevel(genericSchemaDepth)
}

func genericSchemaLevel(depth int) []Node {
	if depth <= 0 {
		return nil
	}
	children := genericSchemaLevel(depth - 1)
	optionChildren := append(append([]Node{}, children...), Suboption("*"))
	return []Node{
		Section("*", children...),
		Option("*", optionChildren...),
	}
}

func kindToTokenCode(k Kind) tokenCode {
	switch k {
	case KindSection:
		return tokSection
	case KindOption:
		return tokOption
	case KindSuboption:
		return tokSuboption
	case KindInclude:
		return tokInclude
	default:
		return tokValue
	}
}
