// Package options parses a hierarchical, indentation-sensitive
// configuration language resembling a constrained YAML/ini hybrid.
//
// Documents express nested sections, options (key-value pairs, with
// optional indented children), suboptions (inline key=value pairs
// attached to an option's line) and includes (which may use filename
// wildcards). Callers drive the parser with a static schema of
// recognized identifiers, built from Section/Option/Suboption, and
// receive Enter/Exit/Accept callbacks as the parser moves through the
// document.
package options
