package options

import "github.com/sirupsen/logrus"

// ParseConfig carries the knobs a parse can be tuned with beyond the
// schema and input: the include-depth ceiling, an optional structured
// logger, and the Globber backing wildcard includes. The zero value
// is a usable default configuration (DefaultMaxIncludeDepth, no
// logging, directory-backed globbing).
type ParseConfig struct {
	MaxIncludeDepth int
	Logger          logrus.FieldLogger
	Globber         Globber
}

// ParseOptions parses data against schema using default settings,
// invoking schema callbacks with userCtx as they fire.
func ParseOptions(schema []Node, data []byte, userCtx any) error {
	return ParseConfig{}.ParseOptions(schema, data, userCtx)
}

// ParseOptionsFile opens path and parses it against schema using
// default settings.
func ParseOptionsFile(schema []Node, path string, userCtx any) error {
	return ParseConfig{}.ParseOptionsFile(schema, path, userCtx)
}

// ParseOptions parses data against schema using cfg.
func (cfg ParseConfig) ParseOptions(schema []Node, data []byte, userCtx any) error {
	f := newStringFile(data)
	return cfg.run(f, schema, userCtx)
}

// ParseOptionsFile opens path and parses it against schema using cfg.
// The file is closed, even on error, before returning.
func (cfg ParseConfig) ParseOptionsFile(schema []Node, path string, userCtx any) error {
	f, err := openFile(path)
	if err != nil {
		return err
	}
	defer f.close()
	return cfg.run(f, schema, userCtx)
}

func (cfg ParseConfig) run(f *file, schema []Node, userCtx any) error {
	ps := &parser{cfg: cfg, file: f, userCtx: userCtx}
	root := Node{Kind: KindSection, Children: schema}
	sc := &scope{option: &root}
	return ps.parseFile(sc)
}
