// Command optcheck parses one or more option configuration files
// against either a compiled-in, schema-agnostic grammar or a
// caller-supplied YAML schema document, and reports every
// syntax/semantic error it finds with file:line:column context.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/k0ekk0ek/options"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var schemaPath string

	root := &cobra.Command{
		Use:   "optcheck",
		Short: "Parse and lint option configuration files",
	}
	root.PersistentFlags().StringVar(&schemaPath, "schema", "",
		"path to a YAML schema document (default: accept any identifier)")
	root.AddCommand(newLintCmd(&schemaPath))
	return root
}

func newLintCmd(schemaPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file>...",
		Short: "Parse one or more option files and report errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(*schemaPath, args)
		},
	}
}

func runLint(schemaPath string, paths []string) error {
	schema, err := loadSchema(schemaPath)
	if err != nil {
		return err
	}

	cfg := options.ParseConfig{Logger: logrus.StandardLogger()}
	failed := false
	for _, path := range paths {
		if err := cfg.ParseOptionsFile(schema, path, nil); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	return nil
}

func loadSchema(schemaPath string) ([]options.Node, error) {
	if schemaPath == "" {
		return options.GenericSchema(), nil
	}
	f, err := os.Open(schemaPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return options.LoadSchemaDoc(f)
}
