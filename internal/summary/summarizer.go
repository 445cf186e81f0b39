// Package summary extracts a structural summary from one Python source
// file: module docstring, classes with their methods, top-level functions,
// the main entry point, per-function return statements annotated with the
// enclosing if/else predicates, and whether the file carries a __main__
// guard.
package summary

import (
	"bytes"
	"os"
	"strings"

	"github.com/pypeek/pypeek/internal/pyparse"
)

var shebangPrefix = []byte("#!")

// Summarize parses the source and extracts its structural summary. Input
// not recognized as Python (no .py extension and no shebang) returns
// ErrSkipped before any parse attempt. Malformed source returns a
// *pyparse.SyntaxError.
func Summarize(filename string, source []byte) (*ModuleSummary, error) {
	if !strings.HasSuffix(filename, ".py") && !bytes.HasPrefix(source, shebangPrefix) {
		return nil, ErrSkipped
	}

	tree, err := pyparse.Parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return NewTreeWalker(source).VisitModule(tree.Root())
}

// SummarizeFile reads path and summarizes its contents. Read errors pass
// through unchanged.
func SummarizeFile(path string) (*ModuleSummary, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Summarize(path, source)
}
