// Package printer renders a ModuleSummary for humans and machines.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pypeek/pypeek/internal/summary"
)

// Options control text rendering.
type Options struct {
	// Verbose adds the [when: ...] condition annotations to return lines.
	Verbose bool
}

// Text writes the human-readable summary to w.
func Text(w io.Writer, path string, ms *summary.ModuleSummary, opts Options) error {
	var sb strings.Builder

	sb.WriteString(filepath.Base(path) + "\n")
	sb.WriteString(strings.Repeat("-", 30) + "\n")

	if ms.ModuleDoc != "" {
		sb.WriteString("\nModule:\n")
		for _, line := range strings.Split(strings.TrimSpace(ms.ModuleDoc), "\n") {
			sb.WriteString(line + "\n")
		}
	}

	if len(ms.Classes) > 0 {
		sb.WriteString("\nClasses:\n")
		for _, cls := range ms.Classes {
			sb.WriteString(fmt.Sprintf("\nclass %s\n", cls.Name))
			for _, m := range cls.Methods {
				writeFunction(&sb, m, 1, opts)
			}
		}
	}

	if len(ms.TopLevelFunctions) > 0 {
		sb.WriteString("\nTop-level functions:\n")
		for _, fn := range ms.TopLevelFunctions {
			writeFunction(&sb, fn, 0, opts)
		}
	}

	if ms.MainFunction != nil {
		sb.WriteString("\nEntry point:\n")
		writeFunction(&sb, *ms.MainFunction, 0, opts)
	}

	executable := "no"
	if ms.IsExecutable {
		executable = "yes"
	}
	sb.WriteString(fmt.Sprintf("\nExecutable: %s (__main__ guard)\n", executable))

	_, err := io.WriteString(w, sb.String())
	return err
}

// writeFunction renders one function: signature, first docstring line, and
// its return lines (or a placeholder when there are none).
func writeFunction(sb *strings.Builder, fn summary.FunctionInfo, indent int, opts Options) {
	pad := strings.Repeat("  ", indent)

	sb.WriteString(fmt.Sprintf("%s* %s(%s)\n", pad, fn.Name, strings.Join(fn.Parameters, ", ")))

	if fn.Doc != "" {
		doc := strings.SplitN(strings.TrimSpace(fn.Doc), "\n", 2)[0]
		sb.WriteString(fmt.Sprintf("%s  doc: %s\n", pad, doc))
	}

	if len(fn.Returns) == 0 {
		sb.WriteString(pad + "  -> (no return)\n")
		return
	}
	for _, ret := range fn.Returns {
		if opts.Verbose && len(ret.Conditions) > 0 {
			conds := strings.Join(ret.Conditions, " | ")
			marker := "+"
			if strings.Contains(strings.ToLower(conds), "not") {
				marker = "-"
			}
			sb.WriteString(fmt.Sprintf("%s  -> %s  [when: %s] %s\n", pad, ret.SourceLine, conds, marker))
		} else {
			sb.WriteString(fmt.Sprintf("%s  -> %s\n", pad, ret.SourceLine))
		}
	}
}

// JSON writes the summary as indented JSON.
func JSON(w io.Writer, ms *summary.ModuleSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ms)
}
