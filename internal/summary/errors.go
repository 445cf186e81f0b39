package summary

import (
	"errors"
	"fmt"
)

// ErrSkipped reports input that is not recognized as Python: the filename
// lacks a .py extension and the source has no shebang line. It is an
// expected non-match, not a failure.
var ErrSkipped = errors.New("not a python file")

// LineIndexError reports a return statement whose line number falls outside
// the captured source. It signals a parser/text mismatch and should never
// occur for a tree parsed from the same text.
type LineIndexError struct {
	Line  int
	Lines int
}

func (e *LineIndexError) Error() string {
	return fmt.Sprintf("return statement at line %d outside source of %d lines", e.Line, e.Lines)
}
