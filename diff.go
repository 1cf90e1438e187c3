package goldenscript

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// unifiedDiff renders a unified diff between a block's recorded expected
// output and what actually happened, for KindExpectMismatch errors.
func unifiedDiff(expected, actual string) string {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		// GetUnifiedDiffString only errors on writer failures, which a
		// strings.Builder-backed writer never produces.
		return fmt.Sprintf("<diff error: %v>", err)
	}
	return strings.TrimRight(text, "\n")
}
