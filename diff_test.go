package goldenscript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnifiedDiffReportsChangedLine(t *testing.T) {
	expected := "one\ntwo\nthree\n"
	actual := "one\nTWO\nthree\n"
	out := unifiedDiff(expected, actual)
	assert.Contains(t, out, "-two")
	assert.Contains(t, out, "+TWO")
	assert.Contains(t, out, "--- expected")
	assert.Contains(t, out, "+++ actual")
}

func TestUnifiedDiffIdenticalIsEmpty(t *testing.T) {
	out := unifiedDiff("same\n", "same\n")
	assert.True(t, strings.TrimSpace(out) == "")
}
