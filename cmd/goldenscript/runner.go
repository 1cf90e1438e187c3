package main

import (
	"fmt"
	"strings"

	"github.com/gfanton/goldenscript"
)

// referenceRunner is a minimal stand-in Runner used by the standalone CLI
// binary: it has no side effects of its own, so it is only useful for
// exercising the engine's syntax (tags, prefixes, silencing, fail
// markers) against scripts that don't need a real backend. Embedders
// with an actual system under test call the goldenscript package from
// their own Go program with their own Runner instead of this binary.
type referenceRunner struct{}

// Run renders the command name followed by its arguments on a single
// line, separated by spaces, "key=value" for keyed arguments and bare for
// positional ones.
func (referenceRunner) Run(cmd *goldenscript.Command) (string, error) {
	if strings.HasPrefix(cmd.Name, "fail") {
		return "", fmt.Errorf("reference runner: forced failure")
	}
	var sb strings.Builder
	sb.WriteString(cmd.Name)
	for _, arg := range cmd.Args {
		sb.WriteByte(' ')
		if arg.HasKey() {
			sb.WriteString(arg.Key)
			sb.WriteByte('=')
		}
		sb.WriteString(arg.Value)
	}
	sb.WriteByte('\n')
	return sb.String(), nil
}
