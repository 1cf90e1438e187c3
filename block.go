package goldenscript

// block is a single input/output unit of a script: one or more commands,
// the literal source text they were parsed from (used verbatim when
// rewriting a script that needed no changes), and the expected-output
// section taken verbatim from the script (empty for scripts being
// generated fresh).
type block struct {
	commands []*Command
	literal  string // raw source text of the command section, for passthrough
	expected string // raw expected-output section, verbatim
	line     int
}
