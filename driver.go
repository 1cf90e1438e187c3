package goldenscript

import (
	"fmt"
	"os"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// driverState holds the mutable, per-script configuration the "_set"
// internal command adjusts. All fields default to the empty string and
// persist across blocks within one script run.
type driverState struct {
	prefix       string
	suffix       string
	startCommand string
	endCommand   string
	startBlock   string
	endBlock     string
}

// driver executes a parsed script against a Runner, rendering one block's
// worth of output at a time.
type driver struct {
	r     Runner
	hooks hooks
	state driverState
}

func newDriver(r Runner) *driver {
	return &driver{r: r, hooks: resolveHooks(r)}
}

// outcome is the result of invoking a command, whether via the internal
// vocabulary or the user Runner's Run method.
type outcome struct {
	text    string
	failed  bool
	isPanic bool
	message string
}

// invoke dispatches cmd to the internal vocabulary or the user Runner,
// recovering a Go panic from Run the same way a runner-returned error is
// handled: as a failed outcome, never as a process crash.
func (d *driver) invoke(cmd *Command) outcome {
	if cmd.Internal() {
		return d.invokeInternal(cmd)
	}
	return d.invokeRunner(cmd)
}

func (d *driver) invokeRunner(cmd *Command) (out outcome) {
	defer func() {
		if p := recover(); p != nil {
			out = outcome{failed: true, isPanic: true, message: fmt.Sprint(p)}
		}
	}()
	text, err := d.r.Run(cmd)
	if err != nil {
		return outcome{failed: true, message: err.Error()}
	}
	return outcome{text: text}
}

func (d *driver) invokeInternal(cmd *Command) outcome {
	switch cmd.Name {
	case "_set":
		return d.execSet(cmd)
	case "_echo":
		return d.execEcho(cmd)
	case "_panic":
		return d.execPanic(cmd)
	default:
		return outcome{failed: true, message: fmt.Sprintf("unknown internal command %q", cmd.Name)}
	}
}

// setKeys lists every key "_set" recognizes, used both to dispatch and to
// offer a "did you mean" suggestion when a key doesn't match.
var setKeys = []string{"prefix", "suffix", "start_command", "end_command", "start_block", "end_block"}

// execSet mutates driver state from "key=value" arguments. All arguments
// must be keyed; unrecognized keys fail the command.
func (d *driver) execSet(cmd *Command) outcome {
	for _, arg := range cmd.Args {
		if !arg.HasKey() {
			return outcome{failed: true, message: fmt.Sprintf("_set: positional argument %q not allowed", arg.Value)}
		}
		switch arg.Key {
		case "prefix":
			d.state.prefix = arg.Value
		case "suffix":
			d.state.suffix = arg.Value
		case "start_command":
			d.state.startCommand = arg.Value
		case "end_command":
			d.state.endCommand = arg.Value
		case "start_block":
			d.state.startBlock = arg.Value
		case "end_block":
			d.state.endBlock = arg.Value
		default:
			return outcome{failed: true, message: unknownSetKeyMessage(arg.Key)}
		}
	}
	return outcome{}
}

// unknownSetKeyMessage reports an unrecognized "_set" key, suggesting the
// closest known key when one is a plausible typo.
func unknownSetKeyMessage(key string) string {
	ranks := fuzzy.RankFindFold(key, setKeys)
	if len(ranks) > 0 {
		return fmt.Sprintf("_set: unknown key %q (did you mean %q?)", key, ranks[0].Target)
	}
	return fmt.Sprintf("_set: unknown key %q", key)
}

// execEcho joins its positional arguments with a single space and emits
// them verbatim; it never appends a newline of its own.
func (d *driver) execEcho(cmd *Command) outcome {
	c := cmd.ConsumeArgs()
	var parts []string
	for {
		arg := c.NextPos()
		if arg == nil {
			break
		}
		parts = append(parts, arg.Value)
	}
	if err := c.RejectRest(); err != nil {
		return outcome{failed: true, message: "_echo: " + err.Error()}
	}
	return outcome{text: strings.Join(parts, " ")}
}

// execPanic simulates a panicking command; callers almost always pair it
// with the '!' fail marker.
func (d *driver) execPanic(cmd *Command) outcome {
	c := cmd.ConsumeArgs()
	var parts []string
	for {
		arg := c.NextPos()
		if arg == nil {
			break
		}
		parts = append(parts, arg.Value)
	}
	if err := c.RejectRest(); err != nil {
		return outcome{failed: true, isPanic: true, message: "_panic: " + err.Error()}
	}
	return outcome{failed: true, isPanic: true, message: strings.Join(parts, " ")}
}

// execCommand runs one command and appends its fully-assembled, possibly
// prefixed segment to buf. It returns an *Error for any abort condition:
// a hook failing, an unexpected command failure, or an unobserved expected
// failure.
func (d *driver) execCommand(cmd *Command, buf *strings.Builder) error {
	var hookStart, hookEnd string

	// _set takes effect starting with the next command, so this command's
	// own wrapping uses the state as it stood before invoking it.
	state := d.state

	if d.hooks.startCommand != nil {
		text, err := d.hooks.startCommand.StartCommand(cmd)
		if err != nil {
			return &Error{Kind: KindRunnerError, Line: cmd.Line, Command: cmd.Name, Message: err.Error(), Err: err}
		}
		hookStart = text
	}

	out := d.invoke(cmd)

	var rawOwn string
	switch {
	case out.failed && cmd.Fail:
		label := "Error: "
		if out.isPanic {
			label = "Panic: "
		}
		rawOwn = label + out.message
		if !strings.HasSuffix(rawOwn, "\n") {
			rawOwn += "\n"
		}
	case out.failed && !cmd.Fail:
		kind := KindRunnerError
		if out.isPanic {
			kind = KindPanic
		}
		return &Error{Kind: kind, Line: cmd.Line, Command: cmd.Name, Message: out.message}
	case !out.failed && cmd.Fail:
		return &Error{Kind: KindExpectFail, Line: cmd.Line, Command: cmd.Name, Message: "command succeeded but was expected to fail"}
	default:
		rawOwn = out.text
	}

	ownOutput := state.prefix + rawOwn + state.suffix
	if cmd.Silent {
		ownOutput = ""
	}

	if d.hooks.endCommand != nil {
		text, err := d.hooks.endCommand.EndCommand(cmd)
		if err != nil {
			return &Error{Kind: KindRunnerError, Line: cmd.Line, Command: cmd.Name, Message: err.Error(), Err: err}
		}
		hookEnd = text
	}

	segment := hookStart + state.startCommand + ownOutput + state.endCommand + hookEnd
	if cmd.PrefixSet {
		segment = prefixLines(segment, cmd.Prefix+": ")
	}
	buf.WriteString(segment)
	return nil
}

// execBlock runs every command in blk in order and renders the block's
// final output: "ok\n" if nothing at all was produced, otherwise the
// accumulated buffer with the holistic "> " rule applied.
func (d *driver) execBlock(blk *block) (string, error) {
	var buf strings.Builder

	if d.hooks.startBlock != nil {
		text, err := d.hooks.startBlock.StartBlock()
		if err != nil {
			return "", &Error{Kind: KindRunnerError, Line: blk.line, Message: err.Error(), Err: err}
		}
		buf.WriteString(text)
	}
	buf.WriteString(d.state.startBlock)

	for _, cmd := range blk.commands {
		if err := d.execCommand(cmd, &buf); err != nil {
			return "", err
		}
	}

	buf.WriteString(d.state.endBlock)
	if d.hooks.endBlock != nil {
		text, err := d.hooks.endBlock.EndBlock()
		if err != nil {
			return "", &Error{Kind: KindRunnerError, Line: blk.line, Message: err.Error(), Err: err}
		}
		buf.WriteString(text)
	}

	if buf.Len() == 0 {
		return "ok\n", nil
	}
	return applyEmptyLineRule(buf.String()), nil
}

// prefixLines prepends prefix to every physical line of s. An empty s
// yields an empty result rather than a single prefixed empty line.
func prefixLines(s, prefix string) string {
	if s == "" {
		return ""
	}
	var sb strings.Builder
	for _, line := range splitLinesKeepEnds(s) {
		sb.WriteString(prefix)
		sb.WriteString(line)
	}
	return sb.String()
}

// splitLinesKeepEnds splits s into lines, each retaining its trailing "\n"
// if it had one; a final line with no trailing newline is kept as-is.
func splitLinesKeepEnds(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// applyEmptyLineRule implements the holistic "> " prefixing rule: if any
// physical line of s is empty (zero characters, excluding its own line
// terminator), every line gets "> " prepended.
func applyEmptyLineRule(s string) string {
	lines := splitLinesKeepEnds(s)
	hasEmpty := false
	for _, line := range lines {
		content := strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if content == "" {
			hasEmpty = true
			break
		}
	}
	if !hasEmpty {
		return s
	}
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString("> ")
		sb.WriteString(line)
	}
	return sb.String()
}

// detectEOL reports the dominant line ending used by src, so generated
// output can match it instead of always writing bare "\n".
func detectEOL(src string) string {
	if strings.Contains(src, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// convertEOL rewrites the bare "\n" line endings produced internally by
// the driver (state strings, hook text, runner output) into eol.
func convertEOL(s, eol string) string {
	if eol == "\n" {
		return s
	}
	return strings.ReplaceAll(s, "\n", eol)
}

func (d *driver) callStartScript() error {
	if d.hooks.startScript == nil {
		return nil
	}
	if err := d.hooks.startScript.StartScript(); err != nil {
		return &Error{Kind: KindRunnerError, Message: err.Error(), Err: err}
	}
	return nil
}

func (d *driver) callEndScript() error {
	if d.hooks.endScript == nil {
		return nil
	}
	if err := d.hooks.endScript.EndScript(); err != nil {
		return &Error{Kind: KindRunnerError, Message: err.Error(), Err: err}
	}
	return nil
}

// RunString parses src and runs it against r in compare mode: every
// block's rendered output must match its recorded expected section
// exactly, or the first mismatch aborts with a diff.
func RunString(src string, r Runner) (err error) {
	blocks, err := parseScript(src)
	if err != nil {
		return err
	}
	eol := detectEOL(src)

	d := newDriver(r)
	if err := d.callStartScript(); err != nil {
		return err
	}
	defer func() {
		if eerr := d.callEndScript(); eerr != nil && err == nil {
			err = eerr
		}
	}()

	for _, blk := range blocks {
		if blk.commands == nil {
			continue
		}
		rendered, rerr := d.execBlock(blk)
		if rerr != nil {
			return rerr
		}
		rendered = convertEOL(rendered, eol)
		if rendered != blk.expected {
			return &Error{
				Kind:    KindExpectMismatch,
				Line:    blk.line,
				Message: "rendered output did not match the expected section",
				Diff:    unifiedDiff(blk.expected, rendered),
			}
		}
	}
	return nil
}

// Run reads the script at path and runs it against r in compare mode.
func Run(path string, r Runner) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := RunString(string(data), r); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Generate parses src and runs it against r, rewriting the script with
// each block's freshly-rendered output in place of its recorded expected
// section. Trailing comment/blank-line-only content is passed through
// unchanged.
func Generate(src string, r Runner) (out string, err error) {
	blocks, err := parseScript(src)
	if err != nil {
		return "", err
	}
	eol := detectEOL(src)

	d := newDriver(r)
	if err := d.callStartScript(); err != nil {
		return "", err
	}
	defer func() {
		if eerr := d.callEndScript(); eerr != nil && err == nil {
			out, err = "", eerr
		}
	}()

	var sb strings.Builder
	for _, blk := range blocks {
		if blk.commands == nil {
			sb.WriteString(blk.literal)
			continue
		}
		rendered, rerr := d.execBlock(blk)
		if rerr != nil {
			return "", rerr
		}
		sb.WriteString(blk.literal)
		sb.WriteString(convertEOL("---\n", eol))
		sb.WriteString(convertEOL(rendered, eol))
		sb.WriteString(eol)
	}
	return sb.String(), nil
}

// GenerateFile reads the script at path, regenerates it against r, and
// writes the result back to the same path, preserving its file mode.
func GenerateFile(path string, r Runner) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	rewritten, err := Generate(string(data), r)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.WriteFile(path, []byte(rewritten), info.Mode())
}
