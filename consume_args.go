package goldenscript

import (
	"fmt"
	"strconv"
)

// ArgumentConsumer provides common argument-draining patterns on top of a
// Command's raw Args slice: positional arguments are consumed front to
// back, keyed arguments are looked up by name, and any argument left
// untouched at the end can be rejected as an error. It does not mutate the
// Command; it tracks consumption against a local copy of indices.
//
// This lives outside the lexer/parser/driver core proper — it's a
// convenience layer exposed to Runner implementations, not part of the
// engine's own control flow.
type ArgumentConsumer struct {
	args      []Argument
	consumed  []bool
	posCursor int
}

// ConsumeArgs returns an ArgumentConsumer over the command's arguments.
func (c *Command) ConsumeArgs() *ArgumentConsumer {
	return &ArgumentConsumer{args: c.Args, consumed: make([]bool, len(c.Args))}
}

// NextPos consumes and returns the next unconsumed positional argument, or
// nil if there are none left.
func (a *ArgumentConsumer) NextPos() *Argument {
	for ; a.posCursor < len(a.args); a.posCursor++ {
		if a.args[a.posCursor].HasKey() || a.consumed[a.posCursor] {
			continue
		}
		a.consumed[a.posCursor] = true
		arg := a.args[a.posCursor]
		a.posCursor++
		return &arg
	}
	return nil
}

// RestPos consumes and returns all remaining unconsumed positional
// arguments, in order.
func (a *ArgumentConsumer) RestPos() []Argument {
	var rest []Argument
	for i := range a.args {
		if a.args[i].HasKey() || a.consumed[i] {
			continue
		}
		a.consumed[i] = true
		rest = append(rest, a.args[i])
	}
	return rest
}

// Lookup consumes and returns the first unconsumed keyed argument matching
// key, or nil if there is none. If multiple arguments share the key, the
// first (in source order) wins; later duplicates remain unconsumed, which
// will surface via RejectRest unless the runner also consumes them.
func (a *ArgumentConsumer) Lookup(key string) *Argument {
	for i := range a.args {
		if a.consumed[i] || !a.args[i].HasKey() || a.args[i].Key != key {
			continue
		}
		a.consumed[i] = true
		arg := a.args[i]
		return &arg
	}
	return nil
}

// LookupParse consumes the first unconsumed keyed argument matching key and
// parses its value as an int64, returning ok=false if the key was absent.
func (a *ArgumentConsumer) LookupParse(key string) (value int64, ok bool, err error) {
	arg := a.Lookup(key)
	if arg == nil {
		return 0, false, nil
	}
	value, err = strconv.ParseInt(arg.Value, 10, 64)
	if err != nil {
		return 0, true, fmt.Errorf("invalid argument %q=%q: %w", key, arg.Value, err)
	}
	return value, true, nil
}

// LookupBool consumes the first unconsumed keyed argument matching key and
// parses its value as a bool, returning ok=false if the key was absent.
func (a *ArgumentConsumer) LookupBool(key string) (value bool, ok bool, err error) {
	arg := a.Lookup(key)
	if arg == nil {
		return false, false, nil
	}
	value, err = strconv.ParseBool(arg.Value)
	if err != nil {
		return false, true, fmt.Errorf("invalid argument %q=%q: %w", key, arg.Value, err)
	}
	return value, true, nil
}

// RejectRest returns an error naming the first argument that was never
// consumed via NextPos/RestPos/Lookup/LookupParse/LookupBool, or nil if all
// arguments were consumed.
func (a *ArgumentConsumer) RejectRest() error {
	for i := range a.args {
		if a.consumed[i] {
			continue
		}
		if a.args[i].HasKey() {
			return fmt.Errorf("unexpected argument %s=%s", a.args[i].Key, a.args[i].Value)
		}
		return fmt.Errorf("unexpected argument %q", a.args[i].Value)
	}
	return nil
}
