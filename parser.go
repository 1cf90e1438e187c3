package goldenscript

// parser consumes a lexer's token stream with a single token of lookahead.
// The lookahead is pulled lazily (only on peek) so that the two raw regions
// of the grammar -- the verbatim remainder of a '>' line, and the literal
// expected-output section after '---' -- can be read directly off the
// underlying lexer without it ever having tokenized past the boundary.
type parser struct {
	lex *lexer

	has            bool
	cur            token
	curSpaceBefore bool

	err error
}

func newParser(src string) *parser {
	return &parser{lex: newLexer(src)}
}

// peek returns the current lookahead token, fetching it from the lexer if
// necessary. It never advances past what has already been fetched.
func (p *parser) peek() token {
	if !p.has {
		p.fetch()
	}
	return p.cur
}

// fetch pulls the next significant (non-whitespace) token from the lexer.
func (p *parser) fetch() {
	spaceBefore := false
	for {
		t, err := p.lex.next()
		if err != nil {
			p.err = err
			p.cur = token{kind: tokEOF, line: t.line, start: t.start}
			p.has = true
			return
		}
		if t.kind == tokWhitespace {
			spaceBefore = true
			continue
		}
		p.cur = t
		p.curSpaceBefore = spaceBefore
		p.has = true
		return
	}
}

// advance consumes the current lookahead token and invalidates the cache,
// so that the next peek (if any) pulls fresh from the lexer. Critically, it
// does not itself pull a new token -- callers transitioning into a raw
// region rely on that to keep the lexer positioned exactly where they need
// it.
func (p *parser) advance() token {
	t := p.peek()
	p.has = false
	return t
}

// tryParseString consumes the current token if it is an identifier or
// quoted string, returning its decoded text. ok is false (with no error) if
// the current token simply isn't a string.
func (p *parser) tryParseString() (string, bool, error) {
	if p.err != nil {
		return "", false, p.err
	}
	cur := p.peek()
	switch cur.kind {
	case tokIdent, tokString:
		p.advance()
		return cur.text, true, nil
	default:
		return "", false, nil
	}
}

// parseScript parses an entire goldenscript source into its blocks.
func parseScript(src string) ([]*block, error) {
	p := newParser(src)
	var blocks []*block
	for {
		if p.err != nil {
			return nil, p.err
		}
		if p.peek().kind == tokEOF {
			break
		}
		blk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, blk)
		if blk.commands == nil {
			// A trailing literal-only block (comments/blank lines with no
			// '---' and no commands) always ends the script.
			break
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return blocks, nil
}

// parseBlock parses one block: its command section up to a '---' separator,
// then the verbatim expected-output section up to the next blank line or
// EOF, consuming that blank line. If the command section reaches EOF with no commands at all (a
// trailing run of blank/comment lines with no separator), it is returned as
// a literal-only block with nil commands instead of an error.
func (p *parser) parseBlock() (*block, error) {
	startLine := p.peek().line
	startOffset := p.peek().start

	var commands []*Command
	for {
		if p.err != nil {
			return nil, p.err
		}
		switch p.peek().kind {
		case tokNewline:
			p.advance()
			continue
		case tokComment:
			p.advance()
			if p.peek().kind == tokNewline {
				p.advance()
			}
			continue
		case tokEOF:
			if len(commands) == 0 {
				endOffset := p.peek().start
				return &block{literal: p.lex.src[startOffset:endOffset], line: startLine}, nil
			}
			return nil, parseErrorf(startLine, "missing '---' separator before end of file")
		case tokSeparator:
			if len(commands) == 0 {
				return nil, parseErrorf(p.peek().line, "'---' with no preceding command")
			}
			goto gotSeparator
		default:
			cmd, err := p.parseLine()
			if err != nil {
				return nil, err
			}
			commands = append(commands, cmd)
		}
	}

gotSeparator:
	endOffset := p.peek().start
	literal := p.lex.src[startOffset:endOffset]
	sepLine := p.peek().line
	p.advance() // consume '---'

	switch p.peek().kind {
	case tokNewline:
		p.advance()
	case tokEOF:
		// '---' at EOF with no trailing newline: empty expected output.
	default:
		return nil, parseErrorf(sepLine, "expected newline after '---'")
	}

	// The lexer is now positioned exactly at the start of the expected
	// output section; read it verbatim without tokenizing it.
	expected := p.lex.rawUntilBlankLineOrEOF()

	// Consume the blank line that ends the section, so it does not become
	// part of the next block's literal text.
	if p.peek().kind == tokNewline {
		p.advance()
	}

	return &block{commands: commands, literal: literal, expected: expected, line: startLine}, nil
}

// parseLine parses one command line: any number of leading '!' fail markers
// and [tag] groups in either order, then either a raw '>' form or a regular
// (possibly silenced, possibly prefixed) command.
func (p *parser) parseLine() (*Command, error) {
	tags := Tags{}
	fail := false

loop:
	for {
		if p.err != nil {
			return nil, p.err
		}
		switch p.peek().kind {
		case tokBang:
			p.advance()
			fail = true
		case tokLBracket:
			newTags, err := p.parseTags()
			if err != nil {
				return nil, err
			}
			for tag := range newTags {
				tags[tag] = struct{}{}
			}
		default:
			break loop
		}
	}

	if p.peek().kind == tokGt {
		return p.parseRawCommand(tags, fail)
	}
	return p.parseCommandBody(tags, fail)
}

// parseTags parses a "[tag, tag, ...]" group, the lookahead positioned at
// the opening '['.
func (p *parser) parseTags() (Tags, error) {
	line := p.peek().line
	p.advance() // '['
	tags := Tags{}
	for {
		name, ok, err := p.tryParseString()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, parseErrorf(line, "expected tag name in '[...]'")
		}
		if name == "" {
			return nil, parseErrorf(line, "tag name must not be empty")
		}
		tags[name] = struct{}{}

		switch p.peek().kind {
		case tokComma:
			p.advance()
			continue
		case tokRBracket:
			p.advance()
			return tags, nil
		default:
			return nil, parseErrorf(line, "expected ',' or ']' in tag list")
		}
	}
}

// parseRawCommand parses the '>' raw form, whose remainder is taken
// verbatim from the source rather than tokenized.
func (p *parser) parseRawCommand(tags Tags, fail bool) (*Command, error) {
	line := p.peek().line
	p.advance() // '>'

	raw := p.lex.rawLineRemainder()

	switch p.peek().kind {
	case tokNewline:
		p.advance()
	case tokEOF:
	default:
		return nil, internalErrorf(line, "raw command line not properly terminated")
	}

	return &Command{Name: raw, Tags: tags, Fail: fail, Line: line}, nil
}

// parseCommandBody parses a regular command: optional silencing parens,
// optional "prefix:", a name, and its arguments. fail may already be true
// from a leading '!' consumed by parseLine; it may also be set here by a
// '!' immediately inside the parens or immediately after "prefix:".
func (p *parser) parseCommandBody(tags Tags, fail bool) (*Command, error) {
	silent := false
	if p.peek().kind == tokLParen {
		p.advance()
		silent = true
		if p.peek().kind == tokBang {
			p.advance()
			fail = true
		}
	}

	line := p.peek().line
	first, ok, err := p.tryParseString()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, parseErrorf(line, "expected command name")
	}

	name := first
	prefix := ""
	prefixSet := false

	// A ':' immediately (no intervening space) after the first string marks
	// it as a prefix rather than the command name.
	if p.peek().kind == tokColon && !p.curSpaceBefore {
		if first == "" {
			return nil, parseErrorf(line, "prefix must not be empty")
		}
		p.advance() // ':'
		prefix = first
		prefixSet = true
		if p.peek().kind == tokBang {
			p.advance()
			fail = true
		}
		name2, ok2, err2 := p.tryParseString()
		if err2 != nil {
			return nil, err2
		}
		if ok2 {
			name = name2
		} else {
			name = ""
		}
	} else if first == "" {
		return nil, parseErrorf(line, "command name must not be empty")
	}

	var args []Argument
	for p.moreArgs() {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	if silent {
		if p.peek().kind != tokRParen {
			return nil, parseErrorf(line, "expected closing ')'")
		}
		p.advance()
	}

	if p.peek().kind == tokComment {
		p.advance()
	}

	switch p.peek().kind {
	case tokNewline:
		p.advance()
	case tokEOF:
	default:
		return nil, parseErrorf(line, "unexpected trailing content after command")
	}

	return &Command{
		Name:      name,
		Args:      args,
		Prefix:    prefix,
		PrefixSet: prefixSet,
		Tags:      tags,
		Silent:    silent,
		Fail:      fail,
		Line:      line,
	}, nil
}

// moreArgs reports whether the lookahead begins another argument: it must
// be a string token with at least one space of separation from whatever
// came before it.
func (p *parser) moreArgs() bool {
	cur := p.peek()
	return p.curSpaceBefore && (cur.kind == tokIdent || cur.kind == tokString)
}

// parseArgument parses a single "key=value" or bare positional argument.
// moreArgs must have already confirmed the lookahead starts a string.
func (p *parser) parseArgument() (Argument, error) {
	line := p.peek().line
	first, _, err := p.tryParseString()
	if err != nil {
		return Argument{}, err
	}
	if p.peek().kind == tokEquals && !p.curSpaceBefore {
		if first == "" {
			return Argument{}, parseErrorf(line, "argument key must not be empty")
		}
		p.advance() // '='
		val, ok, err := p.tryParseString()
		if err != nil {
			return Argument{}, err
		}
		if !ok {
			val = ""
		}
		return Argument{Key: first, Value: val}, nil
	}
	return Argument{Value: first}, nil
}
