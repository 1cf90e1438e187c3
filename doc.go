// Copyright 2024 The testscript Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package goldenscript implements a golden-script testing engine: a script
format in which each input block declares one or more commands and the
following block records the expected textual output of running them. A
caller-supplied [Runner] turns commands into side effects and text; [Run]
drives a script against it and compares the result, while [Generate]
rewrites a script with freshly observed output.

This package is heavily inspired by and adapted from the testscript
package originally developed by Roger Peppe, retargeted from a
filesystem/exec-based test format onto an engine-agnostic command/output
comparator.

# Script format

A script is a sequence of blocks. Each block is an input section of one
or more command lines, a "---" separator, and a literal expected-output
section running to the next blank line or end of file:

	echo hello
	---
	hello

Command lines support quoting, escapes, tags, prefixes, silencing, and a
fail marker. See lexer.go and parser.go for the full grammar.

# Running scripts

	err := goldenscript.Run("testdata/hello.golden", myRunner)

myRunner need only implement [Runner]; it may additionally implement any
of [ScriptStarter], [ScriptEnder], [BlockStarter], [BlockEnder],
[CommandStarter], and [CommandEnder] to hook into the surrounding
lifecycle.

# Generating scripts

	rewritten, err := goldenscript.Generate(src, myRunner)

writes back each block's observed output in place of its recorded
expected section, which is how new scripts are authored: write the input
sections, run once in generate mode, then commit the result.

# Internal commands

Command names starting with "_" are reserved for the engine: "_set"
adjusts driver-managed prefix/suffix/hook strings, "_echo" emits its
arguments verbatim, and "_panic" simulates a command panic. None of
these reach the Runner's Run method.

# Command-line tool

The goldenscript command runs or regenerates every script matching a
project's convention:

	goldenscript run testdata/
	goldenscript generate testdata/example.golden
	goldenscript watch testdata/

See cmd/goldenscript.
*/
package goldenscript
