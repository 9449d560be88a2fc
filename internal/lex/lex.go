// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package lex implements the byte-string view and line/token
// splitting primitives the document parser and RPN parser share
// (spec.md §4.A). A BS never copies: it always shares the backing
// array of the buffer it was cut from, so callers must keep that
// buffer alive for as long as any BS derived from it is in use.
package lex

import (
	"bytes"
	"strconv"
)

// BS is a byte-string view into an externally owned buffer.
type BS []byte

// String returns b's contents as a Go string. This copies.
func (b BS) String() string { return string(b) }

// Empty reports whether b has zero length.
func (b BS) Empty() bool { return len(b) == 0 }

// Equal reports whether b's contents equal s byte-for-byte.
func (b BS) Equal(s string) bool { return string(b) == s }

// Header is the three-byte marker that introduces every command
// line and block boundary in the document grammar.
const Header = "//!"

// FindHeader returns the byte offset of the next occurrence of the
// "//!" marker in buf, or -1 if none exists.
func FindHeader(buf []byte) int { return bytes.Index(buf, []byte(Header)) }

// EatStart strips prefix from the start of s if present, reporting
// whether it was found.
func EatStart(s []byte, prefix string) (rest BS, ok bool) {
	if bytes.HasPrefix(s, []byte(prefix)) {
		return BS(s[len(prefix):]), true
	}
	return BS(s), false
}

// EatEnd strips suffix from the end of s if present, reporting
// whether it was found.
func EatEnd(s []byte, suffix string) (rest BS, ok bool) {
	if bytes.HasSuffix(s, []byte(suffix)) {
		return BS(s[:len(s)-len(suffix)]), true
	}
	return BS(s), false
}

// Trim strips leading and trailing ASCII space, tab and CR/LF from s.
func Trim(s []byte) BS { return BS(bytes.TrimSpace(s)) }

// Line splits buf at the first newline, returning the line (without
// its terminator) and the remainder of buf (after the terminator).
// If buf contains no newline, line is buf and rest is empty.
func Line(buf []byte) (line, rest BS) {
	i := bytes.IndexByte(buf, '\n')
	if i < 0 {
		return BS(bytes.TrimRight(buf, "\r")), nil
	}
	return BS(bytes.TrimRight(buf[:i], "\r")), BS(buf[i+1:])
}

// SplitSpace splits line on ASCII space (0x20) only — not general
// whitespace — trims each resulting token, and omits empty tokens.
// This matches the RPN tokenizer's splitting rule (spec.md §4.B).
func SplitSpace(line []byte) []BS {
	var toks []BS
	for _, f := range bytes.Split(line, []byte{' '}) {
		f = bytes.TrimSpace(f)
		if len(f) > 0 {
			toks = append(toks, BS(f))
		}
	}
	return toks
}

// Command splits a "//!COMMAND rest" header line (with the "//!"
// already stripped) into the command word and the remainder, with
// surrounding space trimmed and internal spacing (as in DESC text)
// preserved.
func Command(line []byte) (cmd BS, rest BS) {
	i := bytes.IndexByte(line, ' ')
	if i < 0 {
		return BS(line), nil
	}
	return BS(line[:i]), BS(bytes.TrimSpace(line[i+1:]))
}

// ParseFloat32 parses s as a float32 literal, sscanf-style.
func ParseFloat32(s []byte) (float32, error) {
	f, err := strconv.ParseFloat(string(bytes.TrimSpace(s)), 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

// ParseInt parses s as a base-10 integer, sscanf-style.
func ParseInt(s []byte) (int, error) {
	return strconv.Atoi(string(bytes.TrimSpace(s)))
}
