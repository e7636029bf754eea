// Copyright 2025 Dave Shanley / Quobix / Princess Beef Heavy Industries, LLC
// SPDX-License-Identifier: MIT

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

var luaKeywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true, "end": true,
	"for": true, "function": true, "goto": true, "if": true, "in": true, "local": true,
	"not": true, "or": true, "repeat": true, "return": true, "then": true, "until": true,
	"while": true,
}

var luaLiterals = map[string]bool{
	"nil":   true,
	"true":  true,
	"false": true,
}

// luaHighlighter carries long string state from one line to the next.
type luaHighlighter struct {
	closer string // closing long bracket while inside a [[ ]] string, empty otherwise
}

// HighlightLua applies syntax highlighting to a Lua script, line by line.
func HighlightLua(content string) string {
	var h luaHighlighter
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = h.highlightLine(line)
	}
	return strings.Join(lines, "\n")
}

// HighlightLuaLine highlights a single line that does not continue a long string.
func HighlightLuaLine(line string) string {
	var h luaHighlighter
	return h.highlightLine(line)
}

func (h *luaHighlighter) highlightLine(line string) string {
	var out strings.Builder
	rest := line

	for rest != "" {
		if h.closer != "" {
			idx := strings.Index(rest, h.closer)
			if idx < 0 {
				out.WriteString(render(SyntaxStringStyle, rest))
				break
			}
			out.WriteString(render(SyntaxStringStyle, rest[:idx]))
			out.WriteString(render(SyntaxNumberStyle, h.closer))
			rest = rest[idx+len(h.closer):]
			h.closer = ""
			continue
		}

		if strings.HasPrefix(rest, "--") {
			out.WriteString(render(SyntaxCommentStyle, rest))
			break
		}

		if n := longBracketOpen(rest); n > 0 {
			out.WriteString(render(SyntaxNumberStyle, rest[:n]))
			h.closer = "]" + strings.Repeat("=", n-2) + "]"
			rest = rest[n:]
			continue
		}

		c := rest[0]
		switch {
		case c == '"' || c == '\'':
			n := quotedLength(rest)
			out.WriteString(render(SyntaxStringStyle, rest[:n]))
			rest = rest[n:]
		case c == '{' || c == '}':
			out.WriteString(render(SyntaxDashStyle, rest[:1]))
			rest = rest[1:]
		case isIdentStart(c):
			n := identLength(rest)
			out.WriteString(styleWord(rest[:n]))
			rest = rest[n:]
		case c >= '0' && c <= '9':
			n := numberLength(rest)
			out.WriteString(render(SyntaxNumberStyle, rest[:n]))
			rest = rest[n:]
		default:
			out.WriteByte(c)
			rest = rest[1:]
		}
	}

	return out.String()
}

func render(style lipgloss.Style, s string) string {
	if s == "" {
		return ""
	}
	return style.Render(s)
}

func styleWord(word string) string {
	switch {
	case luaLiterals[word]:
		return render(SyntaxNumberStyle, word)
	case luaKeywords[word]:
		return render(SyntaxDashStyle, word)
	case strings.HasPrefix(word, "http.") || strings.HasPrefix(word, "client.") || strings.HasPrefix(word, "math."):
		return render(SyntaxKeyStyle, word)
	default:
		return word
	}
}

// longBracketOpen returns the length of a long bracket opening ([[, [=[, ...) at the start
// of s, or 0.
func longBracketOpen(s string) int {
	if len(s) < 2 || s[0] != '[' {
		return 0
	}
	i := 1
	for i < len(s) && s[i] == '=' {
		i++
	}
	if i < len(s) && s[i] == '[' {
		return i + 1
	}
	return 0
}

// quotedLength returns the length of the quoted string at the start of s, including both
// quotes. An unterminated string runs to the end of s.
func quotedLength(s string) int {
	quote := s[0]
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(s)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// identLength measures a dotted identifier such as http.request_batch.
func identLength(s string) int {
	i := 0
	for i < len(s) {
		c := s[i]
		if isIdentStart(c) || (c >= '0' && c <= '9') || (c == '.' && i > 0 && i+1 < len(s) && isIdentStart(s[i+1])) {
			i++
			continue
		}
		break
	}
	return i
}

func numberLength(s string) int {
	i := 0
	for i < len(s) && ((s[i] >= '0' && s[i] <= '9') || s[i] == '.') {
		i++
	}
	return i
}
