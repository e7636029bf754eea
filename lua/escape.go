package lua

import (
	"strings"
)

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
)

// Quote renders s as a double-quoted Lua string literal.
func Quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}

// Block renders s as a Lua long bracket string, picking a level one deeper than any
// bracket already present in s. When s ends with something the closing bracket would
// swallow, or carries carriage returns that lua folds into plain newlines inside long
// brackets, Block falls back to Quote.
func Block(s string) string {
	level := BlockLevel(s)
	closer := "]" + strings.Repeat("=", level)
	if strings.HasSuffix(s, "]") || (level > 0 && strings.HasSuffix(s, closer)) ||
		strings.Contains(s, "\r") {
		return Quote(s)
	}

	eq := strings.Repeat("=", level)
	body := s
	// lua skips the first newline directly after the opening bracket
	if strings.HasPrefix(body, "\n") {
		body = "\n" + body
	}
	return "[" + eq + "[" + body + "]" + eq + "]"
}

// BlockLevel returns the number of '=' a long bracket needs so that none of the
// brackets embedded in s can terminate it. Brackets may overlap ("]]=]" holds both
// "]]" and "]=]"), so every '[' and ']' is tried as the start of one.
func BlockLevel(s string) int {
	deepest := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '[' && c != ']' {
			continue
		}
		j := i + 1
		for j < len(s) && s[j] == '=' {
			j++
		}
		if j < len(s) && s[j] == c {
			deepest = max(deepest, j-i-1)
		}
	}
	return deepest + 1
}

// Optional quotes s, or returns nil for an empty string.
func Optional(s string) string {
	if s == "" {
		return Nil
	}
	return Quote(s)
}

// Nil is the Lua nil literal, used for defaulted positional arguments.
const Nil = "nil"
