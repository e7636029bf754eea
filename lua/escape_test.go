package lua

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode parses a single lua string literal the way the lua lexer would.
func decode(t *testing.T, literal string) string {
	t.Helper()

	if strings.HasPrefix(literal, `"`) {
		require.True(t, strings.HasSuffix(literal, `"`) && len(literal) >= 2, "unterminated literal %q", literal)
		inner := literal[1 : len(literal)-1]
		var b strings.Builder
		for i := 0; i < len(inner); i++ {
			c := inner[i]
			if c == '"' {
				t.Fatalf("unescaped quote inside %q", literal)
			}
			if c != '\\' {
				b.WriteByte(c)
				continue
			}
			i++
			require.Less(t, i, len(inner), "dangling escape in %q", literal)
			switch inner[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(inner[i])
			}
		}
		return b.String()
	}

	require.True(t, strings.HasPrefix(literal, "["), "not a lua string: %q", literal)
	level := 0
	for level+1 < len(literal) && literal[level+1] == '=' {
		level++
	}
	opener := "[" + strings.Repeat("=", level) + "["
	closer := "]" + strings.Repeat("=", level) + "]"
	require.True(t, strings.HasPrefix(literal, opener), "bad opener in %q", literal)

	rest := literal[len(opener):]
	end := strings.Index(rest, closer)
	require.GreaterOrEqual(t, end, 0, "no closer in %q", literal)
	require.Equal(t, len(rest)-len(closer), end, "string %q closes early", literal)

	body := rest[:end]
	return strings.TrimPrefix(body, "\n")
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"\'Test\'"`, Quote("'Test'"))
	assert.Equal(t, `"\"Test[]"`, Quote(`"Test[]`))
	assert.Equal(t, `"a\\b"`, Quote(`a\b`))
	assert.Equal(t, `"line1\nline2"`, Quote("line1\nline2"))
	assert.Equal(t, `""`, Quote(""))
}

func TestBlock(t *testing.T) {
	assert.Equal(t, "[[Test']]", Block("Test'"))
	assert.Equal(t, `"\'Test]"`, Block("'Test]"))
	assert.Equal(t, "[[ффф]]", Block("ффф"))
	assert.Equal(t, "[=[a]]b]=]", Block("a]]b"))
	assert.Equal(t, "[===[x [==[ y]===]", Block("x [==[ y"))
	assert.Equal(t, "[==[a]]=]b]==]", Block("a]]=]b"))
}

func TestBlockLevel(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"plain", 0},
		{"[single] brackets", 0},
		{"[[", 1},
		{"]]", 1},
		{"a ]=] b", 2},
		{"[==[ and ]=]", 3},
		{"a]]=]b", 2},
		{"[[1]]==]", 3},
		{"]]==]=]", 3},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, BlockLevel(tt.in))
		})
	}
}

func TestBlock_FallsBackOnClosingSuffix(t *testing.T) {
	// level 1 closes with ]=] so a trailing ]= would end the string early
	s := "]] and then ]="
	got := Block(s)
	assert.True(t, strings.HasPrefix(got, `"`), "expected quoted fallback, got %s", got)
	assert.Equal(t, s, decode(t, got))
}

func TestBlock_CarriageReturnsAreQuoted(t *testing.T) {
	s := "--boundary\r\nContent-Disposition: form-data\r\n\r\nvalue"
	got := Block(s)
	assert.Equal(t, `"--boundary\r\nContent-Disposition: form-data\r\n\r\nvalue"`, got)
	assert.Equal(t, s, decode(t, got))
}

func TestBlock_LeadingNewline(t *testing.T) {
	got := Block("\nbody")
	assert.Equal(t, "[[\n\nbody]]", got)
	assert.Equal(t, "\nbody", decode(t, got))
}

func TestBlock_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"a=1&b=2",
		"{\"json\": [1, 2, [3]]}",
		"multi\nline\nbody",
		"nested [[lua]] string",
		"deep [=[ ]==] [===[",
		"ends with ]",
		"ends with ]=",
		"]]]]]",
		"кириллица ]] юникод",
		"'single' and \"double\" quotes",
		"back\\slash",
		"a]]=]b",
		"[[1]]==]",
		"x]==]=]]y",
	}
	for _, in := range inputs {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			assert.Equal(t, in, decode(t, Block(in)))
		})
	}
}

func TestBlock_SelfNesting(t *testing.T) {
	for _, in := range []string{"Test'", "a]]b", "x [==[ y", "'Test]"} {
		once := Block(in)
		twice := Block(once)
		assert.Equal(t, once, decode(t, twice))
		assert.Equal(t, in, decode(t, decode(t, twice)))
	}
}

func TestOptional(t *testing.T) {
	assert.Equal(t, "nil", Optional(""))
	assert.Equal(t, `"10.0.0.1"`, Optional("10.0.0.1"))
}
