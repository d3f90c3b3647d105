package jsonk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseScalars(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind Kind
	}{
		{"null", "null", KindNull},
		{"true", "true", KindBool},
		{"false", "false", KindBool},
		{"int", "42", KindNumber},
		{"negative", "-7", KindNumber},
		{"fraction", "3.25", KindNumber},
		{"string", `"hello"`, KindString},
		{"empty object", "{}", KindObject},
		{"empty array", "[]", KindArray},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Parse(tc.src)
			require.NoError(t, err)
			defer v.Release()
			require.Equal(t, tc.kind, v.Kind())
		})
	}
}

func TestParseObjectRoundTrip(t *testing.T) {
	src := `{"name":"alice","age":30,"tags":["a","b"],"active":true,"note":null}`
	v, err := Parse(src)
	require.NoError(t, err)
	defer v.Release()

	require.True(t, v.IsObject())
	require.Equal(t, 5, v.Len())

	name, ok := GetString(v, "name")
	require.True(t, ok)
	require.Equal(t, "alice", name)

	age, ok := GetInt64(v, "age")
	require.True(t, ok)
	require.Equal(t, int64(30), age)

	tags := v.Get("tags")
	require.True(t, tags.IsArray())
	require.Equal(t, 2, tags.Len())

	buf := make([]byte, 256)
	n, err := Serialize(v, buf)
	require.NoError(t, err)
	require.Contains(t, string(buf[:n]), `"name":"alice"`)
}

func TestParseStringEscapes(t *testing.T) {
	v, err := Parse(`"line1\nline2\t\"quoted\""`)
	require.NoError(t, err)
	defer v.Release()
	require.Equal(t, "line1\nline2\t\"quoted\"", v.Str())
}

func TestParseUnicodeEscapeCopiedLiterally(t *testing.T) {
	// The \u0041 escape is not decoded to the letter 'A'; it is copied
	// through as its 6-byte literal source form, matching
	// jsonk_value_create_string_tracked.
	src := "\"\\u0041\""
	v, err := Parse(src)
	require.NoError(t, err)
	defer v.Release()
	require.Equal(t, "\\u0041", v.Str())
}

func TestParseNumberSaturates(t *testing.T) {
	v, err := Parse(strings.Repeat("9", 40))
	require.NoError(t, err)
	defer v.Release()
	require.Equal(t, uint64(1<<63-1), v.NumberValue().Integer, "positive literal saturates at S64_MAX")
	require.True(t, v.NumberValue().IsInteger)

	neg, err := Parse("-" + strings.Repeat("9", 40))
	require.NoError(t, err)
	defer neg.Release()
	require.Equal(t, uint64(1<<63), neg.NumberValue().Integer, "negative literal saturates at |S64_MIN|")
}

func TestParseRejectsSyntaxErrors(t *testing.T) {
	cases := []string{
		``,
		`{`,
		`{"a":}`,
		`[1,]`,
		`tru`,
		`"unterminated`,
		`01`,
		`{"a":1} trailing`,
	}
	for _, src := range cases {
		_, err := Parse(src)
		require.Error(t, err, "src=%q", src)
	}
}

func TestParseRejectsExcessiveDepth(t *testing.T) {
	src := strings.Repeat("[", MaxDepth+1) + strings.Repeat("]", MaxDepth+1)
	_, err := Parse(src)
	require.ErrorIs(t, err, ErrDepth)
}

func TestParseRejectsOversizedArray(t *testing.T) {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < MaxArraySize+1; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('0')
	}
	sb.WriteByte(']')
	_, err := Parse(sb.String())
	require.ErrorIs(t, err, ErrLimit)
}

func TestParseRejectsOversizedKey(t *testing.T) {
	key := strings.Repeat("k", MaxKeyLength+1)
	_, err := Parse(`{"` + key + `":1}`)
	require.ErrorIs(t, err, ErrLimit)
}

func TestParseLogsDiagnosticOnFailure(t *testing.T) {
	logger := &fakeLogger{}
	p := Parser{Logger: logger}
	_, err := p.Parse(`{bad`)
	require.Error(t, err)
	require.NotEmpty(t, logger.warnings)
}
