package transform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestInterpretEscapes(t *testing.T) {
	require.Equal(t, "a\nb", InterpretEscapes(`a\nb`))
	require.Equal(t, "a\tb", InterpretEscapes(`a\tb`))
	require.Equal(t, "A", InterpretEscapes(`\x41`))
	require.Equal(t, "ñ", InterpretEscapes(`ñ`))
	require.Equal(t, `\q`, InterpretEscapes(`\q`), "unknown escapes stay verbatim")
	require.Equal(t, "plain", InterpretEscapes("plain"))
	require.Equal(t, `a\`, InterpretEscapes(`a\`), "trailing backslash survives")
}

func TestFilterInclusions_NoDelimiters(t *testing.T) {
	text, startNotFound, endNotFound := FilterInclusions(nil, nil, "anything")
	require.Equal(t, "anything", text)
	require.False(t, startNotFound)
	require.False(t, endNotFound)
}

func TestFilterInclusions_StartOnly(t *testing.T) {
	text, startNotFound, _ := FilterInclusions(strptr("<!--s-->"), nil, "skip<!--s-->keep")
	require.Equal(t, "keep", text)
	require.False(t, startNotFound)

	text, startNotFound, _ = FilterInclusions(strptr("missing"), nil, "content")
	require.Empty(t, text)
	require.True(t, startNotFound)
}

func TestFilterInclusions_EndOnly(t *testing.T) {
	text, _, endNotFound := FilterInclusions(nil, strptr("<!--e-->"), "keep<!--e-->skip")
	require.Equal(t, "keep", text)
	require.False(t, endNotFound)

	text, _, endNotFound = FilterInclusions(nil, strptr("missing"), "content")
	require.Equal(t, "content", text, "missing end keeps the whole text")
	require.True(t, endNotFound)
}

func TestFilterInclusions_BothConcatenateAllSpans(t *testing.T) {
	text, startNotFound, endNotFound := FilterInclusions(strptr("A"), strptr("B"), "xAyBzAwBq")
	require.Equal(t, "yw", text)
	require.False(t, startNotFound)
	require.False(t, endNotFound)
}

func TestFilterInclusions_BothWithEscapedDelimiters(t *testing.T) {
	text, _, _ := FilterInclusions(strptr(`\ts`), strptr(`\te`), "a\tskept\teb")
	require.Equal(t, "kept", text)
}

func TestFilterInclusions_BothStartMissing(t *testing.T) {
	_, startNotFound, endNotFound := FilterInclusions(strptr("NOPE"), strptr("B"), "xAyBz")
	require.True(t, startNotFound)
	require.False(t, endNotFound)
}
