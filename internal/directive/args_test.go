package directive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringArg(t *testing.T) {
	v, ok := StringArg(ArgStart, `start="<!--s-->" end='<!--e-->'`)
	require.True(t, ok)
	require.Equal(t, "<!--s-->", v)

	v, ok = StringArg(ArgEnd, `start="<!--s-->" end='<!--e-->'`)
	require.True(t, ok)
	require.Equal(t, "<!--e-->", v)

	_, ok = StringArg(ArgExclude, `start="x"`)
	require.False(t, ok, "absent argument")

	_, ok = StringArg(ArgStart, `start=`)
	require.False(t, ok, "present but unparseable value")
}

func TestStringArg_UnescapesEnclosingQuote(t *testing.T) {
	v, ok := StringArg(ArgStart, `start="a \"b\""`)
	require.True(t, ok)
	require.Equal(t, `a "b"`, v)

	v, ok = StringArg(ArgEnd, `end='it\'s'`)
	require.True(t, ok)
	require.Equal(t, "it's", v)
}

func TestBoolArg(t *testing.T) {
	v, invalid := BoolArg(ArgDedent, "dedent=true", false)
	require.False(t, invalid)
	require.True(t, v)

	v, invalid = BoolArg(ArgDedent, "dedent=false", true)
	require.False(t, invalid)
	require.False(t, v)

	// Bare presence toggles the default.
	v, invalid = BoolArg(ArgDedent, "dedent=", false)
	require.False(t, invalid)
	require.True(t, v)

	v, invalid = BoolArg(ArgRecursive, "recursive=", true)
	require.False(t, invalid)
	require.False(t, v)

	_, invalid = BoolArg(ArgDedent, "dedent=notabool", false)
	require.True(t, invalid)

	// Case sensitive: True is not a valid token.
	_, invalid = BoolArg(ArgDedent, "dedent=True", false)
	require.True(t, invalid)

	v, invalid = BoolArg(ArgDedent, "other=true", true)
	require.False(t, invalid)
	require.True(t, v, "absent argument keeps the default")
}

func TestIntArg(t *testing.T) {
	raw, ok := IntArg(ArgHeadingOffset, "heading-offset=2")
	require.True(t, ok)
	require.Equal(t, "2", raw)

	raw, ok = IntArg(ArgHeadingOffset, "heading-offset=-3")
	require.True(t, ok)
	require.Equal(t, "-3", raw)

	raw, ok = IntArg(ArgHeadingOffset, "heading-offset=")
	require.True(t, ok)
	require.Empty(t, raw)

	_, ok = IntArg(ArgHeadingOffset, "comments=true")
	require.False(t, ok)
}

func TestScanArgumentNames(t *testing.T) {
	names := ScanArgumentNames(`start="a" end='b' comments=true`)
	require.Equal(t, []string{"start", "end", "comments"}, names)
}

func TestScanArgumentNames_QuotedValuesWithEquals(t *testing.T) {
	names := ScanArgumentNames(`start="a=b" dedent=true`)
	require.Equal(t, []string{"start", "dedent"}, names)
}

func TestScanArgumentNames_UnknownNamesIncluded(t *testing.T) {
	names := ScanArgumentNames(`bogus=1 start="x"`)
	require.Equal(t, []string{"bogus", "start"}, names)
}

func TestScanArgumentNames_MultilineSeparators(t *testing.T) {
	names := ScanArgumentNames("start=\"a\"\n  end=\"b\"")
	require.Equal(t, []string{"start", "end"}, names)
}

func TestAllowedArgs_DifferPerKind(t *testing.T) {
	require.True(t, AllowedArgs(KindIncludeMarkdown)[ArgHeadingOffset])
	require.False(t, AllowedArgs(KindInclude)[ArgHeadingOffset])
	require.False(t, AllowedArgs(KindInclude)[ArgComments])
	require.False(t, AllowedArgs(KindInclude)[ArgRewriteRelativeURLs])
	require.True(t, AllowedArgs(KindInclude)[ArgStart])
}
