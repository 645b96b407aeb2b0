package directive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidOrderOption(t *testing.T) {
	for _, valid := range []string{
		"", "alpha", "natural", "-alpha", "natural-name", "alpha-extension",
		"path", "name", "extension", "-extension",
		"system", "random", "size", "-size", "mtime", "ctime", "atime",
	} {
		require.True(t, ValidOrderOption(valid), "expected %q to be valid", valid)
	}
	for _, invalid := range []string{
		"bogus", "alpha-bogus", "size-name", "alphabetical", "mtime-path",
	} {
		require.False(t, ValidOrderOption(invalid), "expected %q to be invalid", invalid)
	}
}

func TestParseOrderOption_Defaults(t *testing.T) {
	o := ParseOrderOption("")
	require.False(t, o.Reverse)
	require.Equal(t, OrderAlpha, o.Type)
	require.Equal(t, OrderByPath, o.By)
}

func TestParseOrderOption_Reverse(t *testing.T) {
	o := ParseOrderOption("-alpha")
	require.True(t, o.Reverse)
	require.Equal(t, OrderAlpha, o.Type)
	require.Equal(t, OrderByPath, o.By)
}

func TestParseOrderOption_TypeAndKey(t *testing.T) {
	o := ParseOrderOption("natural-name")
	require.Equal(t, OrderNatural, o.Type)
	require.Equal(t, OrderByName, o.By)

	o = ParseOrderOption("-alpha-extension")
	require.True(t, o.Reverse)
	require.Equal(t, OrderAlpha, o.Type)
	require.Equal(t, OrderByExtension, o.By)
}

func TestParseOrderOption_KeyOnly(t *testing.T) {
	o := ParseOrderOption("extension")
	require.Equal(t, OrderAlpha, o.Type)
	require.Equal(t, OrderByExtension, o.By)
}

func TestParseOrderOption_AttributeSorts(t *testing.T) {
	for _, typ := range []string{OrderSystem, OrderRandom, OrderSize, OrderMtime, OrderCtime, OrderAtime} {
		o := ParseOrderOption(typ)
		require.Equal(t, typ, o.Type)
		require.False(t, o.Reverse)
	}
	o := ParseOrderOption("-size")
	require.True(t, o.Reverse)
	require.Equal(t, OrderSize, o.Type)
}
