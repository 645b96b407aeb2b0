package transform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	linkSource = "/docs/includes/feature/index.md"
	linkDest   = "/docs/index.md"
)

func TestRewriteRelativeURLs_InlineLink(t *testing.T) {
	out := RewriteRelativeURLs("[Link](page.md)\n", linkSource, linkDest)
	require.Equal(t, "[Link](includes/feature/page.md)\n", out)
}

func TestRewriteRelativeURLs_LinkWithTitle(t *testing.T) {
	out := RewriteRelativeURLs("[Link](page.md \"Title\")\n", linkSource, linkDest)
	require.Equal(t, "[Link](includes/feature/page.md \"Title\")\n", out)
}

func TestRewriteRelativeURLs_Image(t *testing.T) {
	out := RewriteRelativeURLs("![Alt](img.png)\n", linkSource, linkDest)
	require.Equal(t, "![Alt](includes/feature/img.png)\n", out)
}

func TestRewriteRelativeURLs_ParentDirectory(t *testing.T) {
	out := RewriteRelativeURLs("[Up](../other.md)\n", linkSource, linkDest)
	require.Equal(t, "[Up](includes/other.md)\n", out)
}

func TestRewriteRelativeURLs_FragmentAndQueryPreserved(t *testing.T) {
	out := RewriteRelativeURLs("[L](page.md#section)\n", linkSource, linkDest)
	require.Equal(t, "[L](includes/feature/page.md#section)\n", out)

	out = RewriteRelativeURLs("[L](page.md?v=1)\n", linkSource, linkDest)
	require.Equal(t, "[L](includes/feature/page.md?v=1)\n", out)
}

func TestRewriteRelativeURLs_TrailingSlashPreserved(t *testing.T) {
	out := RewriteRelativeURLs("[Dir](subdir/)\n", linkSource, linkDest)
	require.Equal(t, "[Dir](includes/feature/subdir/)\n", out)
}

func TestRewriteRelativeURLs_SkipsNonRelativeTargets(t *testing.T) {
	for _, md := range []string{
		"[U](https://example.com/page.md)\n",
		"[M](mailto:user@example.com)\n",
		"[A](#anchor)\n",
		"[Abs](/absolute/path.md)\n",
	} {
		require.Equal(t, md, RewriteRelativeURLs(md, linkSource, linkDest))
	}
}

func TestRewriteRelativeURLs_LinkDefinition(t *testing.T) {
	out := RewriteRelativeURLs("[ref]: page.md\n", linkSource, linkDest)
	require.Equal(t, "[ref]: includes/feature/page.md\n", out)
}

func TestRewriteRelativeURLs_HTMLImageAndAnchor(t *testing.T) {
	out := RewriteRelativeURLs("<img alt=\"x\" src=\"img.png\">\n", linkSource, linkDest)
	require.Equal(t, "<img alt=\"x\" src=\"includes/feature/img.png\">\n", out)

	out = RewriteRelativeURLs("<a href='page.md'>x</a>\n", linkSource, linkDest)
	require.Equal(t, "<a href='includes/feature/page.md'>x</a>\n", out)
}

func TestRewriteRelativeURLs_AdjacentLinks(t *testing.T) {
	out := RewriteRelativeURLs("[a](one.md)[b](two.md)\n", linkSource, linkDest)
	require.Equal(t, "[a](includes/feature/one.md)[b](includes/feature/two.md)\n", out)
}

func TestRewriteRelativeURLs_SkipsCodeBlocks(t *testing.T) {
	md := "```\n[L](page.md)\n```\n"
	require.Equal(t, md, RewriteRelativeURLs(md, linkSource, linkDest))
}

func TestRewriteRelativeURLs_IdempotentUnderSamePaths(t *testing.T) {
	md := "[L](page.md) and ![I](img.png)\n"
	once := RewriteRelativeURLs(md, linkDest, linkDest)
	require.Equal(t, once, RewriteRelativeURLs(once, linkDest, linkDest))
}
