package transform

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

// The Markdown patterns below descend from the ones in Markdown.pl, adjusted
// for RE2: no backreferences (titles are matched by quote alternation) and no
// lookbehind (the not-an-image guard is a preceding-byte check on the match).
// RE2 matching is linear-time, so the nested-bracket pattern cannot backtrack
// catastrophically.

// Matches markdown inline links, e.g. [scikit-learn](https://github.com/scikit-learn/scikit-learn).
// Group 2 is the target. Nested brackets in the link text are supported one
// level deep, enough for badges inside links.
var markdownLinkRE = regexp.MustCompile(
	`\[((?:[^\[\]]+(?:\[[^\[\]]+\][^\[\]]*)*)?)\]` +
		`\(\s*<?(.*?)>?\s*((?:"[^"]*"|'[^']*'))?\)`,
)

// Matches markdown inline images, e.g. ![alt-text](path/to/image.png).
var markdownImageRE = regexp.MustCompile(
	`!\[(.*?)\]\([ \t]*<?(\S+?)>?[ \t]*((?:"[^"]*"|'[^']*'))?[ \t]*\)`,
)

// Matches markdown reference-style link definitions,
// e.g. [scikit-learn]: https://github.com/scikit-learn/scikit-learn.
var markdownLinkDefinitionRE = regexp.MustCompile(
	`(?m)^[ ]{0,4}\[(.+)\]:[ \t]*\n?[ \t]*<?(\S+?)>?` +
		`(?:(?:[ \t]*\n[ \t]*|[ \t]+)["(](.+?)[")][ \t]*)?(?:\n+|\z)`,
)

// HTML attribute patterns. Attribute runs before src/href tolerate '>'
// inside quoted attribute values.
var (
	htmlImageSrcRE = regexp.MustCompile(
		`(?i)<(?:img|source)\s(?:[^>"']|"[^"]*"|'[^']*')*?src=(?:"([^"]*)"|'([^']*)')`,
	)
	htmlAnchorHrefRE = regexp.MustCompile(
		`(?i)<a\s(?:[^>"']|"[^"]*"|'[^']*')*?href=(?:"([^"]*)"|'([^']*)')`,
	)
)

// rewriteTargetGroups replaces the content of the first matched group among
// groups with fn's result, for every match of re in text. Matches for which
// skip returns true pass through untouched.
func rewriteTargetGroups(
	re *regexp.Regexp,
	text string,
	groups []int,
	skip func(text string, match []int) bool,
	fn func(string) string,
) string {
	var b strings.Builder
	last := 0
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		if skip != nil && skip(text, m) {
			continue
		}
		gs, ge := -1, -1
		for _, g := range groups {
			if m[2*g] >= 0 {
				gs, ge = m[2*g], m[2*g+1]
				break
			}
		}
		if gs < 0 {
			continue
		}
		b.WriteString(text[last:gs])
		b.WriteString(fn(text[gs:ge]))
		last = ge
	}
	b.WriteString(text[last:])
	return b.String()
}

// precededByBang rejects inline-link matches that are actually images.
func precededByBang(text string, match []int) bool {
	return match[0] > 0 && text[match[0]-1] == '!'
}

// RewriteRelativeURLs rewrites markdown so that relative links written at
// sourcePath still work when the content is inserted into a file at
// destinationPath. Code blocks are never touched. Absolute paths,
// scheme-qualified URLs (mailto included) and pure in-page anchors are left
// as they are; everything else is re-expressed relative to destinationPath's
// directory using forward slashes, preserving any trailing slash.
func RewriteRelativeURLs(markdown, sourcePath, destinationPath string) string {
	sourceDir := filepath.Dir(sourcePath)
	destDir := filepath.Dir(destinationPath)

	rewrite := func(target string) string {
		return rewriteTarget(target, sourceDir, destDir)
	}

	transform := func(paragraph string) string {
		paragraph = rewriteTargetGroups(markdownLinkRE, paragraph, []int{2}, precededByBang, rewrite)
		paragraph = rewriteTargetGroups(markdownImageRE, paragraph, []int{2}, nil, rewrite)
		paragraph = rewriteTargetGroups(markdownLinkDefinitionRE, paragraph, []int{2}, nil, rewrite)
		paragraph = rewriteTargetGroups(htmlImageSrcRE, paragraph, []int{1, 2}, nil, rewrite)
		return rewriteTargetGroups(htmlAnchorHrefRE, paragraph, []int{1, 2}, nil, rewrite)
	}

	return TransformParagraphs(markdown, transform)
}

func rewriteTarget(target, sourceDir, destDir string) string {
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return target
	}

	// Split off ?query and #fragment without a percent-escaping round trip.
	path, suffix := target, ""
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path, suffix = path[:i], path[i:]
	}

	if path == "" || strings.HasPrefix(path, "/") {
		return target
	}

	rel, err := filepath.Rel(destDir, filepath.Join(sourceDir, path))
	if err != nil {
		return target
	}
	rel = filepath.ToSlash(rel)
	if strings.HasSuffix(path, "/") {
		rel += "/"
	}
	return rel + suffix
}
