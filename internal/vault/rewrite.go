package vault

import (
	"path"
	"regexp"
	"strings"
)

var linkRe = regexp.MustCompile(`(!?)\[\[([^\]]*)\]\]`)

// rewriteLinks rewrites wikilink and embed targets in body that point at
// oldPath so they point at newPath instead. Only path-form targets (those
// containing a separator) are rewritten. Alias and heading segments are
// preserved, and a markdown target written without its ".md" extension keeps
// that spelling.
func rewriteLinks(body, oldPath, newPath string) (string, bool) {
	changed := false
	out := linkRe.ReplaceAllStringFunc(body, func(m string) string {
		sub := linkRe.FindStringSubmatch(m)
		bang, inner := sub[1], sub[2]

		target, rest := inner, ""
		if i := strings.IndexAny(inner, "#|"); i >= 0 {
			target, rest = inner[:i], inner[i:]
		}
		trimmed := strings.TrimSpace(target)
		if !strings.Contains(trimmed, "/") {
			return m
		}

		norm := path.Clean(strings.TrimPrefix(trimmed, "/"))
		var replacement string
		switch {
		case strings.EqualFold(norm, oldPath):
			replacement = newPath
		case strings.EqualFold(norm+".md", oldPath):
			replacement = strings.TrimSuffix(newPath, ".md")
		default:
			return m
		}
		changed = true
		return bang + "[[" + replacement + rest + "]]"
	})
	return out, changed
}
