// Package scanner extracts embed directives (![[target]]) from note text.
package scanner

import (
	"regexp"
	"strings"
)

var embedRe = regexp.MustCompile(`!\[\[([^\]|]+)(?:\|([^\]]*))?\]\]`)

// Embed is a single ![[...]] occurrence in note text. Target is trimmed;
// Alias carries the display text after a pipe, if any. Offset is the byte
// position of the match in the source text.
type Embed struct {
	Target string
	Alias  string
	Offset int
}

// Scan returns every embed in text, left-to-right, one entry per occurrence.
// Duplicate targets are kept: whether two references point at the same file
// is for the resolver to decide, not the scanner. No result means no embeds;
// that is never an error.
func Scan(text string) []Embed {
	matches := embedRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]Embed, 0, len(matches))
	for _, m := range matches {
		target := strings.TrimSpace(text[m[2]:m[3]])
		if target == "" {
			continue
		}
		alias := ""
		if m[4] >= 0 {
			alias = text[m[4]:m[5]]
		}
		out = append(out, Embed{Target: target, Alias: alias, Offset: m[0]})
	}
	return out
}
