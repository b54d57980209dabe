package parser

import (
	"testing"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Trip report\ntags:\n  - travel\n  - othala\n---\n# Trip report\nBody text.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Trip report" {
		t.Errorf("title = %q, want %q", r.Title, "Trip report")
	}
	if len(r.Tags) < 2 || r.Tags[0] != "travel" || r.Tags[1] != "othala" {
		t.Errorf("tags = %v, want [travel othala]", r.Tags)
	}
	if r.Body != "# Trip report\nBody text.\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	r, err := Parse([]byte("# Just a heading\nSome text.\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
	if r.Title != "Just a heading" {
		t.Errorf("title = %q", r.Title)
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	r, err := Parse([]byte("---\n: invalid: yaml: {{{\n---\nBody\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
}

func TestExtractLinks_WikilinksAndEmbeds(t *testing.T) {
	body := "See [[Note A]] and ![[photo.png]].\nAlso [[Note A]] again and [[Note B|alias]]."
	links := extractLinks(body)
	want := []string{"Note A", "photo.png", "Note B"}
	if len(links) != len(want) {
		t.Fatalf("links = %v, want %v", links, want)
	}
	for i, w := range want {
		if links[i] != w {
			t.Errorf("links[%d] = %q, want %q", i, links[i], w)
		}
	}
}

func TestExtractLinks_SubpathStripped(t *testing.T) {
	links := extractLinks("ref [[Note A#Heading]] and [[Note C#Sec|disp]]")
	if len(links) != 2 || links[0] != "Note A" || links[1] != "Note C" {
		t.Errorf("links = %v", links)
	}
}

func TestExtractLinks_EmptyTarget(t *testing.T) {
	if links := extractLinks("see [[ ]] and [[|alias]]"); len(links) != 0 {
		t.Errorf("expected no links, got %v", links)
	}
}

func TestExtractTags_InlineAndFrontmatter(t *testing.T) {
	fm := map[string]any{
		"tags": []any{"alpha"},
	}
	tags := extractTags("Some text #beta and #alpha again.", fm)
	if len(tags) != 2 || tags[0] != "alpha" || tags[1] != "beta" {
		t.Errorf("tags = %v, want [alpha beta]", tags)
	}
}

func TestDeriveTitle_FrontmatterOverH1(t *testing.T) {
	fm := map[string]any{"title": "FM Title"}
	if got := deriveTitle(fm, "# H1 Title\ntext"); got != "FM Title" {
		t.Errorf("title = %q", got)
	}
}

func TestDeriveTitle_H1Fallback(t *testing.T) {
	if got := deriveTitle(nil, "some text\n# My Heading\nmore"); got != "My Heading" {
		t.Errorf("title = %q", got)
	}
}
