package scanner

import (
	"testing"
)

func TestScan_Basic(t *testing.T) {
	text := "Intro ![[photo.png]] middle ![[docs/spec.pdf]] end."
	embeds := Scan(text)
	if len(embeds) != 2 {
		t.Fatalf("len = %d, want 2", len(embeds))
	}
	if embeds[0].Target != "photo.png" {
		t.Errorf("target[0] = %q", embeds[0].Target)
	}
	if embeds[1].Target != "docs/spec.pdf" {
		t.Errorf("target[1] = %q", embeds[1].Target)
	}
	if embeds[0].Offset >= embeds[1].Offset {
		t.Errorf("offsets not ordered: %d, %d", embeds[0].Offset, embeds[1].Offset)
	}
}

func TestScan_AliasStripped(t *testing.T) {
	embeds := Scan("![[diagram.svg|the big picture]]")
	if len(embeds) != 1 {
		t.Fatalf("len = %d, want 1", len(embeds))
	}
	if embeds[0].Target != "diagram.svg" {
		t.Errorf("target = %q, want %q", embeds[0].Target, "diagram.svg")
	}
	if embeds[0].Alias != "the big picture" {
		t.Errorf("alias = %q", embeds[0].Alias)
	}
}

func TestScan_NoEmbeds(t *testing.T) {
	if got := Scan("no embeds here"); len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestScan_PlainWikilinkIgnored(t *testing.T) {
	// [[link]] without the bang is a reference, not an embed.
	if got := Scan("see [[Other Note]] for details"); len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestScan_DuplicatesKept(t *testing.T) {
	embeds := Scan("![[a.png]] and again ![[a.png]]")
	if len(embeds) != 2 {
		t.Fatalf("len = %d, want 2 (no dedup)", len(embeds))
	}
}

func TestScan_TargetTrimmed(t *testing.T) {
	embeds := Scan("![[ padded.png ]]")
	if len(embeds) != 1 || embeds[0].Target != "padded.png" {
		t.Errorf("embeds = %v", embeds)
	}
}

func TestScan_EmptyTargetSkipped(t *testing.T) {
	if got := Scan("![[ ]] and ![[|alias only]]"); len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestScan_OrderPreserved(t *testing.T) {
	text := "![[z.png]] ![[a.png]] ![[m.png]]"
	embeds := Scan(text)
	want := []string{"z.png", "a.png", "m.png"}
	if len(embeds) != len(want) {
		t.Fatalf("len = %d, want %d", len(embeds), len(want))
	}
	for i, w := range want {
		if embeds[i].Target != w {
			t.Errorf("target[%d] = %q, want %q", i, embeds[i].Target, w)
		}
	}
}
