package scrape

import (
	"strings"
	"testing"
)

const base = "https://www.itu.int/"

func TestLinks_DocumentOrder(t *testing.T) {
	page := `<html><body><table>
<tr><td><a href="a/one.zip">one</a></td></tr>
<tr><td><a href="a/two.zip">two</a></td></tr>
<tr><td><a href="a/three.zip">three</a></td></tr>
</table></body></html>`

	got := Links(base, strings.NewReader(page))
	want := []string{base + "a/one.zip", base + "a/two.zip", base + "a/three.zip"}
	if len(got) != len(want) {
		t.Fatalf("got %d links, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("links[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLinks_KeepsDuplicates(t *testing.T) {
	page := `<a href="x.zip">x</a><a href="x.zip">x again</a>`
	got := Links(base, strings.NewReader(page))
	if len(got) != 2 {
		t.Fatalf("got %d links, want 2", len(got))
	}
}

func TestLinks_SkipsAnchorsWithoutHref(t *testing.T) {
	page := `<a name="top">anchor</a><a href="y.zip">y</a>`
	got := Links(base, strings.NewReader(page))
	if len(got) != 1 || got[0] != base+"y.zip" {
		t.Fatalf("links = %v", got)
	}
}

func TestLinks_ToleratesMalformedMarkup(t *testing.T) {
	page := `<table><tr><td><a href="one.zip">one</td>
<a href="two.zip"><b>two</a></i>
< broken <<>
<a href="three.zip">three</a>`

	got := Links(base, strings.NewReader(page))
	if len(got) != 3 {
		t.Fatalf("got %d links from malformed markup, want 3: %v", len(got), got)
	}
}

func TestLinks_EmptyDocument(t *testing.T) {
	if got := Links(base, strings.NewReader("")); len(got) != 0 {
		t.Fatalf("links = %v, want none", got)
	}
}
