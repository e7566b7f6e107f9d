package procdoc

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/dox/internal/doctree"
)

// LinkScheme prefixes hrefs that point at documentation entries.
const LinkScheme = "seqan:"

// UnresolvedLink is a link whose target is not a registered entry.
type UnresolvedLink struct {
	From   string `json:"from"`
	Target string `json:"target"`
}

// CheckLinks returns every entry link in the document whose target is not
// registered, sorted by source entry and target. Each pair is reported once.
func (d *Doc) CheckLinks() []UnresolvedLink {
	seen := make(map[UnresolvedLink]bool)
	var out []UnresolvedLink
	d.Walk(func(e *Entry, n *doctree.Node) bool {
		target, ok := linkTarget(n)
		if !ok {
			return true
		}
		if _, found := d.Entries[target]; found {
			return true
		}
		l := UnresolvedLink{From: e.Name, Target: target}
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].Target < out[j].Target
	})
	return out
}

func linkTarget(n *doctree.Node) (string, bool) {
	if n.Type != "a" {
		return "", false
	}
	href := html.UnescapeString(n.Attr("href"))
	if !strings.HasPrefix(href, LinkScheme) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(href, LinkScheme)), true
}
