// Package rawdoc is the unprocessed documentation model: entries as they come
// out of annotated source comments, each carrying raw token streams.
package rawdoc

// ItemType tags a body item.
type ItemType string

const (
	ItemParagraph ItemType = "paragraph"
	ItemSection   ItemType = "section"
	ItemCode      ItemType = "code"
	ItemInclude   ItemType = "include"
	ItemSnippet   ItemType = "snippet"
)

// Item is one element of an entry body. Which fields are meaningful depends
// on Type: Text for paragraphs and code, Text+Level for sections, Path for
// includes, Path+Name for snippets.
type Item struct {
	Type  ItemType
	Text  Text
	Level int
	Path  string
	Name  string
}

// Param documents a function or macro parameter. InOut holds the bracketed
// direction tag verbatim, e.g. "[in,out]".
type Param struct {
	Name  string
	InOut string
	Text  Text
}

// TParam documents a template parameter.
type TParam struct {
	Name string
	Text Text
}

// Return documents a return value.
type Return struct {
	Type string
	Text Text
}

// Entry is a single raw documentation unit.
type Entry struct {
	Command Command
	Name    string

	Briefs []Text
	Body   []Item
	Sees   []Text

	Headerfiles     []Text
	DeprecationMsgs []Text
	Signatures      []Text
	Extends         []Text
	Implements      []Text
	TParams         []TParam
	Params          []Param
	Returns         []Return
	Type            string
	Title           Text

	// Source is the file the entry was loaded from, if any.
	Source string
}

// Kind derives the entry kind from its command and name.
func (e *Entry) Kind() Kind {
	return DeriveKind(e.Command, e.Name)
}

// Doc is the ordered set of raw entries of one documentation build.
type Doc struct {
	Entries []*Entry
}

// Append adds entries in order.
func (d *Doc) Append(entries ...*Entry) {
	d.Entries = append(d.Entries, entries...)
}
