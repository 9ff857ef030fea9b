package content

// TocChild is a second-level table-of-contents entry.
type TocChild struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// TocItem is a top-level table-of-contents entry. The tree is at most two
// levels deep.
type TocItem struct {
	ID       string     `yaml:"id" json:"id"`
	Label    string     `yaml:"label" json:"label"`
	Children []TocChild `yaml:"children,omitempty" json:"children,omitempty"`
}

// Document is a documentation page: a table of contents and an ordered
// sequence of blocks.
type Document struct {
	ID     string
	Title  string
	Toc    []TocItem
	Blocks []Block
}

// TocIDs returns every id of the table of contents in depth-first order.
func (d Document) TocIDs() []string {
	var ids []string
	for _, item := range d.Toc {
		ids = append(ids, item.ID)
		for _, child := range item.Children {
			ids = append(ids, child.ID)
		}
	}
	return ids
}

// DocumentOverride holds the locale-specific replacements for a document.
// Toc is keyed by entry id, Blocks by position in the canonical sequence.
type DocumentOverride struct {
	Title  *string            `yaml:"title,omitempty" json:"title,omitempty"`
	Toc    map[string]string  `yaml:"toc,omitempty" json:"toc,omitempty"`
	Blocks map[int]BlockPatch `yaml:"blocks,omitempty" json:"blocks,omitempty"`
}

// IsEmpty reports whether the override replaces nothing.
func (o DocumentOverride) IsEmpty() bool {
	return o.Title == nil && len(o.Toc) == 0 && len(o.Blocks) == 0
}
