// Package overlay merges sparse locale overrides onto canonical content.
//
// Every function here is pure: canonical values are never modified, and a
// missing or empty override yields the canonical value. Results may share
// unpatched backing arrays with their inputs and must be treated as
// read-only, like the store they come from.
package overlay

import (
	"github.com/conneroisu/lectern/internal/content"
)

// Patch is a partial value that knows how to apply itself to T.
type Patch[T any] interface {
	Apply(T) T
	IsEmpty() bool
}

// ResolveBlocks returns the effective block sequence. The result has the
// same length and variant order as canonical. Override indices outside the
// canonical range are never read.
func ResolveBlocks(canonical []content.Block, overrides map[int]content.BlockPatch) []content.Block {
	if canonical == nil {
		return nil
	}
	if len(overrides) == 0 {
		return canonical
	}

	out := make([]content.Block, len(canonical))
	for i, b := range canonical {
		if p, ok := overrides[i]; ok && !p.IsEmpty() {
			out[i] = p.Apply(b)
			continue
		}
		out[i] = b
	}
	return out
}

// ResolveList merges patches onto canonical index by index. Canonical
// elements without a patch pass through; patches beyond the canonical
// length are ignored.
func ResolveList[T any, P Patch[T]](canonical []T, patches []P) []T {
	if canonical == nil {
		return nil
	}
	if len(patches) == 0 {
		return canonical
	}

	out := make([]T, len(canonical))
	for i, item := range canonical {
		if i < len(patches) && !patches[i].IsEmpty() {
			out[i] = patches[i].Apply(item)
			continue
		}
		out[i] = item
	}
	return out
}

// ResolveToc replaces labels by stable id, for top-level entries and their
// children alike.
func ResolveToc(toc []content.TocItem, labels map[string]string) []content.TocItem {
	if toc == nil {
		return nil
	}
	if len(labels) == 0 {
		return toc
	}

	out := make([]content.TocItem, len(toc))
	for i, item := range toc {
		if label, ok := labels[item.ID]; ok {
			item.Label = label
		}
		if item.Children != nil {
			children := make([]content.TocChild, len(item.Children))
			for j, child := range item.Children {
				if label, ok := labels[child.ID]; ok {
					child.Label = label
				}
				children[j] = child
			}
			item.Children = children
		}
		out[i] = item
	}
	return out
}

// ResolveDocument returns doc with the override applied to its title, table
// of contents and blocks.
func ResolveDocument(doc content.Document, override content.DocumentOverride) content.Document {
	if override.IsEmpty() {
		return doc
	}
	if override.Title != nil {
		doc.Title = *override.Title
	}
	doc.Toc = ResolveToc(doc.Toc, override.Toc)
	doc.Blocks = ResolveBlocks(doc.Blocks, override.Blocks)
	return doc
}
