//go:build property

package overlay

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/conneroisu/lectern/internal/content"
)

// blocksFrom builds a mixed-variant sequence from generated texts.
func blocksFrom(texts []string) []content.Block {
	blocks := make([]content.Block, len(texts))
	for i, text := range texts {
		switch i % 4 {
		case 0:
			blocks[i] = content.Paragraph{Text: text}
		case 1:
			blocks[i] = content.Code{Code: "println(\"" + text + "\")", Comment: text}
		case 2:
			blocks[i] = content.Image{Src: "/img/" + text + ".png", Alt: text}
		default:
			blocks[i] = content.Heading{Level: 2, ID: "h" + text, Text: text}
		}
	}
	return blocks
}

// patchesFrom turns generated labels into patches that touch every field a
// variant might have.
func patchesFrom(labels map[int]string) map[int]content.BlockPatch {
	out := make(map[int]content.BlockPatch, len(labels))
	for i, label := range labels {
		l := label
		out[i] = content.BlockPatch{Text: &l, Comment: &l, Alt: &l}
	}
	return out
}

// TestResolveBlocksProperties validates the structural invariants of block overlays
func TestResolveBlocksProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(4242)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("length and variant order are preserved", prop.ForAll(
		func(texts []string, labels map[int]string) bool {
			canonical := blocksFrom(texts)
			got := ResolveBlocks(canonical, patchesFrom(labels))
			if len(got) != len(canonical) {
				return false
			}
			for i := range canonical {
				if got[i].Kind() != canonical[i].Kind() {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
		gen.MapOf(gen.IntRange(-5, 40), gen.AlphaString()),
	))

	properties.Property("no overrides is identity", prop.ForAll(
		func(texts []string) bool {
			canonical := blocksFrom(texts)
			return reflect.DeepEqual(ResolveBlocks(canonical, nil), canonical)
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("resolving twice equals resolving once", prop.ForAll(
		func(texts []string, labels map[int]string) bool {
			canonical := blocksFrom(texts)
			overrides := patchesFrom(labels)
			once := ResolveBlocks(canonical, overrides)
			twice := ResolveBlocks(once, overrides)
			return reflect.DeepEqual(once, twice)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.MapOf(gen.IntRange(0, 40), gen.AlphaString()),
	))

	properties.Property("unpatched indices and code are untouched", prop.ForAll(
		func(texts []string, labels map[int]string) bool {
			canonical := blocksFrom(texts)
			got := ResolveBlocks(canonical, patchesFrom(labels))
			for i := range canonical {
				if c, ok := canonical[i].(content.Code); ok {
					if got[i].(content.Code).Code != c.Code {
						return false
					}
				}
				if img, ok := canonical[i].(content.Image); ok {
					if got[i].(content.Image).Src != img.Src {
						return false
					}
				}
				if _, patched := labels[i]; !patched && !reflect.DeepEqual(got[i], canonical[i]) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
		gen.MapOf(gen.IntRange(0, 40), gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// TestResolveListProperties validates index-wise list merging
func TestResolveListProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("patched fields come from the patch, the rest from canonical", prop.ForAll(
		func(titles []string, overrides []string) bool {
			canonical := make([]content.PracticeChallenge, len(titles))
			for i, title := range titles {
				canonical[i] = content.PracticeChallenge{ID: title, Title: title, Description: "d" + title}
			}
			patches := make([]content.PracticePatch, len(overrides))
			for i := range overrides {
				patches[i] = content.PracticePatch{Title: &overrides[i]}
			}

			got := ResolveList(canonical, patches)
			if len(got) != len(canonical) {
				return false
			}
			for i := range canonical {
				want := canonical[i].Title
				if i < len(overrides) {
					want = overrides[i]
				}
				if got[i].Title != want || got[i].Description != canonical[i].Description || got[i].ID != canonical[i].ID {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
