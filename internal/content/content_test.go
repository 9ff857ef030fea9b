package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func TestBlockPatch_Apply(t *testing.T) {
	tests := []struct {
		name     string
		block    Block
		patch    BlockPatch
		expected Block
	}{
		{
			name:     "heading text replaced, id kept",
			block:    Heading{Level: 2, ID: "intro", Text: "Introduction"},
			patch:    BlockPatch{Text: str("Introducción")},
			expected: Heading{Level: 2, ID: "intro", Text: "Introducción"},
		},
		{
			name:     "paragraph text replaced",
			block:    Paragraph{Text: "Hello"},
			patch:    BlockPatch{Text: str("Hola")},
			expected: Paragraph{Text: "Hola"},
		},
		{
			name:     "step title number kept",
			block:    StepTitle{Number: 3, Text: "Run it"},
			patch:    BlockPatch{Text: str("Ejecútalo")},
			expected: StepTitle{Number: 3, Text: "Ejecútalo"},
		},
		{
			name:     "info box variant kept",
			block:    InfoBox{Variant: "green", Content: "Note"},
			patch:    BlockPatch{Content: str("Nota")},
			expected: InfoBox{Variant: "green", Content: "Nota"},
		},
		{
			name:     "code only comment replaced",
			block:    Code{Code: "fun main() {}", ShowPlay: true, Comment: "Entry point"},
			patch:    BlockPatch{Comment: str("Punto de entrada"), Text: str("ignored")},
			expected: Code{Code: "fun main() {}", ShowPlay: true, Comment: "Punto de entrada"},
		},
		{
			name:     "image src kept",
			block:    Image{Src: "/img/a.png", Alt: "Diagram"},
			patch:    BlockPatch{Alt: str("Diagrama")},
			expected: Image{Src: "/img/a.png", Alt: "Diagrama"},
		},
		{
			name:     "list items replaced wholesale",
			block:    List{Items: []string{"one", "two", "three"}},
			patch:    BlockPatch{Items: []string{"uno"}},
			expected: List{Items: []string{"uno"}},
		},
		{
			name: "solution prose replaced, code kept",
			block: Solution{
				TaskNumber: 1, ID: "task-1", Paragraphs: []string{"p"}, Steps: []string{"s"},
				Code: "val x = 1", CodeShowPlay: true, ParagraphAfterCode: "after",
			},
			patch: BlockPatch{Steps: []string{"paso"}, ParagraphAfterCode: str("después")},
			expected: Solution{
				TaskNumber: 1, ID: "task-1", Paragraphs: []string{"p"}, Steps: []string{"paso"},
				Code: "val x = 1", CodeShowPlay: true, ParagraphAfterCode: "después",
			},
		},
		{
			name:     "empty patch is identity",
			block:    Paragraph{Text: "same"},
			patch:    BlockPatch{},
			expected: Paragraph{Text: "same"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.patch.Apply(tt.block)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.block.Kind(), got.Kind())
		})
	}
}

func TestBlockPatch_ApplyDoesNotMutate(t *testing.T) {
	original := List{Items: []string{"a", "b"}}
	_ = BlockPatch{Items: []string{"x"}}.Apply(original)
	assert.Equal(t, []string{"a", "b"}, original.Items)
}

func TestBlockPatch_Inapplicable(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		patch    BlockPatch
		expected []string
	}{
		{"text on paragraph", KindParagraph, BlockPatch{Text: str("x")}, nil},
		{"alt on paragraph", KindParagraph, BlockPatch{Alt: str("x")}, []string{"alt"}},
		{"text on code", KindCode, BlockPatch{Text: str("x"), Comment: str("c")}, []string{"text"}},
		{"items on solution", KindSolution, BlockPatch{Items: []string{"x"}}, []string{"items"}},
		{"empty", KindImage, BlockPatch{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.patch.Inapplicable(tt.kind))
		})
	}
}

func TestBlockPatch_IsEmpty(t *testing.T) {
	assert.True(t, BlockPatch{}.IsEmpty())
	assert.False(t, BlockPatch{Items: []string{}}.IsEmpty())
	assert.False(t, BlockPatch{Text: str("")}.IsEmpty())
}

func TestLessonPatches(t *testing.T) {
	c := PracticeChallenge{ID: "p1", Title: "Sum", Description: "Add numbers", Hint: "Use +", StarterCode: "fun sum()"}
	got := PracticePatch{Title: str("Suma")}.Apply(c)
	assert.Equal(t, "Suma", got.Title)
	assert.Equal(t, "Add numbers", got.Description)
	assert.Equal(t, "fun sum()", got.StarterCode)

	s := LessonSection{Tag: TagTip, Title: "Tip", Body: "Body", Code: "<div/>"}
	gotSection := SectionPatch{Body: str("Cuerpo")}.Apply(s)
	assert.Equal(t, LessonSection{Tag: TagTip, Title: "Tip", Body: "Cuerpo", Code: "<div/>"}, gotSection)

	cat := Category{Slug: "kotlin", Title: "Kotlin", Description: "JVM", Posts: []PostSummary{{ID: "a"}}}
	gotCat := CategoryPatch{Description: str("La JVM")}.Apply(cat)
	assert.Equal(t, "Kotlin", gotCat.Title)
	assert.Equal(t, "La JVM", gotCat.Description)
	assert.Len(t, gotCat.Posts, 1)

	assert.True(t, KotlinLessonPatch{}.IsEmpty())
	assert.False(t, KotlinLessonPatch{Practice: []PracticePatch{{}}}.IsEmpty())
	assert.True(t, WebLessonPatch{}.IsEmpty())
	assert.True(t, DocumentOverride{}.IsEmpty())
}

func TestWire_RoundTrip(t *testing.T) {
	blocks := []Block{
		Heading{Level: 2, ID: "h", Text: "Title"},
		Paragraph{Text: "text"},
		StepTitle{Number: 1, Text: "step"},
		InfoBox{Variant: "gray", Content: "info"},
		Code{Code: "x", ShowPlay: true, Comment: "c"},
		Image{Src: "/a.png", Alt: "a"},
		List{Items: []string{"i"}},
		Solution{TaskNumber: 2, ID: "s", Paragraphs: []string{"p"}, Code: "y"},
	}

	for _, b := range blocks {
		t.Run(string(b.Kind()), func(t *testing.T) {
			back, err := ToWire(b).Block()
			require.NoError(t, err)
			assert.Equal(t, b, back)
		})
	}
}

func TestWire_BlockErrors(t *testing.T) {
	tests := []struct {
		name string
		wire Wire
	}{
		{"missing type", Wire{Text: "x"}},
		{"unknown type", Wire{Type: "video"}},
		{"heading level", Wire{Type: KindHeading, Level: 9}},
		{"info box variant", Wire{Type: KindInfoBox, Variant: "red"}},
		{"image without src", Wire{Type: KindImage, Alt: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.wire.Block()
			assert.Error(t, err)
		})
	}
}

func TestDocument_JSON(t *testing.T) {
	doc := Document{
		ID:    "intro",
		Title: "Intro",
		Toc:   []TocItem{{ID: "a", Label: "A", Children: []TocChild{{ID: "b", Label: "B"}}}},
		Blocks: []Block{
			Heading{Level: 1, ID: "a", Text: "A"},
			Code{Code: "print()"},
		},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	blocks := raw["blocks"].([]interface{})
	assert.Equal(t, "heading", blocks[0].(map[string]interface{})["type"])
	assert.Equal(t, "code", blocks[1].(map[string]interface{})["type"])

	var back Document
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, doc, back)
	assert.Equal(t, []string{"a", "b"}, back.TocIDs())
}

func TestIsKnownKind(t *testing.T) {
	for _, k := range Kinds {
		assert.True(t, IsKnownKind(k))
	}
	assert.False(t, IsKnownKind("video"))
}
