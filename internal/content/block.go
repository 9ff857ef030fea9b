// Package content defines the structured content served by lectern: tagged
// documentation blocks, table-of-contents trees, course lessons and blog
// records, together with the partial patch types that locale overrides are
// expressed in.
//
// Every value in this package is treated as read-only once it has been
// placed in a store. Patches never carry code, image sources, identifiers or
// variant tags, so applying one can only replace translatable prose.
package content

// Kind is the variant tag of a Block.
type Kind string

const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindStepTitle Kind = "stepTitle"
	KindInfoBox   Kind = "infoBox"
	KindCode      Kind = "code"
	KindImage     Kind = "image"
	KindList      Kind = "list"
	KindSolution  Kind = "solution"
)

// Kinds lists every known block variant.
var Kinds = []Kind{
	KindHeading, KindParagraph, KindStepTitle, KindInfoBox,
	KindCode, KindImage, KindList, KindSolution,
}

// Block is one displayable unit of a document. The concrete type is one of
// Heading, Paragraph, StepTitle, InfoBox, Code, Image, List or Solution.
type Block interface {
	Kind() Kind
	block()
}

// Heading is a section title with a deep-link anchor.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Paragraph is a run of prose.
type Paragraph struct {
	Text string
}

// StepTitle introduces a numbered step of a walkthrough.
type StepTitle struct {
	Number int
	Text   string
}

// InfoBox is a highlighted note. Variant is "green" or "gray".
type InfoBox struct {
	Variant string
	Content string
}

// Code is a code sample. The code itself is never localized.
type Code struct {
	Code     string
	ShowPlay bool
	Comment  string
}

// Image is an illustration.
type Image struct {
	Src string
	Alt string
}

// List is an unordered list of prose items.
type List struct {
	Items []string
}

// Solution is a worked answer to a numbered task.
type Solution struct {
	TaskNumber         int
	ID                 string
	Paragraphs         []string
	Steps              []string
	Code               string
	CodeShowPlay       bool
	ParagraphAfterCode string
}

func (Heading) Kind() Kind   { return KindHeading }
func (Paragraph) Kind() Kind { return KindParagraph }
func (StepTitle) Kind() Kind { return KindStepTitle }
func (InfoBox) Kind() Kind   { return KindInfoBox }
func (Code) Kind() Kind      { return KindCode }
func (Image) Kind() Kind     { return KindImage }
func (List) Kind() Kind      { return KindList }
func (Solution) Kind() Kind  { return KindSolution }

func (Heading) block()   {}
func (Paragraph) block() {}
func (StepTitle) block() {}
func (InfoBox) block()   {}
func (Code) block()      {}
func (Image) block()     {}
func (List) block()      {}
func (Solution) block()  {}

// IsKnownKind reports whether k names a block variant.
func IsKnownKind(k Kind) bool {
	for _, known := range Kinds {
		if known == k {
			return true
		}
	}
	return false
}
