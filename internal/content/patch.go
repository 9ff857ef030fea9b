package content

// BlockPatch is a partial block carrying replacement values for the
// translatable fields of a block. A nil field is absent.
type BlockPatch struct {
	Text               *string  `yaml:"text,omitempty" json:"text,omitempty"`
	Content            *string  `yaml:"content,omitempty" json:"content,omitempty"`
	Alt                *string  `yaml:"alt,omitempty" json:"alt,omitempty"`
	Comment            *string  `yaml:"comment,omitempty" json:"comment,omitempty"`
	Items              []string `yaml:"items,omitempty" json:"items,omitempty"`
	Paragraphs         []string `yaml:"paragraphs,omitempty" json:"paragraphs,omitempty"`
	Steps              []string `yaml:"steps,omitempty" json:"steps,omitempty"`
	ParagraphAfterCode *string  `yaml:"paragraphAfterCode,omitempty" json:"paragraphAfterCode,omitempty"`
}

// patchable maps each variant to the patch fields it understands.
var patchable = map[Kind][]string{
	KindHeading:   {"text"},
	KindParagraph: {"text"},
	KindStepTitle: {"text"},
	KindInfoBox:   {"content"},
	KindCode:      {"comment"},
	KindImage:     {"alt"},
	KindList:      {"items"},
	KindSolution:  {"paragraphs", "steps", "paragraphAfterCode"},
}

// Fields returns the names of the fields present on the patch.
func (p BlockPatch) Fields() []string {
	var fields []string
	if p.Text != nil {
		fields = append(fields, "text")
	}
	if p.Content != nil {
		fields = append(fields, "content")
	}
	if p.Alt != nil {
		fields = append(fields, "alt")
	}
	if p.Comment != nil {
		fields = append(fields, "comment")
	}
	if p.Items != nil {
		fields = append(fields, "items")
	}
	if p.Paragraphs != nil {
		fields = append(fields, "paragraphs")
	}
	if p.Steps != nil {
		fields = append(fields, "steps")
	}
	if p.ParagraphAfterCode != nil {
		fields = append(fields, "paragraphAfterCode")
	}
	return fields
}

// IsEmpty reports whether the patch carries no field at all.
func (p BlockPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Inapplicable returns the present fields that variant k does not have.
func (p BlockPatch) Inapplicable(k Kind) []string {
	allowed := patchable[k]
	var out []string
	for _, f := range p.Fields() {
		if !contains(allowed, f) {
			out = append(out, f)
		}
	}
	return out
}

// Apply returns b with the patch fields that exist on its variant replaced.
// The variant never changes and b is not modified.
func (p BlockPatch) Apply(b Block) Block {
	switch v := b.(type) {
	case Heading:
		v.Text = pick(p.Text, v.Text)
		return v
	case Paragraph:
		v.Text = pick(p.Text, v.Text)
		return v
	case StepTitle:
		v.Text = pick(p.Text, v.Text)
		return v
	case InfoBox:
		v.Content = pick(p.Content, v.Content)
		return v
	case Code:
		v.Comment = pick(p.Comment, v.Comment)
		return v
	case Image:
		v.Alt = pick(p.Alt, v.Alt)
		return v
	case List:
		if p.Items != nil {
			v.Items = p.Items
		}
		return v
	case Solution:
		if p.Paragraphs != nil {
			v.Paragraphs = p.Paragraphs
		}
		if p.Steps != nil {
			v.Steps = p.Steps
		}
		v.ParagraphAfterCode = pick(p.ParagraphAfterCode, v.ParagraphAfterCode)
		return v
	default:
		return b
	}
}

func pick(override *string, canonical string) string {
	if override != nil {
		return *override
	}
	return canonical
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
