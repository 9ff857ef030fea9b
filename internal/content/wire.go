package content

import (
	"encoding/json"
	"fmt"
)

// Wire is the flattened serialized form of a Block. Type selects the
// variant; the remaining fields are read according to it.
type Wire struct {
	Type               Kind     `yaml:"type" json:"type"`
	Level              int      `yaml:"level,omitempty" json:"level,omitempty"`
	ID                 string   `yaml:"id,omitempty" json:"id,omitempty"`
	Text               string   `yaml:"text,omitempty" json:"text,omitempty"`
	Number             int      `yaml:"number,omitempty" json:"number,omitempty"`
	Variant            string   `yaml:"variant,omitempty" json:"variant,omitempty"`
	Content            string   `yaml:"content,omitempty" json:"content,omitempty"`
	Code               string   `yaml:"code,omitempty" json:"code,omitempty"`
	ShowPlay           bool     `yaml:"showPlay,omitempty" json:"showPlay,omitempty"`
	Comment            string   `yaml:"comment,omitempty" json:"comment,omitempty"`
	Src                string   `yaml:"src,omitempty" json:"src,omitempty"`
	Alt                string   `yaml:"alt,omitempty" json:"alt,omitempty"`
	Items              []string `yaml:"items,omitempty" json:"items,omitempty"`
	TaskNumber         int      `yaml:"taskNumber,omitempty" json:"taskNumber,omitempty"`
	Paragraphs         []string `yaml:"paragraphs,omitempty" json:"paragraphs,omitempty"`
	Steps              []string `yaml:"steps,omitempty" json:"steps,omitempty"`
	CodeShowPlay       bool     `yaml:"codeShowPlay,omitempty" json:"codeShowPlay,omitempty"`
	ParagraphAfterCode string   `yaml:"paragraphAfterCode,omitempty" json:"paragraphAfterCode,omitempty"`
}

// ToWire flattens b.
func ToWire(b Block) Wire {
	switch v := b.(type) {
	case Heading:
		return Wire{Type: KindHeading, Level: v.Level, ID: v.ID, Text: v.Text}
	case Paragraph:
		return Wire{Type: KindParagraph, Text: v.Text}
	case StepTitle:
		return Wire{Type: KindStepTitle, Number: v.Number, Text: v.Text}
	case InfoBox:
		return Wire{Type: KindInfoBox, Variant: v.Variant, Content: v.Content}
	case Code:
		return Wire{Type: KindCode, Code: v.Code, ShowPlay: v.ShowPlay, Comment: v.Comment}
	case Image:
		return Wire{Type: KindImage, Src: v.Src, Alt: v.Alt}
	case List:
		return Wire{Type: KindList, Items: v.Items}
	case Solution:
		return Wire{
			Type:               KindSolution,
			TaskNumber:         v.TaskNumber,
			ID:                 v.ID,
			Paragraphs:         v.Paragraphs,
			Steps:              v.Steps,
			Code:               v.Code,
			CodeShowPlay:       v.CodeShowPlay,
			ParagraphAfterCode: v.ParagraphAfterCode,
		}
	default:
		return Wire{}
	}
}

// Block converts w back into its variant.
func (w Wire) Block() (Block, error) {
	switch w.Type {
	case KindHeading:
		if w.Level < 1 || w.Level > 6 {
			return nil, fmt.Errorf("heading level %d out of range", w.Level)
		}
		return Heading{Level: w.Level, ID: w.ID, Text: w.Text}, nil
	case KindParagraph:
		return Paragraph{Text: w.Text}, nil
	case KindStepTitle:
		return StepTitle{Number: w.Number, Text: w.Text}, nil
	case KindInfoBox:
		if w.Variant != "green" && w.Variant != "gray" {
			return nil, fmt.Errorf("infoBox variant %q must be green or gray", w.Variant)
		}
		return InfoBox{Variant: w.Variant, Content: w.Content}, nil
	case KindCode:
		return Code{Code: w.Code, ShowPlay: w.ShowPlay, Comment: w.Comment}, nil
	case KindImage:
		if w.Src == "" {
			return nil, fmt.Errorf("image without src")
		}
		return Image{Src: w.Src, Alt: w.Alt}, nil
	case KindList:
		return List{Items: w.Items}, nil
	case KindSolution:
		return Solution{
			TaskNumber:         w.TaskNumber,
			ID:                 w.ID,
			Paragraphs:         w.Paragraphs,
			Steps:              w.Steps,
			Code:               w.Code,
			CodeShowPlay:       w.CodeShowPlay,
			ParagraphAfterCode: w.ParagraphAfterCode,
		}, nil
	case "":
		return nil, fmt.Errorf("block without type")
	default:
		return nil, fmt.Errorf("unknown block type %q", w.Type)
	}
}

// DocumentWire is the serialized form of a Document.
type DocumentWire struct {
	ID     string    `yaml:"id" json:"id"`
	Title  string    `yaml:"title" json:"title"`
	Toc    []TocItem `yaml:"toc" json:"toc"`
	Blocks []Wire    `yaml:"blocks" json:"blocks"`
}

// Wire flattens d.
func (d Document) Wire() DocumentWire {
	out := DocumentWire{ID: d.ID, Title: d.Title, Toc: d.Toc, Blocks: make([]Wire, len(d.Blocks))}
	if out.Toc == nil {
		out.Toc = []TocItem{}
	}
	for i, b := range d.Blocks {
		out.Blocks[i] = ToWire(b)
	}
	return out
}

// Document converts w back into a Document.
func (w DocumentWire) Document() (Document, error) {
	doc := Document{ID: w.ID, Title: w.Title, Toc: w.Toc, Blocks: make([]Block, len(w.Blocks))}
	for i, bw := range w.Blocks {
		b, err := bw.Block()
		if err != nil {
			return Document{}, fmt.Errorf("block %d: %w", i, err)
		}
		doc.Blocks[i] = b
	}
	return doc, nil
}

// MarshalJSON encodes the document in its wire form.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Wire())
}

// UnmarshalJSON decodes the wire form.
func (d *Document) UnmarshalJSON(data []byte) error {
	var w DocumentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	doc, err := w.Document()
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

// MarshalYAML encodes the document in its wire form.
func (d Document) MarshalYAML() (interface{}, error) {
	return d.Wire(), nil
}
