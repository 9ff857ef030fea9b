package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/lectern/internal/catalog"
	"github.com/conneroisu/lectern/internal/content"
	"github.com/conneroisu/lectern/internal/locale"
)

// Kinds accepted by show.
const (
	KindDoc      = "doc"
	KindKotlin   = "kotlin"
	KindReact    = "react"
	KindBlog     = "blog"
	KindCategory = "category"
)

var showKinds = []string{KindDoc, KindKotlin, KindReact, KindBlog, KindCategory}

var showCmd = &cobra.Command{
	Use:     "show <doc|kotlin|react|blog|category> <id>",
	Aliases: []string{"sh"},
	Short:   "Print one resolved document, lesson, blog post or category",
	Long: `Print the content a reader of the given locale sees: the English record
with the locale's translations merged in. Untranslated fields fall back to
English.

Examples:
  lectern show doc coroutines-basics --locale es
  lectern show kotlin hello-world --locale es -f yaml
  lectern show category cloud-infrastructure --format json`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: showKinds,
	RunE:      runShow,
}

var showFlags *StandardFlags

func init() {
	rootCmd.AddCommand(showCmd)
	showFlags = AddStandardFlags(showCmd, "locale", "output")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := showFlags.ParsedLocale()
	if err != nil {
		return err
	}

	s, err := loadStore(cfg)
	if err != nil {
		return err
	}
	return show(cmd.OutOrStdout(), catalog.New(catalog.Fixed(s)), args[0], args[1], l, showFlags.Format)
}

// show resolves the record of kind named id for l and prints it.
func show(w io.Writer, svc *catalog.Service, kind, id string, l locale.Locale, format string) error {
	switch strings.ToLower(kind) {
	case KindDoc:
		doc, err := svc.Document(l, id)
		if err != nil {
			return err
		}
		return writeValue(w, format, doc, documentRows(doc))
	case KindKotlin:
		lesson, err := svc.KotlinLesson(l, id)
		if err != nil {
			return err
		}
		return writeValue(w, format, lesson, kotlinRows(lesson))
	case KindReact:
		lesson, err := svc.WebLesson(l, id)
		if err != nil {
			return err
		}
		return writeValue(w, format, lesson, webRows(lesson))
	case KindBlog:
		post, err := svc.BlogPost(l, id)
		if err != nil {
			return err
		}
		return writeValue(w, format, post, blogRows(id, post))
	case KindCategory:
		c, err := svc.Category(l, id)
		if err != nil {
			return err
		}
		return writeValue(w, format, c, categoryRows(c))
	default:
		return fmt.Errorf("unknown kind %q, must be one of: %s", kind, strings.Join(showKinds, ", "))
	}
}

func documentRows(doc content.Document) []row {
	rows := []row{{"ID", doc.ID}, {"Title", doc.Title}, {"Blocks", strconv.Itoa(len(doc.Blocks))}}
	for _, item := range doc.Toc {
		rows = append(rows, row{"#" + item.ID, item.Label})
		for _, child := range item.Children {
			rows = append(rows, row{"  #" + child.ID, child.Label})
		}
	}
	for i, block := range doc.Blocks {
		rows = append(rows, row{fmt.Sprintf("[%d] %s", i, block.Kind()), truncate(blockText(block), 72)})
	}
	return rows
}

// blockText is the prose a reader sees for block, used in table output.
func blockText(block content.Block) string {
	switch b := block.(type) {
	case content.Heading:
		return b.Text
	case content.Paragraph:
		return b.Text
	case content.StepTitle:
		return b.Text
	case content.InfoBox:
		return b.Content
	case content.Code:
		return b.Comment
	case content.Image:
		return b.Alt
	case content.List:
		return strings.Join(b.Items, "; ")
	case content.Solution:
		return strings.Join(b.Paragraphs, " ")
	default:
		return ""
	}
}

func kotlinRows(lesson content.KotlinLesson) []row {
	rows := []row{
		{"ID", lesson.ID},
		{"Step", strconv.Itoa(lesson.Step)},
		{"Title", lesson.Title},
		{"Previous", lesson.PrevStep},
		{"Next", lesson.NextStep},
	}
	for i, p := range lesson.Content {
		rows = append(rows, row{fmt.Sprintf("Content[%d]", i), truncate(p, 72)})
	}
	for _, p := range lesson.Practice {
		rows = append(rows, row{"Practice " + p.ID, p.Title})
	}
	return rows
}

func webRows(lesson content.WebLesson) []row {
	rows := []row{
		{"ID", lesson.ID},
		{"Step", strconv.Itoa(lesson.Step)},
		{"Title", lesson.Title},
		{"Previous", lesson.PrevStep},
		{"Next", lesson.NextStep},
	}
	for i, p := range lesson.Content {
		rows = append(rows, row{fmt.Sprintf("Content[%d]", i), truncate(p, 72)})
	}
	for _, s := range lesson.Sections {
		rows = append(rows, row{"Section " + string(s.Tag), s.Title})
	}
	return rows
}

func blogRows(id string, post content.BlogPostContent) []row {
	return []row{
		{"ID", id},
		{"Title", post.Title},
		{"Subtitle", truncate(post.Subtitle, 72)},
		{"Breadcrumb", post.BreadcrumbLabel},
	}
}

func categoryRows(c content.Category) []row {
	rows := []row{{"Slug", c.Slug}, {"Title", c.Title}, {"Description", truncate(c.Description, 72)}}
	for _, post := range c.Posts {
		rows = append(rows, row{"Post " + post.ID, post.Title})
	}
	return rows
}
