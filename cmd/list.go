package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"

	"github.com/conneroisu/lectern/internal/catalog"
	"github.com/conneroisu/lectern/internal/locale"
	"github.com/conneroisu/lectern/internal/messages"
)

// Sections accepted by list.
const (
	SectionDocs       = "docs"
	SectionKotlin     = "kotlin"
	SectionReact      = "react"
	SectionCategories = "categories"
)

var listSections = []string{SectionDocs, SectionKotlin, SectionReact, SectionCategories}

var listCmd = &cobra.Command{
	Use:     "list [docs|kotlin|react|categories]",
	Aliases: []string{"l"},
	Short:   "List documents, course lessons and blog categories",
	Long: `List the catalog with titles resolved for the given locale. Without an
argument every section is listed.

Examples:
  lectern list                       # Everything, in English
  lectern list kotlin --locale es    # The Kotlin course in Spanish
  lectern list docs -f json          # Documents as JSON`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: listSections,
	RunE:      runList,
}

var listFlags *StandardFlags

func init() {
	rootCmd.AddCommand(listCmd)
	listFlags = AddStandardFlags(listCmd, "locale", "output")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := listFlags.ParsedLocale()
	if err != nil {
		return err
	}

	s, err := loadStore(cfg)
	if err != nil {
		return err
	}

	sections := listSections
	if len(args) == 1 {
		sections = []string{strings.ToLower(args[0])}
	}
	return list(cmd.OutOrStdout(), catalog.New(catalog.Fixed(s)), messages.MustNew(logger), sections, l, listFlags.Format)
}

// listing is the structured form of list output.
type listing struct {
	Section string      `json:"section" yaml:"section"`
	Title   string      `json:"title" yaml:"title"`
	Items   []listEntry `json:"items" yaml:"items"`
}

type listEntry struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Info  string `json:"info,omitempty" yaml:"info,omitempty"`
}

func list(w io.Writer, svc *catalog.Service, msgs *messages.Catalog, sections []string, l locale.Locale, format string) error {
	listings := make([]listing, 0, len(sections))
	for _, section := range sections {
		entry, err := buildListing(svc, msgs, section, l)
		if err != nil {
			return err
		}
		listings = append(listings, entry)
	}

	var rows []row
	title := cases.Title(l.Tag())
	for i, entry := range listings {
		if i > 0 {
			rows = append(rows, row{"", ""})
		}
		rows = append(rows, row{title.String(entry.Title), entry.count(msgs, l)})
		for _, item := range entry.Items {
			rows = append(rows, row{"  " + item.ID, strings.TrimSpace(item.Title + "  " + item.Info)})
		}
	}
	return writeValue(w, format, listings, rows)
}

// count describes the size of the listing, in lessons for the courses.
func (entry listing) count(msgs *messages.Catalog, l locale.Locale) string {
	if entry.Section == SectionKotlin || entry.Section == SectionReact {
		return msgs.TranslateWithCount(l, messages.LessonCount, nil, len(entry.Items))
	}
	return strconv.Itoa(len(entry.Items))
}

func buildListing(svc *catalog.Service, msgs *messages.Catalog, section string, l locale.Locale) (listing, error) {
	switch section {
	case SectionDocs:
		docs, err := svc.Documents(l)
		if err != nil {
			return listing{}, err
		}
		out := listing{Section: section, Title: msgs.Translate(l, messages.Documentation)}
		for _, doc := range docs {
			out.Items = append(out.Items, listEntry{ID: doc.ID, Title: doc.Title, Info: fmt.Sprintf("(%d)", doc.Blocks)})
		}
		return out, nil
	case SectionKotlin:
		lessons, err := svc.KotlinCourse(l)
		if err != nil {
			return listing{}, err
		}
		out := listing{Section: section, Title: msgs.Translate(l, messages.KotlinCourse)}
		for _, lesson := range lessons {
			out.Items = append(out.Items, listEntry{ID: lesson.ID, Title: lesson.Title, Info: "#" + strconv.Itoa(lesson.Step)})
		}
		return out, nil
	case SectionReact:
		lessons, err := svc.WebCourse(l)
		if err != nil {
			return listing{}, err
		}
		out := listing{Section: section, Title: msgs.Translate(l, messages.ReactCourse)}
		for _, lesson := range lessons {
			out.Items = append(out.Items, listEntry{ID: lesson.ID, Title: lesson.Title, Info: "#" + strconv.Itoa(lesson.Step)})
		}
		return out, nil
	case SectionCategories:
		categories, err := svc.Categories(l)
		if err != nil {
			return listing{}, err
		}
		out := listing{Section: section, Title: msgs.Translate(l, messages.BlogCategories)}
		for _, c := range categories {
			out.Items = append(out.Items, listEntry{ID: c.Slug, Title: c.Title, Info: fmt.Sprintf("(%d)", len(c.Posts))})
		}
		return out, nil
	default:
		return listing{}, fmt.Errorf("unknown section %q, must be one of: %s", section, strings.Join(listSections, ", "))
	}
}
