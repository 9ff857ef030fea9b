// Package renderer turns resolved documents and lessons into HTML preview
// pages built from templ components.
//
// Every value coming from the catalog is escaped. Code samples are emitted
// exactly as stored, inside <pre><code>, and image sources pass through
// templ's URL sanitizer.
package renderer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/conneroisu/lectern/internal/content"
	"github.com/conneroisu/lectern/internal/locale"
	"github.com/conneroisu/lectern/internal/messages"
)

// Section prefixes of the preview pages
const (
	DocsPath   = "/developer-section/docs/"
	KotlinPath = "/developer-section/kotlin-course/"
	ReactPath  = "/developer-section/react-course/"
)

const (
	kotlin = "kotlin"
	jsx    = "jsx"
)

// Renderer builds preview components for one set of UI messages
type Renderer struct {
	messages   *messages.Catalog
	liveReload bool
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLiveReload adds the websocket reload script to every page.
func WithLiveReload(enabled bool) Option {
	return func(r *Renderer) {
		r.liveReload = enabled
	}
}

// New creates a renderer translating interface labels with m.
func New(m *messages.Catalog, opts ...Option) *Renderer {
	r := &Renderer{messages: m}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderString renders c into a string.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DocumentPage renders a documentation page with its table of contents.
func (r *Renderer) DocumentPage(l locale.Locale, doc content.Document) templ.Component {
	return r.Page(l, doc.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.printf(`<article class="document" id="%s">`, esc(doc.ID))
		ew.printf(`<h1>%s</h1>`, esc(doc.Title))
		if ew.err != nil {
			return ew.err
		}
		if err := r.Toc(l, doc.Toc).Render(ctx, w); err != nil {
			return err
		}
		for i, block := range doc.Blocks {
			if err := Block(i, block).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</article>`)
		return err
	}))
}

// Toc renders the table of contents as nested anchor lists.
func (r *Renderer) Toc(l locale.Locale, toc []content.TocItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(toc) == 0 {
			return nil
		}
		ew := &errWriter{w: w}
		ew.printf(`<nav class="toc" aria-label="%s"><ul>`, esc(r.label(l, messages.TableOfContents)))
		for _, item := range toc {
			ew.printf(`<li><a href="%s">%s</a>`, anchor(item.ID), esc(item.Label))
			if len(item.Children) > 0 {
				ew.print(`<ul>`)
				for _, child := range item.Children {
					ew.printf(`<li><a href="%s">%s</a></li>`, anchor(child.ID), esc(child.Label))
				}
				ew.print(`</ul>`)
			}
			ew.print(`</li>`)
		}
		ew.print(`</ul></nav>`)
		return ew.err
	})
}

// Block renders one content block. index is exposed as data-index so a
// rendered page can be matched against its override table.
func Block(index int, block content.Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.printf(`<div class="block block-%s" data-index="%d">`, esc(string(block.Kind())), index)

		switch b := block.(type) {
		case content.Heading:
			level := b.Level
			if level < 1 || level > 6 {
				level = 2
			}
			ew.printf(`<h%d id="%s">%s</h%d>`, level, esc(b.ID), esc(b.Text), level)
		case content.Paragraph:
			ew.printf(`<p>%s</p>`, esc(b.Text))
		case content.StepTitle:
			ew.printf(`<h3 class="step"><span class="step-number">%d</span> %s</h3>`, b.Number, esc(b.Text))
		case content.InfoBox:
			ew.printf(`<aside class="info info-%s">%s</aside>`, esc(b.Variant), esc(b.Content))
		case content.Code:
			codeBlock(ew, kotlin, b.Code, b.ShowPlay, b.Comment)
		case content.Image:
			ew.printf(`<img src="%s" alt="%s">`, esc(string(templ.URL(b.Src))), esc(b.Alt))
		case content.List:
			list(ew, b.Items)
		case content.Solution:
			ew.printf(`<details class="solution" id="%s"><summary>%d</summary>`, esc(b.ID), b.TaskNumber)
			for _, p := range b.Paragraphs {
				ew.printf(`<p>%s</p>`, esc(p))
			}
			if len(b.Steps) > 0 {
				ew.print(`<ol>`)
				for _, step := range b.Steps {
					ew.printf(`<li>%s</li>`, esc(step))
				}
				ew.print(`</ol>`)
			}
			if b.Code != "" {
				codeBlock(ew, kotlin, b.Code, b.CodeShowPlay, "")
			}
			if b.ParagraphAfterCode != "" {
				ew.printf(`<p>%s</p>`, esc(b.ParagraphAfterCode))
			}
			ew.print(`</details>`)
		default:
			return fmt.Errorf("unknown block kind %q", block.Kind())
		}

		ew.print(`</div>`)
		return ew.err
	})
}

// KotlinLessonPage renders a Kotlin course lesson.
func (r *Renderer) KotlinLessonPage(l locale.Locale, lesson content.KotlinLesson) templ.Component {
	return r.Page(l, lesson.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.printf(`<article class="lesson kotlin" id="%s">`, esc(lesson.ID))
		r.lessonHeader(ew, l, lesson.Step, lesson.Title)
		for _, p := range lesson.Content {
			ew.printf(`<p>%s</p>`, esc(p))
		}
		r.codeExamples(ew, l, kotlin, lesson.CodeExamples)

		if len(lesson.Practice) > 0 {
			ew.printf(`<section class="practice"><h2>%s</h2>`, esc(r.label(l, messages.Practice)))
			for _, challenge := range lesson.Practice {
				ew.printf(`<div class="challenge" id="%s"><h3>%s</h3><p>%s</p>`,
					esc(challenge.ID), esc(challenge.Title), esc(challenge.Description))
				if challenge.Hint != "" {
					ew.printf(`<p class="hint"><strong>%s:</strong> %s</p>`, esc(r.label(l, messages.Hint)), esc(challenge.Hint))
				}
				codeBlock(ew, kotlin, challenge.StarterCode, true, "")
				ew.print(`</div>`)
			}
			ew.print(`</section>`)
		}

		codeBlock(ew, kotlin, lesson.DefaultCode, true, "")
		r.pager(ew, l, KotlinPath, lesson.PrevStep, lesson.NextStep)
		ew.print(`</article>`)
		return ew.err
	}))
}

// WebLessonPage renders a React course lesson.
func (r *Renderer) WebLessonPage(l locale.Locale, lesson content.WebLesson) templ.Component {
	return r.Page(l, lesson.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.printf(`<article class="lesson react" id="%s">`, esc(lesson.ID))
		r.lessonHeader(ew, l, lesson.Step, lesson.Title)
		for _, p := range lesson.Content {
			ew.printf(`<p>%s</p>`, esc(p))
		}

		for _, section := range lesson.Sections {
			ew.printf(`<section class="section section-%s">`, esc(string(section.Tag)))
			if section.Title != "" {
				ew.printf(`<h2>%s</h2>`, esc(section.Title))
			}
			ew.printf(`<p>%s</p>`, esc(section.Body))
			if section.Code != "" {
				codeBlock(ew, jsx, section.Code, false, "")
			}
			if len(section.Badges) > 0 {
				ew.print(`<ul class="badges">`)
				for _, badge := range section.Badges {
					ew.printf(`<li>%s</li>`, esc(badge))
				}
				ew.print(`</ul>`)
			}
			ew.print(`</section>`)
		}

		r.codeExamples(ew, l, jsx, lesson.CodeExamples)
		codeBlock(ew, jsx, lesson.DefaultCode, true, "")
		r.pager(ew, l, ReactPath, lesson.PrevStep, lesson.NextStep)
		ew.print(`</article>`)
		return ew.err
	}))
}

func (r *Renderer) lessonHeader(ew *errWriter, l locale.Locale, step int, title string) {
	ew.printf(`<header><p class="step">%s</p><h1>%s</h1></header>`,
		esc(r.labelWith(l, messages.LessonStep, map[string]any{"Step": step})), esc(title))
}

func (r *Renderer) codeExamples(ew *errWriter, l locale.Locale, language string, examples []content.CodeExample) {
	if len(examples) == 0 {
		return
	}
	ew.printf(`<section class="examples"><h2>%s</h2>`, esc(r.label(l, messages.CodeExamples)))
	for _, example := range examples {
		codeBlock(ew, language, example.Code, false, example.Comment)
	}
	ew.print(`</section>`)
}

func (r *Renderer) pager(ew *errWriter, l locale.Locale, section, prev, next string) {
	if prev == "" && next == "" {
		return
	}
	ew.print(`<nav class="pager">`)
	if prev != "" {
		ew.printf(`<a rel="prev" href="%s">%s</a>`,
			esc(locale.WithPrefix(section+prev, l)), esc(r.label(l, messages.Previous)))
	}
	if next != "" {
		ew.printf(`<a rel="next" href="%s">%s</a>`,
			esc(locale.WithPrefix(section+next, l)), esc(r.label(l, messages.Next)))
	}
	ew.print(`</nav>`)
}

func (r *Renderer) label(l locale.Locale, id string) string {
	if r.messages == nil {
		return id
	}
	return r.messages.Translate(l, id)
}

func (r *Renderer) labelWith(l locale.Locale, id string, vars map[string]any) string {
	if r.messages == nil {
		return id
	}
	return r.messages.TranslateWithMap(l, id, vars)
}

func codeBlock(ew *errWriter, language, code string, showPlay bool, comment string) {
	ew.printf(`<figure class="code" data-play="%s">`, strconv.FormatBool(showPlay))
	ew.printf(`<pre><code class="language-%s">%s</code></pre>`, language, esc(code))
	if comment != "" {
		ew.printf(`<figcaption>%s</figcaption>`, esc(comment))
	}
	ew.print(`</figure>`)
}

func list(ew *errWriter, items []string) {
	ew.print(`<ul>`)
	for _, item := range items {
		ew.printf(`<li>%s</li>`, esc(item))
	}
	ew.print(`</ul>`)
}

func anchor(id string) string {
	return esc(string(templ.URL("#" + id)))
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// errWriter keeps the first write error so markup can be emitted without
// checking every call.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
