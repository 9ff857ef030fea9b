package renderer

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/conneroisu/lectern/internal/catalog"
	"github.com/conneroisu/lectern/internal/content"
	"github.com/conneroisu/lectern/internal/loader"
	"github.com/conneroisu/lectern/internal/locale"
	"github.com/conneroisu/lectern/internal/messages"
)

func seedService(t *testing.T) *catalog.Service {
	t.Helper()

	s, err := loader.LoadEmbedded()
	require.NoError(t, err)
	return catalog.New(catalog.Fixed(s))
}

func parse(t *testing.T, c templ.Component) *html.Node {
	t.Helper()

	out, err := RenderString(context.Background(), c)
	require.NoError(t, err)
	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func byAttr(key, value string) func(*html.Node) bool {
	return func(n *html.Node) bool { return attr(n, key) == value }
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestDocumentPage_Spanish(t *testing.T) {
	svc := seedService(t)
	doc, err := svc.Document(locale.Spanish, "coroutines-basics")
	require.NoError(t, err)

	r := New(messages.MustNew(nil))
	root := parse(t, r.DocumentPage(locale.Spanish, doc))

	htmlEl := findAll(root, byTag("html"))
	require.Len(t, htmlEl, 1)
	assert.Equal(t, "es", attr(htmlEl[0], "lang"))

	h1 := findAll(root, byTag("h1"))
	require.Len(t, h1, 1)
	assert.Equal(t, "Conceptos básicos de corutinas", text(h1[0]))

	nav := findAll(root, byTag("nav"))
	require.Len(t, nav, 1)
	assert.Equal(t, "En esta página", attr(nav[0], "aria-label"))
	assert.Contains(t, text(nav[0]), "Funciones de suspensión")

	blocks := findAll(root, byAttr("data-index", "0"))
	require.Len(t, blocks, 1)
	heading := findAll(blocks[0], byTag("h2"))
	require.Len(t, heading, 1)
	assert.Equal(t, "coroutines-basics", attr(heading[0], "id"))
	assert.Equal(t, "Conceptos básicos de corutinas", text(heading[0]))

	image := findAll(root, byAttr("data-index", "4"))
	require.Len(t, image, 1)
	img := findAll(image[0], byTag("img"))
	require.Len(t, img, 1)
	assert.Equal(t, "/images/portfolio/couroutinesBasic/parallelism-and-concurrency.svg", attr(img[0], "src"))
	assert.True(t, strings.HasPrefix(attr(img[0], "alt"), "Diagram:"), "untranslated alt falls back to English")

	assert.Len(t, findAll(root, byAttr("class", "block block-heading")), countKind(doc, content.KindHeading))
	assert.Empty(t, findAll(root, byTag("script")), "no live reload by default")
}

func countKind(doc content.Document, kind content.Kind) int {
	n := 0
	for _, b := range doc.Blocks {
		if b.Kind() == kind {
			n++
		}
	}
	return n
}

func TestBlock_Escaping(t *testing.T) {
	doc := content.Document{
		ID:    "unsafe",
		Title: `Tags & <b>bold</b>`,
		Blocks: []content.Block{
			content.Paragraph{Text: `<script>alert("x")</script>`},
			content.Code{Code: "if (a < b && c > d) {}", ShowPlay: true, Comment: "<i>note</i>"},
			content.Image{Src: "javascript:alert(1)", Alt: `"quoted"`},
			content.List{Items: []string{"<li>nested</li>"}},
		},
	}

	root := parse(t, New(nil).DocumentPage(locale.English, doc))

	assert.Empty(t, findAll(root, byTag("script")))
	assert.Empty(t, findAll(root, byTag("b")))
	assert.Empty(t, findAll(root, byTag("i")))

	p := findAll(root, byTag("p"))
	require.Len(t, p, 1)
	assert.Equal(t, `<script>alert("x")</script>`, text(p[0]))

	code := findAll(root, byTag("code"))
	require.Len(t, code, 1)
	assert.Equal(t, "if (a < b && c > d) {}", text(code[0]), "code is emitted byte for byte")
	assert.Equal(t, "language-kotlin", attr(code[0], "class"))

	figure := findAll(root, byTag("figure"))
	require.Len(t, figure, 1)
	assert.Equal(t, "true", attr(figure[0], "data-play"))

	img := findAll(root, byTag("img"))
	require.Len(t, img, 1)
	assert.NotContains(t, attr(img[0], "src"), "javascript:")
	assert.Equal(t, `"quoted"`, attr(img[0], "alt"))

	li := findAll(root, byTag("li"))
	require.Len(t, li, 1)
	assert.Equal(t, "<li>nested</li>", text(li[0]))
}

func TestBlock_Variants(t *testing.T) {
	tests := []struct {
		name  string
		block content.Block
		tag   string
		want  string
	}{
		{"heading level clamps", content.Heading{Level: 9, ID: "x", Text: "Title"}, "h2", "Title"},
		{"heading level 3", content.Heading{Level: 3, ID: "x", Text: "Sub"}, "h3", "Sub"},
		{"step title", content.StepTitle{Number: 2, Text: "Run it"}, "h3", "2 Run it"},
		{"info box", content.InfoBox{Variant: "green", Content: "Note"}, "aside", "Note"},
		{"solution", content.Solution{TaskNumber: 1, ID: "s1", Paragraphs: []string{"First"}, Steps: []string{"Step"}, Code: "val x = 1", ParagraphAfterCode: "After"}, "details", "1FirstStepval x = 1After"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parse(t, Block(7, tt.block))
			found := findAll(root, byTag(tt.tag))
			require.NotEmpty(t, found)
			assert.Equal(t, tt.want, text(found[0]))

			wrapper := findAll(root, byAttr("data-index", "7"))
			require.Len(t, wrapper, 1)
			assert.Equal(t, "block block-"+string(tt.block.Kind()), attr(wrapper[0], "class"))
		})
	}
}

func TestKotlinLessonPage(t *testing.T) {
	svc := seedService(t)
	lesson, err := svc.KotlinLesson(locale.Spanish, "hello-world")
	require.NoError(t, err)

	root := parse(t, New(messages.MustNew(nil)).KotlinLessonPage(locale.Spanish, lesson))

	h1 := findAll(root, byTag("h1"))
	require.Len(t, h1, 1)
	assert.Equal(t, "Hola mundo", text(h1[0]))

	step := findAll(root, byAttr("class", "step"))
	require.Len(t, step, 1)
	assert.Equal(t, "Paso 1", text(step[0]))

	challenges := findAll(root, byAttr("class", "challenge"))
	require.Len(t, challenges, len(lesson.Practice))
	assert.Contains(t, text(challenges[0]), "Ejercicio")

	next := findAll(root, byAttr("rel", "next"))
	require.Len(t, next, 1)
	assert.Equal(t, "/es/developer-section/kotlin-course/"+lesson.NextStep, attr(next[0], "href"))
	assert.Equal(t, "Siguiente", text(next[0]))
	assert.Empty(t, findAll(root, byAttr("rel", "prev")), "first lesson has no previous step")
}

func TestWebLessonPage(t *testing.T) {
	svc := seedService(t)
	lesson, err := svc.WebLesson(locale.Spanish, "react-2")
	require.NoError(t, err)

	root := parse(t, New(messages.MustNew(nil), WithLiveReload(true)).WebLessonPage(locale.Spanish, lesson))

	sections := findAll(root, byTag("section"))
	require.GreaterOrEqual(t, len(sections), len(lesson.Sections))
	assert.Contains(t, text(sections[0]), "Pasar datos con props")

	keyPoint := findAll(root, byAttr("class", "section section-key-point"))
	require.Len(t, keyPoint, 1)
	assert.Contains(t, text(keyPoint[0]), "Props flow down", "untranslated section keeps English")

	for _, code := range findAll(root, byTag("code")) {
		assert.Equal(t, "language-jsx", attr(code, "class"))
	}

	prev := findAll(root, byAttr("rel", "prev"))
	require.Len(t, prev, 1)
	assert.Equal(t, "/es/developer-section/react-course/react-1", attr(prev[0], "href"))

	scripts := findAll(root, byTag("script"))
	require.Len(t, scripts, 1)
	assert.Contains(t, text(scripts[0]), "/ws")
	assert.Contains(t, text(scripts[0]), `"Contenido actualizado"`)
}

func TestErrorPage(t *testing.T) {
	root := parse(t, New(nil).ErrorPage(locale.English, 404, "No document named \"x\" exists."))

	main := findAll(root, byTag("main"))
	require.Len(t, main, 1)
	assert.Equal(t, "404", attr(main[0], "data-status"))
	assert.Equal(t, "No document named \"x\" exists.", text(main[0]))
}

func TestIndexPage(t *testing.T) {
	groups := []LinkGroup{
		{Title: "Docs", Links: []Link{
			{Href: "/es/developer-section/documentation/coroutines-basics", Label: "Corutinas <básicas>"},
			{Href: "javascript:alert(1)", Label: "bad"},
		}},
		{Title: "Empty"},
	}
	root := parse(t, New(nil).IndexPage(locale.Spanish, groups))

	page := findAll(root, byTag("html"))
	require.Len(t, page, 1)
	assert.Equal(t, "es", attr(page[0], "lang"))

	sections := findAll(root, byTag("section"))
	require.Len(t, sections, 2)
	assert.Equal(t, "Docs", text(findAll(sections[0], byTag("h2"))[0]))
	assert.Empty(t, findAll(sections[1], byTag("li")))

	links := findAll(sections[0], byTag("a"))
	require.Len(t, links, 2)
	assert.Equal(t, "/es/developer-section/documentation/coroutines-basics", attr(links[0], "href"))
	assert.Equal(t, "Corutinas <básicas>", text(links[0]))
	assert.NotContains(t, attr(links[1], "href"), "javascript")

	assert.Empty(t, findAll(root, byTag("script")))
}
