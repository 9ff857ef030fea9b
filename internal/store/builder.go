package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/conneroisu/lectern/internal/content"
	"github.com/conneroisu/lectern/internal/locale"
)

// Builder assembles a Store. It is not safe for concurrent use and must not
// be reused after Build.
type Builder struct {
	s     *Store
	built bool
}

// NewBuilder starts an empty snapshot. source is reported by Store.Source.
func NewBuilder(source string) *Builder {
	return &Builder{s: &Store{
		documents:         make(map[string]content.Document),
		docOverrides:      make(map[locale.Locale]map[string]content.DocumentOverride),
		kotlin:            make(map[string]content.KotlinLesson),
		kotlinOverrides:   make(map[locale.Locale]map[string]content.KotlinLessonPatch),
		web:               make(map[string]content.WebLesson),
		webOverrides:      make(map[locale.Locale]map[string]content.WebLessonPatch),
		posts:             make(map[string]map[locale.Locale]content.BlogPostContent),
		categories:        make(map[string]content.Category),
		categoryOverrides: make(map[locale.Locale]map[string]content.CategoryPatch),
		source:            source,
	}}
}

// AddDocument registers a canonical document.
func (b *Builder) AddDocument(doc content.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document without id")
	}
	if _, exists := b.s.documents[doc.ID]; exists {
		return fmt.Errorf("duplicate document id %q", doc.ID)
	}
	b.s.documents[doc.ID] = doc
	b.s.documentOrder = append(b.s.documentOrder, doc.ID)
	return nil
}

// AddDocumentOverride registers the override of document id for l. Empty
// overrides are dropped.
func (b *Builder) AddDocumentOverride(l locale.Locale, id string, o content.DocumentOverride) {
	if o.IsEmpty() {
		return
	}
	if b.s.docOverrides[l] == nil {
		b.s.docOverrides[l] = make(map[string]content.DocumentOverride)
	}
	b.s.docOverrides[l][id] = o
}

// AddKotlinLesson registers a canonical Kotlin lesson.
func (b *Builder) AddKotlinLesson(lesson content.KotlinLesson) error {
	if lesson.ID == "" {
		return fmt.Errorf("kotlin lesson without id")
	}
	if _, exists := b.s.kotlin[lesson.ID]; exists {
		return fmt.Errorf("duplicate kotlin lesson id %q", lesson.ID)
	}
	b.s.kotlin[lesson.ID] = lesson
	b.s.kotlinOrder = append(b.s.kotlinOrder, lesson.ID)
	return nil
}

// AddKotlinOverride registers the override of a Kotlin lesson for l.
func (b *Builder) AddKotlinOverride(l locale.Locale, id string, p content.KotlinLessonPatch) {
	if p.IsEmpty() {
		return
	}
	if b.s.kotlinOverrides[l] == nil {
		b.s.kotlinOverrides[l] = make(map[string]content.KotlinLessonPatch)
	}
	b.s.kotlinOverrides[l][id] = p
}

// AddWebLesson registers a canonical React lesson.
func (b *Builder) AddWebLesson(lesson content.WebLesson) error {
	if lesson.ID == "" {
		return fmt.Errorf("react lesson without id")
	}
	if _, exists := b.s.web[lesson.ID]; exists {
		return fmt.Errorf("duplicate react lesson id %q", lesson.ID)
	}
	b.s.web[lesson.ID] = lesson
	b.s.webOrder = append(b.s.webOrder, lesson.ID)
	return nil
}

// AddWebOverride registers the override of a React lesson for l.
func (b *Builder) AddWebOverride(l locale.Locale, id string, p content.WebLessonPatch) {
	if p.IsEmpty() {
		return
	}
	if b.s.webOverrides[l] == nil {
		b.s.webOverrides[l] = make(map[string]content.WebLessonPatch)
	}
	b.s.webOverrides[l][id] = p
}

// AddBlogPost registers the header copy of a post in one locale.
func (b *Builder) AddBlogPost(id string, l locale.Locale, post content.BlogPostContent) error {
	if id == "" {
		return fmt.Errorf("blog post without id")
	}
	if b.s.posts[id] == nil {
		b.s.posts[id] = make(map[locale.Locale]content.BlogPostContent)
	}
	if _, exists := b.s.posts[id][l]; exists {
		return fmt.Errorf("duplicate blog post %q for locale %s", id, l)
	}
	b.s.posts[id][l] = post
	return nil
}

// AddCategory registers a canonical blog category.
func (b *Builder) AddCategory(c content.Category) error {
	if c.Slug == "" {
		return fmt.Errorf("category without slug")
	}
	if _, exists := b.s.categories[c.Slug]; exists {
		return fmt.Errorf("duplicate category slug %q", c.Slug)
	}
	b.s.categories[c.Slug] = c
	b.s.categoryOrder = append(b.s.categoryOrder, c.Slug)
	return nil
}

// AddCategoryOverride registers a category header override for l.
func (b *Builder) AddCategoryOverride(l locale.Locale, slug string, p content.CategoryPatch) {
	if p.IsEmpty() {
		return
	}
	if b.s.categoryOverrides[l] == nil {
		b.s.categoryOverrides[l] = make(map[string]content.CategoryPatch)
	}
	b.s.categoryOverrides[l][slug] = p
}

// Build finalizes the snapshot. Lessons are ordered by step, keeping
// insertion order for equal steps.
func (b *Builder) Build() *Store {
	if b.built {
		panic("store: Builder reused after Build")
	}
	b.built = true

	s := b.s
	sort.SliceStable(s.kotlinOrder, func(i, j int) bool {
		return s.kotlin[s.kotlinOrder[i]].Step < s.kotlin[s.kotlinOrder[j]].Step
	})
	sort.SliceStable(s.webOrder, func(i, j int) bool {
		return s.web[s.webOrder[i]].Step < s.web[s.webOrder[j]].Step
	})
	s.loadedAt = time.Now()
	return s
}
