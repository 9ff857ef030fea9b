// Package store holds one immutable snapshot of the content catalog: the
// canonical records of every domain in authoring order, and the sparse
// per-locale override tables.
//
// A Store is assembled with a Builder and never changes afterwards. A
// content reload produces a new Store.
package store

import (
	"sort"
	"time"

	"github.com/conneroisu/lectern/internal/content"
	"github.com/conneroisu/lectern/internal/locale"
)

// Store is a read-only content snapshot. All methods are safe for
// concurrent use.
type Store struct {
	documents     map[string]content.Document
	documentOrder []string
	docOverrides  map[locale.Locale]map[string]content.DocumentOverride

	kotlin          map[string]content.KotlinLesson
	kotlinOrder     []string
	kotlinOverrides map[locale.Locale]map[string]content.KotlinLessonPatch

	web          map[string]content.WebLesson
	webOrder     []string
	webOverrides map[locale.Locale]map[string]content.WebLessonPatch

	posts map[string]map[locale.Locale]content.BlogPostContent

	categories        map[string]content.Category
	categoryOrder     []string
	categoryOverrides map[locale.Locale]map[string]content.CategoryPatch

	source   string
	loadedAt time.Time
}

// Document returns the canonical document with the given id.
func (s *Store) Document(id string) (content.Document, bool) {
	d, ok := s.documents[id]
	return d, ok
}

// DocumentOverride returns the override of a document for l. It is empty
// when none exists.
func (s *Store) DocumentOverride(id string, l locale.Locale) content.DocumentOverride {
	return s.docOverrides[l][id]
}

// Documents returns every canonical document in authoring order.
func (s *Store) Documents() []content.Document {
	out := make([]content.Document, len(s.documentOrder))
	for i, id := range s.documentOrder {
		out[i] = s.documents[id]
	}
	return out
}

// KotlinLesson returns the canonical Kotlin lesson with the given id.
func (s *Store) KotlinLesson(id string) (content.KotlinLesson, bool) {
	l, ok := s.kotlin[id]
	return l, ok
}

// KotlinOverride returns the override of a Kotlin lesson for l.
func (s *Store) KotlinOverride(id string, l locale.Locale) content.KotlinLessonPatch {
	return s.kotlinOverrides[l][id]
}

// KotlinLessons returns the canonical Kotlin lessons ordered by step.
func (s *Store) KotlinLessons() []content.KotlinLesson {
	out := make([]content.KotlinLesson, len(s.kotlinOrder))
	for i, id := range s.kotlinOrder {
		out[i] = s.kotlin[id]
	}
	return out
}

// KotlinLessonByStep returns the Kotlin lesson at a course step.
func (s *Store) KotlinLessonByStep(step int) (content.KotlinLesson, bool) {
	for _, id := range s.kotlinOrder {
		if l := s.kotlin[id]; l.Step == step {
			return l, true
		}
	}
	return content.KotlinLesson{}, false
}

// WebLesson returns the canonical React lesson with the given id.
func (s *Store) WebLesson(id string) (content.WebLesson, bool) {
	l, ok := s.web[id]
	return l, ok
}

// WebOverride returns the override of a React lesson for l.
func (s *Store) WebOverride(id string, l locale.Locale) content.WebLessonPatch {
	return s.webOverrides[l][id]
}

// WebLessons returns the canonical React lessons ordered by step.
func (s *Store) WebLessons() []content.WebLesson {
	out := make([]content.WebLesson, len(s.webOrder))
	for i, id := range s.webOrder {
		out[i] = s.web[id]
	}
	return out
}

// BlogPost returns the header copy of a post in l, falling back to the
// canonical locale. The boolean is false only for unknown ids.
func (s *Store) BlogPost(id string, l locale.Locale) (content.BlogPostContent, bool) {
	byLocale, ok := s.posts[id]
	if !ok {
		return content.BlogPostContent{}, false
	}
	if post, ok := byLocale[l]; ok {
		return post, true
	}
	post, ok := byLocale[locale.Canonical]
	return post, ok
}

// BlogPostIDs returns the ids of every blog post, sorted.
func (s *Store) BlogPostIDs() []string {
	ids := make([]string, 0, len(s.posts))
	for id := range s.posts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Category returns the canonical category with the given slug.
func (s *Store) Category(slug string) (content.Category, bool) {
	c, ok := s.categories[slug]
	return c, ok
}

// CategoryOverride returns the header override of a category for l.
func (s *Store) CategoryOverride(slug string, l locale.Locale) content.CategoryPatch {
	return s.categoryOverrides[l][slug]
}

// Categories returns every canonical category in authoring order.
func (s *Store) Categories() []content.Category {
	out := make([]content.Category, len(s.categoryOrder))
	for i, slug := range s.categoryOrder {
		out[i] = s.categories[slug]
	}
	return out
}

// Source describes where the snapshot was loaded from.
func (s *Store) Source() string {
	return s.source
}

// LoadedAt returns the time the snapshot was built.
func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}

// Stats summarizes the size of the snapshot.
type Stats struct {
	Documents     int `json:"documents" yaml:"documents"`
	KotlinLessons int `json:"kotlinLessons" yaml:"kotlinLessons"`
	WebLessons    int `json:"webLessons" yaml:"webLessons"`
	BlogPosts     int `json:"blogPosts" yaml:"blogPosts"`
	Categories    int `json:"categories" yaml:"categories"`
	Overrides     int `json:"overrides" yaml:"overrides"`
}

// Stats returns record and override counts.
func (s *Store) Stats() Stats {
	overrides := 0
	for _, m := range s.docOverrides {
		overrides += len(m)
	}
	for _, m := range s.kotlinOverrides {
		overrides += len(m)
	}
	for _, m := range s.webOverrides {
		overrides += len(m)
	}
	for _, m := range s.categoryOverrides {
		overrides += len(m)
	}
	return Stats{
		Documents:     len(s.documents),
		KotlinLessons: len(s.kotlin),
		WebLessons:    len(s.web),
		BlogPosts:     len(s.posts),
		Categories:    len(s.categories),
		Overrides:     overrides,
	}
}
