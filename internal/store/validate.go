package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conneroisu/lectern/internal/errors"
	"github.com/conneroisu/lectern/internal/locale"
)

// Validate checks the authoring invariants of the snapshot. It never
// judges translation completeness: a missing override is not an error.
func (s *Store) Validate() *errors.ValidationErrorCollection {
	vec := &errors.ValidationErrorCollection{}

	s.validateDocuments(vec)
	s.validateKotlin(vec)
	s.validateWeb(vec)
	s.validateBlog(vec)

	return vec
}

func (s *Store) validateDocuments(vec *errors.ValidationErrorCollection) {
	for _, id := range s.documentOrder {
		seen := make(map[string]bool)
		for _, tocID := range s.documents[id].TocIDs() {
			if seen[tocID] {
				vec.AddField(path("docs", id, "toc"), tocID, "duplicate table of contents id")
			}
			seen[tocID] = true
		}
	}

	for _, l := range sortedLocales(s.docOverrides) {
		checkOverrideLocale(vec, "docs", l)
		for _, id := range sortedKeys(s.docOverrides[l]) {
			o := s.docOverrides[l][id]
			doc, ok := s.documents[id]
			if !ok {
				vec.AddField(path("docs", id, l.String()), id, "override for unknown document")
				continue
			}

			tocIDs := make(map[string]bool)
			for _, tocID := range doc.TocIDs() {
				tocIDs[tocID] = true
			}
			for _, tocID := range sortedKeys(o.Toc) {
				if !tocIDs[tocID] {
					vec.AddField(path("docs", id, l.String(), "toc", tocID), tocID,
						"label override for unknown table of contents id")
				}
			}

			indices := make([]int, 0, len(o.Blocks))
			for i := range o.Blocks {
				indices = append(indices, i)
			}
			sort.Ints(indices)
			for _, i := range indices {
				field := path("docs", id, l.String(), "blocks", fmt.Sprint(i))
				if i < 0 || i >= len(doc.Blocks) {
					vec.AddField(field, i, "block override index out of range",
						fmt.Sprintf("document has %d blocks", len(doc.Blocks)))
					continue
				}
				kind := doc.Blocks[i].Kind()
				if bad := o.Blocks[i].Inapplicable(kind); len(bad) > 0 {
					vec.AddField(field, strings.Join(bad, ","),
						fmt.Sprintf("fields not present on %s block", kind))
				}
			}
		}
	}
}

func (s *Store) validateKotlin(vec *errors.ValidationErrorCollection) {
	steps := make(map[int]string)
	for _, id := range s.kotlinOrder {
		lesson := s.kotlin[id]
		if other, dup := steps[lesson.Step]; dup {
			vec.AddField(path("kotlin", id, "step"), lesson.Step, "step already used by "+other)
		}
		steps[lesson.Step] = id
		s.checkLinks(vec, "kotlin", id, lesson.NextStep, lesson.PrevStep, func(ref string) bool {
			_, ok := s.kotlin[ref]
			return ok
		})
	}

	for _, l := range sortedLocales(s.kotlinOverrides) {
		checkOverrideLocale(vec, "kotlin", l)
		for _, id := range sortedKeys(s.kotlinOverrides[l]) {
			lesson, ok := s.kotlin[id]
			if !ok {
				vec.AddField(path("kotlin", id, l.String()), id, "override for unknown lesson")
				continue
			}
			if n := len(s.kotlinOverrides[l][id].Practice); n > len(lesson.Practice) {
				vec.AddField(path("kotlin", id, l.String(), "practice"), n,
					"more practice overrides than challenges",
					fmt.Sprintf("lesson has %d challenges", len(lesson.Practice)))
			}
		}
	}
}

func (s *Store) validateWeb(vec *errors.ValidationErrorCollection) {
	steps := make(map[int]string)
	for _, id := range s.webOrder {
		lesson := s.web[id]
		if other, dup := steps[lesson.Step]; dup {
			vec.AddField(path("react", id, "step"), lesson.Step, "step already used by "+other)
		}
		steps[lesson.Step] = id
		s.checkLinks(vec, "react", id, lesson.NextStep, lesson.PrevStep, func(ref string) bool {
			_, ok := s.web[ref]
			return ok
		})
	}

	for _, l := range sortedLocales(s.webOverrides) {
		checkOverrideLocale(vec, "react", l)
		for _, id := range sortedKeys(s.webOverrides[l]) {
			lesson, ok := s.web[id]
			if !ok {
				vec.AddField(path("react", id, l.String()), id, "override for unknown lesson")
				continue
			}
			if n := len(s.webOverrides[l][id].Sections); n > len(lesson.Sections) {
				vec.AddField(path("react", id, l.String(), "sections"), n,
					"more section overrides than sections",
					fmt.Sprintf("lesson has %d sections", len(lesson.Sections)))
			}
		}
	}
}

func (s *Store) validateBlog(vec *errors.ValidationErrorCollection) {
	for _, id := range s.BlogPostIDs() {
		if _, ok := s.posts[id][locale.Canonical]; !ok {
			vec.AddField(path("blog", id), id, "post has no canonical entry")
		}
		for _, l := range sortedLocales(s.posts[id]) {
			checkLocale(vec, "blog."+id, l)
		}
	}

	for _, l := range sortedLocales(s.categoryOverrides) {
		checkOverrideLocale(vec, "categories", l)
		for _, slug := range sortedKeys(s.categoryOverrides[l]) {
			if _, ok := s.categories[slug]; !ok {
				vec.AddField(path("categories", slug, l.String()), slug, "override for unknown category")
			}
		}
	}
}

// checkLinks verifies the step navigation of a lesson.
func (s *Store) checkLinks(vec *errors.ValidationErrorCollection, domain, id, next, prev string, exists func(string) bool) {
	if next != "" && !exists(next) {
		vec.AddField(path(domain, id, "nextStep"), next, "next step refers to unknown lesson")
	}
	if prev != "" && !exists(prev) {
		vec.AddField(path(domain, id, "prevStep"), prev, "previous step refers to unknown lesson")
	}
}

func checkLocale(vec *errors.ValidationErrorCollection, domain string, l locale.Locale) {
	if !locale.IsSupported(l) {
		vec.AddField(path(domain, l.String()), l.String(), "unsupported locale")
	}
}

func checkOverrideLocale(vec *errors.ValidationErrorCollection, domain string, l locale.Locale) {
	checkLocale(vec, domain, l)
	if l.IsCanonical() {
		vec.AddField(path(domain, l.String()), l.String(), "override for the canonical locale is never applied")
	}
}

func path(parts ...string) string {
	return strings.Join(parts, ".")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedLocales[V any](m map[locale.Locale]V) []locale.Locale {
	keys := make([]locale.Locale, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
