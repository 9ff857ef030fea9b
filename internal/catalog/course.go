package catalog

import (
	"github.com/conneroisu/lectern/internal/content"
	"github.com/conneroisu/lectern/internal/locale"
	"github.com/conneroisu/lectern/internal/overlay"
)

// DocumentSummary lists a documentation page.
type DocumentSummary struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Blocks int    `json:"blocks" yaml:"blocks"`
}

// KotlinCourse returns the outline of the Kotlin course in step order with
// titles localized for l.
func (s *Service) KotlinCourse(l locale.Locale) ([]content.LessonOutline, error) {
	if err := checkLocale(l); err != nil {
		return nil, err
	}

	st := s.snapshots.Current()
	lessons := st.KotlinLessons()
	out := make([]content.LessonOutline, len(lessons))
	for i, lesson := range lessons {
		if !l.IsCanonical() {
			lesson.Title = overlay.ResolveKotlinLesson(lesson, st.KotlinOverride(lesson.ID, l)).Title
		}
		out[i] = content.LessonOutline{
			ID:       lesson.ID,
			Step:     lesson.Step,
			Title:    lesson.Title,
			NextStep: lesson.NextStep,
			PrevStep: lesson.PrevStep,
		}
	}
	return out, nil
}

// WebCourse returns the outline of the React course.
func (s *Service) WebCourse(l locale.Locale) ([]content.LessonOutline, error) {
	if err := checkLocale(l); err != nil {
		return nil, err
	}

	st := s.snapshots.Current()
	lessons := st.WebLessons()
	out := make([]content.LessonOutline, len(lessons))
	for i, lesson := range lessons {
		if !l.IsCanonical() {
			lesson.Title = overlay.ResolveWebLesson(lesson, st.WebOverride(lesson.ID, l)).Title
		}
		out[i] = content.LessonOutline{
			ID:       lesson.ID,
			Step:     lesson.Step,
			Title:    lesson.Title,
			NextStep: lesson.NextStep,
			PrevStep: lesson.PrevStep,
		}
	}
	return out, nil
}

// Documents lists the documentation pages with localized titles.
func (s *Service) Documents(l locale.Locale) ([]DocumentSummary, error) {
	if err := checkLocale(l); err != nil {
		return nil, err
	}

	st := s.snapshots.Current()
	docs := st.Documents()
	out := make([]DocumentSummary, len(docs))
	for i, doc := range docs {
		title := doc.Title
		if !l.IsCanonical() {
			if t := st.DocumentOverride(doc.ID, l).Title; t != nil {
				title = *t
			}
		}
		out[i] = DocumentSummary{ID: doc.ID, Title: title, Blocks: len(doc.Blocks)}
	}
	return out, nil
}

// Categories returns every blog category localized for l.
func (s *Service) Categories(l locale.Locale) ([]content.Category, error) {
	if err := checkLocale(l); err != nil {
		return nil, err
	}

	st := s.snapshots.Current()
	cats := st.Categories()
	if l.IsCanonical() {
		return cats, nil
	}
	for i, c := range cats {
		cats[i] = overlay.ResolveCategory(c, st.CategoryOverride(c.Slug, l))
	}
	return cats, nil
}

// BlogPostIDs lists the ids of every blog post.
func (s *Service) BlogPostIDs() []string {
	return s.snapshots.Current().BlogPostIDs()
}
