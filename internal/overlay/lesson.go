package overlay

import (
	"github.com/conneroisu/lectern/internal/content"
)

// ResolveKotlinLesson replaces title and content wholesale when present and
// merges practice challenges index by index. Code, test cases, ids and step
// links always come from the canonical lesson.
func ResolveKotlinLesson(lesson content.KotlinLesson, patch content.KotlinLessonPatch) content.KotlinLesson {
	if patch.IsEmpty() {
		return lesson
	}
	if patch.Title != nil {
		lesson.Title = *patch.Title
	}
	if patch.Content != nil {
		lesson.Content = patch.Content
	}
	lesson.Practice = ResolveList(lesson.Practice, patch.Practice)
	return lesson
}

// ResolveWebLesson is the web course counterpart of ResolveKotlinLesson,
// merging sections instead of practice challenges.
func ResolveWebLesson(lesson content.WebLesson, patch content.WebLessonPatch) content.WebLesson {
	if patch.IsEmpty() {
		return lesson
	}
	if patch.Title != nil {
		lesson.Title = *patch.Title
	}
	if patch.Content != nil {
		lesson.Content = patch.Content
	}
	lesson.Sections = ResolveList(lesson.Sections, patch.Sections)
	return lesson
}

// ResolveCategory applies a category header override.
func ResolveCategory(category content.Category, patch content.CategoryPatch) content.Category {
	if patch.IsEmpty() {
		return category
	}
	return patch.Apply(category)
}
