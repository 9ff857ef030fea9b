package messages

import (
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/lectern/internal/locale"
)

func TestNew(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	tags := c.Bundle().LanguageTags()
	assert.Len(t, tags, 2)
}

func TestTranslate(t *testing.T) {
	c := MustNew(nil)

	tests := []struct {
		name   string
		locale locale.Locale
		id     string
		want   string
	}{
		{"english label", locale.English, TableOfContents, "On this page"},
		{"spanish label", locale.Spanish, TableOfContents, "En esta página"},
		{"spanish navigation", locale.Spanish, Next, "Siguiente"},
		{"spanish reload notice", locale.Spanish, ContentReloaded, "Contenido actualizado"},
		{"unknown id passes through", locale.Spanish, "NoSuchMessage", "NoSuchMessage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Translate(tt.locale, tt.id))
		})
	}
}

func TestTranslate_FallsBackToEnglish(t *testing.T) {
	c := MustNew(nil)
	require.NoError(t, c.Bundle().AddMessages(locale.English.Tag(),
		&i18n.Message{ID: "OnlyEnglish", Other: "Only in English"},
		&i18n.Message{ID: "OnlyEnglishCount", One: "{{.Count}} item", Other: "{{.Count}} items"},
	))

	tests := []struct {
		name   string
		locale locale.Locale
		want   string
	}{
		{"english", locale.English, "Only in English"},
		{"spanish without entry", locale.Spanish, "Only in English"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Translate(tt.locale, "OnlyEnglish"))
		})
	}

	assert.Equal(t, "2 items", c.TranslateWithCount(locale.Spanish, "OnlyEnglishCount", nil, 2))
	assert.Equal(t, "NoSuchMessage", c.Translate(locale.Spanish, "NoSuchMessage"))
}

func TestTranslateWithMap(t *testing.T) {
	c := MustNew(nil)

	vars := map[string]any{"Kind": "document", "ID": "does-not-exist"}
	assert.Equal(t, `No document named "does-not-exist" exists.`, c.TranslateWithMap(locale.English, NotFound, vars))
	assert.Equal(t, `No existe ningún document llamado "does-not-exist".`, c.TranslateWithMap(locale.Spanish, NotFound, vars))

	assert.Equal(t, "Paso 3", c.TranslateWithMap(locale.Spanish, LessonStep, map[string]any{"Step": 3}))
	assert.Equal(t, "Exercise 2", c.TranslateWithMap(locale.English, Exercise, map[string]any{"Number": 2}))
}

func TestTranslateWithCount(t *testing.T) {
	c := MustNew(nil)

	assert.Equal(t, "1 lesson", c.TranslateWithCount(locale.English, LessonCount, nil, 1))
	assert.Equal(t, "4 lessons", c.TranslateWithCount(locale.English, LessonCount, nil, 4))
	assert.Equal(t, "1 lección", c.TranslateWithCount(locale.Spanish, LessonCount, nil, 1))
	assert.Equal(t, "3 lecciones", c.TranslateWithCount(locale.Spanish, LessonCount, nil, 3))
}
