// Package messages holds the localized interface strings of the site
// chrome. Course and documentation content lives in the catalog; this
// package only covers labels, navigation and error messages.
package messages

import (
	"context"
	"embed"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/conneroisu/lectern/internal/errors"
	"github.com/conneroisu/lectern/internal/locale"
	"github.com/conneroisu/lectern/internal/logging"
)

// Message ids
const (
	NotFound          = "NotFound"
	UnsupportedLocale = "UnsupportedLocale"
	InternalError     = "InternalError"
	TableOfContents   = "TableOfContents"
	Previous          = "Previous"
	Next              = "Next"
	LessonStep        = "LessonStep"
	Practice          = "Practice"
	Hint              = "Hint"
	Solution          = "Solution"
	CodeExamples      = "CodeExamples"
	Exercise          = "Exercise"
	LessonCount       = "LessonCount"
	ContentReloaded   = "ContentReloaded"
	Documentation     = "Documentation"
	KotlinCourse      = "KotlinCourse"
	ReactCourse       = "ReactCourse"
	BlogCategories    = "BlogCategories"
	SiteTitle         = "SiteTitle"
)

//go:embed locales/*.toml
var bundles embed.FS

// Catalog translates message ids for the supported locales
type Catalog struct {
	bundle *i18n.Bundle
	logger logging.Logger
}

// New loads the embedded message bundles.
func New(logger logging.Logger) (*Catalog, error) {
	bundle := i18n.NewBundle(locale.Canonical.Tag())
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(bundles, "locales/*.toml")
	if err != nil {
		return nil, errors.NewContentLoadError("locales", err)
	}
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(bundles, file); err != nil {
			return nil, errors.NewContentLoadError(file, err)
		}
	}

	return &Catalog{bundle: bundle, logger: logger}, nil
}

// MustNew is New for package initialization; the bundles are compiled in,
// so a failure is a build defect.
func MustNew(logger logging.Logger) *Catalog {
	c, err := New(logger)
	if err != nil {
		panic(err)
	}
	return c
}

// Bundle exposes the underlying go-i18n bundle.
func (c *Catalog) Bundle() *i18n.Bundle {
	return c.bundle
}

// Translate returns message id in l.
func (c *Catalog) Translate(l locale.Locale, id string) string {
	return c.localize(l, id, nil, nil)
}

// TranslateWithMap returns message id in l with variables filled in.
func (c *Catalog) TranslateWithMap(l locale.Locale, id string, variables map[string]any) string {
	return c.localize(l, id, variables, nil)
}

// TranslateWithCount returns message id in l, choosing the plural form for
// count. Count is available to the message as {{.Count}}.
func (c *Catalog) TranslateWithCount(l locale.Locale, id string, variables map[string]any, count int) string {
	data := make(map[string]any, len(variables)+1)
	for k, v := range variables {
		data[k] = v
	}
	data["Count"] = count
	return c.localize(l, id, data, count)
}

// localize falls back to the canonical locale for messages missing from l.
// Unknown ids come back unchanged.
func (c *Catalog) localize(l locale.Locale, id string, data map[string]any, pluralCount interface{}) string {
	cfg := &i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
		PluralCount:  pluralCount,
	}

	text, err := i18n.NewLocalizer(c.bundle, string(l)).Localize(cfg)
	if _, missing := err.(*i18n.MessageNotFoundErr); missing && !l.IsCanonical() {
		text, err = i18n.NewLocalizer(c.bundle, string(locale.Canonical)).Localize(cfg)
	}
	if err != nil {
		if c.logger != nil {
			c.logger.Warn(context.Background(), err, "Message not translated", "message_id", id, "locale", string(l))
		}
		return id
	}
	return text
}
