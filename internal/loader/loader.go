// Package loader decodes the YAML content catalog into an immutable
// store.Store.
//
// A catalog is a directory tree:
//
//	docs/<id>.yaml   documentation pages with their locale overrides
//	kotlin.yaml      Kotlin course lessons and overrides
//	react.yaml       React course lessons and overrides
//	blog.yaml        blog post headers, categories and category overrides
//
// Every file is optional. Unknown keys are rejected so that an override can
// never carry a field the resolver would silently drop (a code sample, an
// image source or a block type).
package loader

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conneroisu/lectern/internal/content"
	"github.com/conneroisu/lectern/internal/errors"
	"github.com/conneroisu/lectern/internal/locale"
	"github.com/conneroisu/lectern/internal/store"
)

const (
	DocsDir    = "docs"
	KotlinFile = "kotlin.yaml"
	ReactFile  = "react.yaml"
	BlogFile   = "blog.yaml"
)

// EmbeddedSource is the Store.Source of the built-in catalog.
const EmbeddedSource = "embedded"

//go:embed seed
var seed embed.FS

type docFile struct {
	content.DocumentWire `yaml:",inline"`
	Overrides            map[string]content.DocumentOverride `yaml:"overrides"`
}

type kotlinFile struct {
	Lessons   []content.KotlinLesson                          `yaml:"lessons"`
	Overrides map[string]map[string]content.KotlinLessonPatch `yaml:"overrides"`
}

type reactFile struct {
	Lessons   []content.WebLesson                          `yaml:"lessons"`
	Overrides map[string]map[string]content.WebLessonPatch `yaml:"overrides"`
}

type blogFile struct {
	Posts      map[string]map[string]content.BlogPostContent `yaml:"posts"`
	Categories []content.Category                            `yaml:"categories"`
	Overrides  map[string]map[string]content.CategoryPatch   `yaml:"overrides"`
}

// Seed returns the built-in catalog as a file system.
func Seed() fs.FS {
	sub, err := fs.Sub(seed, "seed")
	if err != nil {
		panic(fmt.Sprintf("loader: seed catalog: %v", err))
	}
	return sub
}

// LoadEmbedded builds a Store from the built-in catalog.
func LoadEmbedded() (*store.Store, error) {
	return Load(Seed(), EmbeddedSource)
}

// LoadDir builds a Store from a catalog directory on disk.
func LoadDir(dir string) (*store.Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.NewContentLoadError(dir, err)
	}
	if !info.IsDir() {
		return nil, errors.NewContentLoadError(dir, fmt.Errorf("not a directory"))
	}
	return Load(os.DirFS(dir), dir)
}

// Load builds a Store from the catalog rooted at fsys. source is recorded
// on the Store for diagnostics.
func Load(fsys fs.FS, source string) (*store.Store, error) {
	present, err := rootEntries(fsys)
	if err != nil {
		return nil, errors.NewContentLoadError(source, err)
	}

	b := store.NewBuilder(source)
	if present[DocsDir] {
		if err := loadDocs(fsys, b); err != nil {
			return nil, err
		}
	}
	if present[KotlinFile] {
		if err := loadKotlin(fsys, b); err != nil {
			return nil, err
		}
	}
	if present[ReactFile] {
		if err := loadReact(fsys, b); err != nil {
			return nil, err
		}
	}
	if present[BlogFile] {
		if err := loadBlog(fsys, b); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

func rootEntries(fsys fs.FS) (map[string]bool, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Name()] = true
	}
	return present, nil
}

func loadDocs(fsys fs.FS, b *store.Builder) error {
	entries, err := fs.ReadDir(fsys, DocsDir)
	if err != nil {
		return errors.NewContentLoadError(DocsDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsCatalogFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		p := path.Join(DocsDir, name)
		var f docFile
		if err := decodeFile(fsys, p, &f); err != nil {
			return err
		}
		if f.ID == "" {
			f.ID = strings.TrimSuffix(name, path.Ext(name))
		}

		doc, err := f.Document()
		if err != nil {
			return errors.NewContentLoadError(p, err)
		}
		if err := b.AddDocument(doc); err != nil {
			return errors.NewContentLoadError(p, err)
		}
		overrides, err := localeTable(f.Overrides)
		if err != nil {
			return errors.NewContentLoadError(p, err)
		}
		for l, o := range overrides {
			b.AddDocumentOverride(l, doc.ID, o)
		}
	}
	return nil
}

func loadKotlin(fsys fs.FS, b *store.Builder) error {
	var f kotlinFile
	if err := decodeFile(fsys, KotlinFile, &f); err != nil {
		return err
	}
	for _, lesson := range f.Lessons {
		if err := b.AddKotlinLesson(lesson); err != nil {
			return errors.NewContentLoadError(KotlinFile, err)
		}
	}
	overrides, err := localeTable(f.Overrides)
	if err != nil {
		return errors.NewContentLoadError(KotlinFile, err)
	}
	for l, patches := range overrides {
		for id, p := range patches {
			b.AddKotlinOverride(l, id, p)
		}
	}
	return nil
}

func loadReact(fsys fs.FS, b *store.Builder) error {
	var f reactFile
	if err := decodeFile(fsys, ReactFile, &f); err != nil {
		return err
	}
	for _, lesson := range f.Lessons {
		if err := b.AddWebLesson(lesson); err != nil {
			return errors.NewContentLoadError(ReactFile, err)
		}
	}
	overrides, err := localeTable(f.Overrides)
	if err != nil {
		return errors.NewContentLoadError(ReactFile, err)
	}
	for l, patches := range overrides {
		for id, p := range patches {
			b.AddWebOverride(l, id, p)
		}
	}
	return nil
}

func loadBlog(fsys fs.FS, b *store.Builder) error {
	var f blogFile
	if err := decodeFile(fsys, BlogFile, &f); err != nil {
		return err
	}

	ids := make([]string, 0, len(f.Posts))
	for id := range f.Posts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		for code, post := range f.Posts[id] {
			if err := b.AddBlogPost(id, localeKey(code), post); err != nil {
				return errors.NewContentLoadError(BlogFile, err)
			}
		}
	}

	for _, c := range f.Categories {
		if err := b.AddCategory(c); err != nil {
			return errors.NewContentLoadError(BlogFile, err)
		}
	}
	overrides, err := localeTable(f.Overrides)
	if err != nil {
		return errors.NewContentLoadError(BlogFile, err)
	}
	for l, patches := range overrides {
		for slug, p := range patches {
			b.AddCategoryOverride(l, slug, p)
		}
	}
	return nil
}

func decodeFile(fsys fs.FS, name string, v interface{}) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errors.NewContentLoadError(name, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return errors.NewContentLoadError(name, err)
	}
	return nil
}

// localeKey normalizes an override table key. Unsupported locales are kept
// as written so that Store.Validate can report them.
func localeKey(code string) locale.Locale {
	return locale.Locale(strings.ToLower(strings.TrimSpace(code)))
}

// localeTable normalizes the keys of an override table. Keys that only
// differ in case or surrounding space name the same locale and are rejected.
func localeTable[V any](table map[string]V) (map[locale.Locale]V, error) {
	out := make(map[locale.Locale]V, len(table))
	written := make(map[locale.Locale]string, len(table))
	for code, v := range table {
		l := localeKey(code)
		if other, exists := written[l]; exists {
			first, second := other, code
			if second < first {
				first, second = second, first
			}
			return nil, fmt.Errorf("overrides for locale %s given twice as %q and %q", l, first, second)
		}
		written[l] = code
		out[l] = v
	}
	return out, nil
}

// IsCatalogFile reports whether name is a YAML catalog file.
func IsCatalogFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
