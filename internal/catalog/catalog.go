// Package catalog is the locale-aware entry point to the content: one getter
// per content domain, each returning the effective record for a locale.
//
// For the canonical locale a getter hands out the canonical record as
// stored. For any other supported locale it merges the locale's override on
// top, falling back silently wherever no override exists. Unknown ids are
// reported with an error matching errors.ErrNotFound.
//
// Returned values may share memory with the snapshot they came from and
// must be treated as read-only.
package catalog

import (
	"github.com/conneroisu/lectern/internal/content"
	"github.com/conneroisu/lectern/internal/errors"
	"github.com/conneroisu/lectern/internal/locale"
	"github.com/conneroisu/lectern/internal/overlay"
	"github.com/conneroisu/lectern/internal/store"
)

// Domain names used in errors and metrics.
const (
	DomainDocument = "document"
	DomainKotlin   = "kotlin_lesson"
	DomainReact    = "react_lesson"
	DomainBlog     = "blog_post"
	DomainCategory = "category"
)

// Outcome describes how a lookup was answered.
type Outcome string

const (
	OutcomeCanonical Outcome = "canonical"
	OutcomeResolved  Outcome = "resolved"
	OutcomeFallback  Outcome = "fallback"
	OutcomeNotFound  Outcome = "not_found"
)

// Snapshots supplies the snapshot to read from. registry.Registry
// implements it.
type Snapshots interface {
	Current() *store.Store
}

// Recorder observes lookups.
type Recorder interface {
	RecordLookup(domain string, l locale.Locale, outcome Outcome)
}

// Service answers content lookups against the current snapshot.
type Service struct {
	snapshots Snapshots
	recorder  Recorder
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder reports every lookup to r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// New creates a Service reading from snapshots.
func New(snapshots Snapshots, opts ...Option) *Service {
	s := &Service{snapshots: snapshots}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fixed serves a single snapshot forever.
func Fixed(s *store.Store) Snapshots {
	return fixed{s}
}

type fixed struct{ s *store.Store }

func (f fixed) Current() *store.Store { return f.s }

// Document returns the documentation page id for l.
func (s *Service) Document(l locale.Locale, id string) (content.Document, error) {
	if err := checkLocale(l); err != nil {
		return content.Document{}, err
	}

	st := s.snapshots.Current()
	doc, ok := st.Document(id)
	if !ok {
		return content.Document{}, s.notFound(DomainDocument, l, id)
	}
	if l.IsCanonical() {
		s.record(DomainDocument, l, OutcomeCanonical)
		return doc, nil
	}

	o := st.DocumentOverride(id, l)
	s.record(DomainDocument, l, outcomeOf(o.IsEmpty()))
	return overlay.ResolveDocument(doc, o), nil
}

// KotlinLesson returns the Kotlin course lesson id for l.
func (s *Service) KotlinLesson(l locale.Locale, id string) (content.KotlinLesson, error) {
	if err := checkLocale(l); err != nil {
		return content.KotlinLesson{}, err
	}

	st := s.snapshots.Current()
	lesson, ok := st.KotlinLesson(id)
	if !ok {
		return content.KotlinLesson{}, s.notFound(DomainKotlin, l, id)
	}
	if l.IsCanonical() {
		s.record(DomainKotlin, l, OutcomeCanonical)
		return lesson, nil
	}

	p := st.KotlinOverride(id, l)
	s.record(DomainKotlin, l, outcomeOf(p.IsEmpty()))
	return overlay.ResolveKotlinLesson(lesson, p), nil
}

// WebLesson returns the React course lesson id for l.
func (s *Service) WebLesson(l locale.Locale, id string) (content.WebLesson, error) {
	if err := checkLocale(l); err != nil {
		return content.WebLesson{}, err
	}

	st := s.snapshots.Current()
	lesson, ok := st.WebLesson(id)
	if !ok {
		return content.WebLesson{}, s.notFound(DomainReact, l, id)
	}
	if l.IsCanonical() {
		s.record(DomainReact, l, OutcomeCanonical)
		return lesson, nil
	}

	p := st.WebOverride(id, l)
	s.record(DomainReact, l, outcomeOf(p.IsEmpty()))
	return overlay.ResolveWebLesson(lesson, p), nil
}

// BlogPost returns the header copy of post id for l, falling back to the
// canonical copy when the post has none in l.
func (s *Service) BlogPost(l locale.Locale, id string) (content.BlogPostContent, error) {
	if err := checkLocale(l); err != nil {
		return content.BlogPostContent{}, err
	}

	st := s.snapshots.Current()
	canonical, ok := st.BlogPost(id, locale.Canonical)
	if !ok {
		return content.BlogPostContent{}, s.notFound(DomainBlog, l, id)
	}
	if l.IsCanonical() {
		s.record(DomainBlog, l, OutcomeCanonical)
		return canonical, nil
	}

	post, _ := st.BlogPost(id, l)
	s.record(DomainBlog, l, outcomeOf(post == canonical))
	return post, nil
}

// Category returns the blog category slug for l.
func (s *Service) Category(l locale.Locale, slug string) (content.Category, error) {
	if err := checkLocale(l); err != nil {
		return content.Category{}, err
	}

	st := s.snapshots.Current()
	c, ok := st.Category(slug)
	if !ok {
		return content.Category{}, s.notFound(DomainCategory, l, slug)
	}
	if l.IsCanonical() {
		s.record(DomainCategory, l, OutcomeCanonical)
		return c, nil
	}

	p := st.CategoryOverride(slug, l)
	s.record(DomainCategory, l, outcomeOf(p.IsEmpty()))
	return overlay.ResolveCategory(c, p), nil
}

func (s *Service) notFound(domain string, l locale.Locale, id string) error {
	s.record(domain, l, OutcomeNotFound)
	return errors.NewNotFoundError(domain, id).WithContext("locale", l.String())
}

func (s *Service) record(domain string, l locale.Locale, outcome Outcome) {
	if s.recorder != nil {
		s.recorder.RecordLookup(domain, l, outcome)
	}
}

func outcomeOf(fallback bool) Outcome {
	if fallback {
		return OutcomeFallback
	}
	return OutcomeResolved
}

func checkLocale(l locale.Locale) error {
	if !locale.IsSupported(l) {
		return errors.NewUnsupportedLocaleError(l.String())
	}
	return nil
}
