package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"

	"github.com/conneroisu/lectern/internal/catalog"
	"github.com/conneroisu/lectern/internal/errors"
	"github.com/conneroisu/lectern/internal/locale"
	"github.com/conneroisu/lectern/internal/messages"
	"github.com/conneroisu/lectern/internal/renderer"
)

// ErrorResponse is the JSON body of every failed API request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the code and the localized message of a failure.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Locale  string `json:"locale"`
}

var kindNames = map[string]string{
	catalog.DomainDocument: "document",
	catalog.DomainKotlin:   "Kotlin lesson",
	catalog.DomainReact:    "React lesson",
	catalog.DomainBlog:     "blog post",
	catalog.DomainCategory: "category",
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	s.serveAPI(w, r, "", func(l locale.Locale) (any, error) {
		return s.catalog.Documents(l)
	})
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.serveAPI(w, r, catalog.DomainDocument, func(l locale.Locale) (any, error) {
		return s.catalog.Document(l, id)
	})
}

func (s *Server) handleKotlinCourse(w http.ResponseWriter, r *http.Request) {
	s.serveAPI(w, r, "", func(l locale.Locale) (any, error) {
		return s.catalog.KotlinCourse(l)
	})
}

func (s *Server) handleKotlinLesson(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.serveAPI(w, r, catalog.DomainKotlin, func(l locale.Locale) (any, error) {
		return s.catalog.KotlinLesson(l, id)
	})
}

func (s *Server) handleWebCourse(w http.ResponseWriter, r *http.Request) {
	s.serveAPI(w, r, "", func(l locale.Locale) (any, error) {
		return s.catalog.WebCourse(l)
	})
}

func (s *Server) handleWebLesson(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.serveAPI(w, r, catalog.DomainReact, func(l locale.Locale) (any, error) {
		return s.catalog.WebLesson(l, id)
	})
}

func (s *Server) handleBlogPost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.serveAPI(w, r, catalog.DomainBlog, func(l locale.Locale) (any, error) {
		return s.catalog.BlogPost(l, id)
	})
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	s.serveAPI(w, r, catalog.DomainCategory, func(l locale.Locale) (any, error) {
		return s.catalog.Category(l, slug)
	})
}

func (s *Server) handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	l := s.requestLocale(r)
	s.writeJSON(w, r, http.StatusNotFound, ErrorResponse{Error: ErrorBody{
		Code:    errors.ErrCodeNotFound,
		Message: s.messages.TranslateWithMap(l, messages.NotFound, map[string]any{"Kind": "route", "ID": r.URL.Path}),
		Locale:  l.String(),
	}})
}

// serveAPI parses the locale path value, runs get and writes the result or
// the mapped error.
func (s *Server) serveAPI(w http.ResponseWriter, r *http.Request, domain string, get func(locale.Locale) (any, error)) {
	raw := r.PathValue("locale")
	l, err := locale.Parse(raw)
	if err != nil {
		s.writeError(w, r, s.requestLocale(r), domain, errors.NewUnsupportedLocaleError(raw))
		return
	}

	value, err := get(l)
	if err != nil {
		s.writeError(w, r, l, domain, err)
		return
	}
	w.Header().Set("Content-Language", l.String())
	s.writeJSON(w, r, http.StatusOK, value)
}

// writeError maps err to a status and writes a localized ErrorResponse.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, l locale.Locale, domain string, err error) {
	s.errors.Handle(r.Context(), err)

	status, body := s.errorBody(l, domain, r, err)
	s.writeJSON(w, r, status, ErrorResponse{Error: body})
}

func (s *Server) errorBody(l locale.Locale, domain string, r *http.Request, err error) (int, ErrorBody) {
	body := ErrorBody{Locale: l.String()}

	errType, _ := errors.TypeOf(err)
	switch errType {
	case errors.ErrorTypeNotFound:
		body.Code = errors.ErrCodeNotFound
		body.Message = s.messages.TranslateWithMap(l, messages.NotFound, map[string]any{
			"Kind": kindName(domain),
			"ID":   notFoundID(r),
		})
		return http.StatusNotFound, body
	case errors.ErrorTypeLocale:
		body.Code = errors.ErrCodeUnsupportedLocale
		body.Message = s.messages.TranslateWithMap(l, messages.UnsupportedLocale, map[string]any{
			"Locale": r.PathValue("locale"),
		})
		return http.StatusBadRequest, body
	default:
		body.Code = errors.ErrCodeInternalError
		body.Message = s.messages.Translate(l, messages.InternalError)
		return http.StatusInternalServerError, body
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		s.logger.Error(r.Context(), err, "Failed to encode response")
	}
}

// requestLocale picks the locale for messages about a request that names no
// usable locale.
func (s *Server) requestLocale(r *http.Request) locale.Locale {
	return locale.Negotiate(r.Header.Get("Accept-Language"), s.config.Server.RouteLocale())
}

func (s *Server) previewIndex(l locale.Locale) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := s.catalog.Documents(l)
		if err != nil {
			s.writePageError(w, r, l, "", err)
			return
		}
		kotlin, err := s.catalog.KotlinCourse(l)
		if err != nil {
			s.writePageError(w, r, l, "", err)
			return
		}
		react, err := s.catalog.WebCourse(l)
		if err != nil {
			s.writePageError(w, r, l, "", err)
			return
		}

		docLinks := make([]renderer.Link, len(docs))
		for i, doc := range docs {
			docLinks[i] = renderer.Link{Href: locale.WithPrefix(renderer.DocsPath+doc.ID, l), Label: doc.Title}
		}
		kotlinLinks := make([]renderer.Link, len(kotlin))
		for i, lesson := range kotlin {
			kotlinLinks[i] = renderer.Link{Href: locale.WithPrefix(renderer.KotlinPath+lesson.ID, l), Label: lesson.Title}
		}
		reactLinks := make([]renderer.Link, len(react))
		for i, lesson := range react {
			reactLinks[i] = renderer.Link{Href: locale.WithPrefix(renderer.ReactPath+lesson.ID, l), Label: lesson.Title}
		}

		s.writePage(w, r, http.StatusOK, s.renderer.IndexPage(l, []renderer.LinkGroup{
			{Title: s.messages.Translate(l, messages.Documentation), Links: docLinks},
			{Title: s.messages.Translate(l, messages.KotlinCourse), Links: kotlinLinks},
			{Title: s.messages.Translate(l, messages.ReactCourse), Links: reactLinks},
		}))
	}
}

func (s *Server) previewDocument(l locale.Locale) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := s.catalog.Document(l, r.PathValue("id"))
		if err != nil {
			s.writePageError(w, r, l, catalog.DomainDocument, err)
			return
		}
		s.writePage(w, r, http.StatusOK, s.renderer.DocumentPage(l, doc))
	}
}

func (s *Server) previewKotlinLesson(l locale.Locale) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lesson, err := s.catalog.KotlinLesson(l, r.PathValue("id"))
		if err != nil {
			s.writePageError(w, r, l, catalog.DomainKotlin, err)
			return
		}
		s.writePage(w, r, http.StatusOK, s.renderer.KotlinLessonPage(l, lesson))
	}
}

func (s *Server) previewWebLesson(l locale.Locale) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lesson, err := s.catalog.WebLesson(l, r.PathValue("id"))
		if err != nil {
			s.writePageError(w, r, l, catalog.DomainReact, err)
			return
		}
		s.writePage(w, r, http.StatusOK, s.renderer.WebLessonPage(l, lesson))
	}
}

func (s *Server) writePageError(w http.ResponseWriter, r *http.Request, l locale.Locale, domain string, err error) {
	s.errors.Handle(r.Context(), err)

	status, body := s.errorBody(l, domain, r, err)
	s.writePage(w, r, status, s.renderer.ErrorPage(l, status, body.Message))
}

// writePage renders c fully before the status line is written.
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		s.logger.Error(r.Context(), err, "Failed to render page", "path", r.URL.Path)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn(r.Context(), err, "Failed to write page", "path", r.URL.Path)
	}
}

func kindName(domain string) string {
	if name, ok := kindNames[domain]; ok {
		return name
	}
	return "page"
}

func notFoundID(r *http.Request) string {
	if id := r.PathValue("id"); id != "" {
		return id
	}
	if slug := r.PathValue("slug"); slug != "" {
		return slug
	}
	return r.URL.Path
}
