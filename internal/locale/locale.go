// Package locale defines the closed set of content locales served by lectern
// and the helpers used to pick one from user input, request headers and
// locale-prefixed paths.
//
// English is the canonical locale: every piece of content is authored in
// English first and other locales only carry partial overrides on top of it.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale is a two-letter content locale code.
type Locale string

const (
	English Locale = "en"
	Spanish Locale = "es"
)

// Canonical is the locale the content is authored in.
const Canonical = English

// Supported lists every locale the site serves, canonical first.
var Supported = []Locale{English, Spanish}

var (
	tags    = []language.Tag{language.English, language.Spanish}
	matcher = language.NewMatcher(tags)
)

// String returns the locale code.
func (l Locale) String() string {
	return string(l)
}

// IsCanonical reports whether l is the authoring locale.
func (l Locale) IsCanonical() bool {
	return l == Canonical
}

// Tag returns the BCP 47 tag of the locale.
func (l Locale) Tag() language.Tag {
	return language.Make(string(l))
}

// IsSupported reports whether l is one of the served locales.
func IsSupported(l Locale) bool {
	for _, s := range Supported {
		if s == l {
			return true
		}
	}
	return false
}

// Parse converts user input such as "es", "ES" or "es-MX" into a supported
// locale. Region and script subtags are dropped.
func Parse(s string) (Locale, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty locale")
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid locale %q: %w", s, err)
	}

	base, _ := tag.Base()
	l := Locale(base.String())
	if !IsSupported(l) {
		return "", fmt.Errorf("unsupported locale %q", s)
	}
	return l, nil
}

// MustParse is like Parse but panics on error. Intended for static input.
func MustParse(s string) Locale {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Negotiate picks the best supported locale for an Accept-Language header
// value. When the header is empty or nothing matches with at least low
// confidence, fallback is returned.
func Negotiate(acceptLanguage string, fallback Locale) Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return fallback
	}

	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return fallback
	}

	_, index, confidence := matcher.Match(desired...)
	if confidence == language.No {
		return fallback
	}
	return Supported[index]
}
