package locale

import "strings"

// HasPrefix reports whether pathname starts with a supported locale segment,
// e.g. "/es" or "/en/developer-section".
func HasPrefix(pathname string) bool {
	_, ok := prefixOf(pathname)
	return ok
}

// FromPath extracts the locale prefix of pathname, returning fallback when
// the path carries none.
func FromPath(pathname string, fallback Locale) Locale {
	if l, ok := prefixOf(pathname); ok {
		return l
	}
	return fallback
}

// StripPrefix removes the locale segment from pathname. "/es" becomes "/".
func StripPrefix(pathname string) string {
	l, ok := prefixOf(pathname)
	if !ok {
		return pathname
	}

	rest := strings.TrimPrefix(pathname, "/"+string(l))
	if rest == "" {
		return "/"
	}
	return rest
}

// WithPrefix returns pathname under locale l, replacing any existing locale
// segment. Anchor links are returned untouched.
func WithPrefix(pathname string, l Locale) string {
	if strings.HasPrefix(pathname, "#") {
		return pathname
	}
	if pathname == "" || pathname == "/" {
		return "/" + string(l)
	}

	stripped := StripPrefix(pathname)
	if stripped == "/" {
		return "/" + string(l)
	}
	if !strings.HasPrefix(stripped, "/") {
		stripped = "/" + stripped
	}
	return "/" + string(l) + stripped
}

func prefixOf(pathname string) (Locale, bool) {
	for _, l := range Supported {
		p := "/" + string(l)
		if pathname == p || strings.HasPrefix(pathname, p+"/") {
			return l, true
		}
	}
	return "", false
}
