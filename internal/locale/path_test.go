package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix("/es"))
	assert.True(t, HasPrefix("/en/developer-section"))
	assert.False(t, HasPrefix("/"))
	assert.False(t, HasPrefix("/espanol"))
	assert.False(t, HasPrefix("/developer-section/es"))
}

func TestFromPath(t *testing.T) {
	assert.Equal(t, Spanish, FromPath("/es/developer-section/kotlin-course", English))
	assert.Equal(t, English, FromPath("/en", Spanish))
	assert.Equal(t, Spanish, FromPath("/developer-section", Spanish))
}

func TestStripPrefix(t *testing.T) {
	tests := map[string]string{
		"/es":                         "/",
		"/en/developer-section":       "/developer-section",
		"/developer-section":          "/developer-section",
		"/es/developer-section/blog/": "/developer-section/blog/",
	}

	for in, want := range tests {
		assert.Equal(t, want, StripPrefix(in), in)
	}
}

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		path string
		l    Locale
		want string
	}{
		{path: "/", l: Spanish, want: "/es"},
		{path: "", l: English, want: "/en"},
		{path: "/developer-section", l: Spanish, want: "/es/developer-section"},
		{path: "/en/developer-section", l: Spanish, want: "/es/developer-section"},
		{path: "/es", l: English, want: "/en"},
		{path: "#coroutine-scope", l: Spanish, want: "#coroutine-scope"},
		{path: "developer-section", l: English, want: "/en/developer-section"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, WithPrefix(tt.path, tt.l))
		})
	}
}
