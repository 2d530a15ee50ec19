package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateYouTubeURL(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		valid bool
	}{
		{"standard watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"http scheme", "http://youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", true},
		{"embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"shorts URL", "https://www.youtube.com/shorts/dQw4w9WgXcQ", true},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"not a URL", "bad-url", false},
		{"wrong host", "https://vimeo.com/12345", false},
		{"bare host", "https://www.youtube.com/", false},
		{"lookalike path", "https://youtube.com/playlist?list=abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateYouTubeURL(tt.url))
		})
	}
}

func TestSlugFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Never Gonna Give You Up", "never_gonna_give_you_up"},
		{"Video (Official) [HD]!", "video__official___hd__"},
		{"MiXeD CaSe 123", "mixed_case_123"},
		{"日本語タイトル", "_______"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SlugFilename(tt.title))
	}
}

func TestSplitURLs(t *testing.T) {
	t.Run("newlines and commas", func(t *testing.T) {
		raw := "https://youtu.be/a\nhttps://youtu.be/b, https://youtu.be/c"
		assert.Equal(t, []string{
			"https://youtu.be/a",
			"https://youtu.be/b",
			"https://youtu.be/c",
		}, SplitURLs(raw))
	})

	t.Run("trims and drops empties", func(t *testing.T) {
		assert.Equal(t, []string{"x"}, SplitURLs("  x  \n\n , "))
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		assert.Len(t, SplitURLs("a\na"), 2)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SplitURLs("   \n  "))
	})
}
