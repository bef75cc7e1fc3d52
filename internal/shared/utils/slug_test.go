package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello, World!", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   spaces---and___symbols", "multiple-spaces-and-symbols"},
		{"Don't Panic", "dont-panic"},
		{"It’s here", "its-here"},
		{"Nguyễn Nhật Ánh", "nguyen-nhat-anh"},
		{"Đường đi", "duong-di"},
		{"Crème brûlée 2024", "creme-brulee-2024"},
		{"!!!", "post"},
		{"", "post"},
	}

	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, GenerateSlug(tc.title))
		})
	}
}

func TestGenerateSlug_Deterministic(t *testing.T) {
	title := "Go Concurrency: Patterns & Pitfalls"
	assert.Equal(t, GenerateSlug(title), GenerateSlug(title))
}

func TestGenerateSlug_Shape(t *testing.T) {
	titles := []string{"--a--b--", "a  b", "Ω mega ✓ ok", "x/y\\z", "東京 tokyo"}
	for _, title := range titles {
		slug := GenerateSlug(title)
		assert.NotContains(t, slug, "--", title)
		assert.False(t, strings.HasPrefix(slug, "-"), title)
		assert.False(t, strings.HasSuffix(slug, "-"), title)
		for _, r := range slug {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, ok, "unexpected %q in %q", r, slug)
		}
	}
}
