package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const PreviewLength = 150

// PlainText trả về text content của HTML fragment, whitespace được gộp lại.
// Nội dung trong <script>/<style> bị bỏ qua.
func PlainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var b strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Script, atom.Style:
				skip++
			case atom.P, atom.Br, atom.Div, atom.Li, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Script, atom.Style:
				if skip > 0 {
					skip--
				}
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// Preview: excerpt nếu có, ngược lại 150 ký tự đầu của plain text + "..."
func Preview(excerpt *string, content string) string {
	if excerpt != nil && strings.TrimSpace(*excerpt) != "" {
		return *excerpt
	}

	text := PlainText(content)
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text + "..."
	}
	runes := []rune(text)
	return string(runes[:PreviewLength]) + "..."
}

// ImageSources returns the src attribute of every <img> in the fragment, in
// document order, without duplicates.
func ImageSources(fragment string) []string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var srcs []string
	seen := make(map[string]struct{})
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return srcs
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if atom.Lookup(name) != atom.Img || !hasAttr {
			continue
		}
		for {
			key, val, more := z.TagAttr()
			if string(key) == "src" && len(val) > 0 {
				src := string(val)
				if _, ok := seen[src]; !ok {
					seen[src] = struct{}{}
					srcs = append(srcs, src)
				}
			}
			if !more {
				break
			}
		}
	}
}

// DroppedImages returns sources present in before but absent from after.
func DroppedImages(before, after string) []string {
	kept := make(map[string]struct{})
	for _, src := range ImageSources(after) {
		kept[src] = struct{}{}
	}

	var dropped []string
	for _, src := range ImageSources(before) {
		if _, ok := kept[src]; !ok {
			dropped = append(dropped, src)
		}
	}
	return dropped
}
