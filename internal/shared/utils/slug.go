package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSlug is used when a title has no usable characters.
const DefaultSlug = "post"

// GenerateSlug biến title thành slug URL-safe.
//
//	"Hello, World!"   → "hello-world"
//	"Nguyễn Nhật Ánh" → "nguyen-nhat-anh"
//	"Don't Panic"     → "dont-panic"
//	"!!!"             → "post"
func GenerateSlug(title string) string {
	ascii := RemoveDiacritics(title)

	var b strings.Builder
	b.Grow(len(ascii))
	pendingHyphen := false

	for _, r := range strings.ToLower(ascii) {
		switch {
		case r == '\'' || r == '’':
			// "don't" → "dont", không tách từ
			continue
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}

	if b.Len() == 0 {
		return DefaultSlug
	}
	return b.String()
}

// RemoveDiacritics (tất cả các tone của "a" => "a")
// NFD tách dấu thành combining marks, sau đó bỏ marks. đ/Đ không phân rã nên map tay.
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		out = input
	}
	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
}
