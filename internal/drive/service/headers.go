package service

import (
	"strings"
	"unicode/utf8"
)

const (
	dispositionAttachment = "attachment"
	dispositionInline     = "inline"
)

// contentDisposition renders a Content-Disposition value for an arbitrary file name.
// Names outside printable ASCII get an ASCII fallback plus an RFC 5987 filename* parameter.
func contentDisposition(kind, filename string) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteString(`; filename="`)
	b.WriteString(quoteFallback(filename))
	b.WriteByte('"')

	if !isPrintableASCII(filename) {
		b.WriteString("; filename*=UTF-8''")
		b.WriteString(encodeExtValue(filename))
	}
	return b.String()
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

func quoteFallback(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r > 0x7e || r == utf8.RuneError:
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func encodeExtValue(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}

func streamHeaders(contentType, disposition string) map[string]string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return map[string]string{
		"Content-Type":        contentType,
		"Content-Disposition": disposition,
	}
}
