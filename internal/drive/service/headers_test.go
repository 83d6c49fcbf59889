package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		filename string
		want     string
	}{
		{
			name:     "Plain",
			kind:     dispositionAttachment,
			filename: "Reports.zip",
			want:     `attachment; filename="Reports.zip"`,
		},
		{
			name:     "QuotesEscaped",
			kind:     dispositionAttachment,
			filename: `say "hi"\.txt`,
			want:     `attachment; filename="say \"hi\"\\.txt"`,
		},
		{
			name:     "NonASCII",
			kind:     dispositionAttachment,
			filename: "báo cáo.zip",
			want:     `attachment; filename="b_o c_o.zip"; filename*=UTF-8''b%C3%A1o%20c%C3%A1o.zip`,
		},
		{
			name:     "Inline",
			kind:     dispositionInline,
			filename: "a b.png",
			want:     `inline; filename="a b.png"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contentDisposition(tt.kind, tt.filename))
		})
	}
}

func TestStreamHeaders_DefaultType(t *testing.T) {
	h := streamHeaders("", "inline")
	assert.Equal(t, "application/octet-stream", h["Content-Type"])
	assert.Equal(t, "inline", h["Content-Disposition"])
}
