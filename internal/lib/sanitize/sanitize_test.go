package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain text", input: "Hot meals for everyone", want: "Hot meals for everyone"},
		{name: "strips tags", input: "<b>Bahri</b> kitchen", want: "Bahri kitchen"},
		{name: "removes script", input: "Hello<script>alert('x')</script>", want: "Hello"},
		{name: "trims spaces", input: "  Omdurman  ", want: "Omdurman"},
		{name: "keeps punctuation", input: "Children's meals & snacks", want: "Children's meals & snacks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Plain(tt.input))
		})
	}
}

func TestRich(t *testing.T) {
	assert.Equal(t, "<p><strong>Bold</strong> and <em>italic</em></p>", Rich("<p><strong>Bold</strong> and <em>italic</em></p>"))
	assert.Equal(t, "<p>Hello</p>", Rich("<p>Hello</p><script>alert('xss')</script>"))

	out := Rich(`<a href="javascript:alert('xss')">Click</a>`)
	assert.NotContains(t, out, "javascript:")

	out = Rich(`<a href="https://example.com">Link</a>`)
	assert.Contains(t, out, "https://example.com")
}
