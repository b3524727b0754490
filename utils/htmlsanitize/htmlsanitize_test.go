package htmlsanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain formatting kept",
			input: "<p>Intro <strong>bold</strong> and <em>em</em></p>",
			want:  "<p>Intro <strong>bold</strong> and <em>em</em></p>",
		},
		{
			name:  "script removed with content",
			input: "<p>Hi<script>alert(1)</script></p>",
			want:  "<p>Hi</p>",
		},
		{
			name:  "event handler attribute dropped",
			input: `<p onclick="steal()" class="lead">x</p>`,
			want:  `<p class="lead">x</p>`,
		},
		{
			name:  "javascript href dropped",
			input: `<a href="JavaScript:alert(1)" title="t">x</a>`,
			want:  `<a title="t">x</a>`,
		},
		{
			name:  "https href kept",
			input: `<a href="https://cse.example.edu/a?b=1&amp;c=2">x</a>`,
			want:  `<a href="https://cse.example.edu/a?b=1&amp;c=2">x</a>`,
		},
		{
			name:  "relative src kept",
			input: `<img src="/uploads/images/a.png" alt="lab">`,
			want:  `<img src="/uploads/images/a.png" alt="lab">`,
		},
		{
			name:  "unknown tag unwrapped",
			input: "<custom>inner</custom>",
			want:  "inner",
		},
		{
			name:  "text escaped",
			input: "a &lt; b",
			want:  "a &lt; b",
		},
		{
			name:  "table attributes",
			input: `<table><tr><td colspan="2" style="color:red">x</td></tr></table>`,
			want:  `<table><tr><td colspan="2">x</td></tr></table>`,
		},
		{
			name:  "self closing br",
			input: "line<br/>next",
			want:  "line<br />next",
		},
		{
			name:  "comments dropped",
			input: "a<!-- secret -->b",
			want:  "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}
