package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "keeps formatting tags",
			input: "<p>hello <b>world</b> and <i>friends</i></p>",
			want:  "<p>hello <b>world</b> and <i>friends</i></p>",
		},
		{
			name:  "strips script",
			input: `<p>hi</p><script>alert("x")</script>`,
			want:  "<p>hi</p>",
		},
		{
			name:  "strips event handlers",
			input: `<p onclick="steal()">hi</p>`,
			want:  "<p>hi</p>",
		},
		{
			name:  "strips javascript urls",
			input: `<a href="javascript:alert(1)">go</a>`,
			want:  "go",
		},
		{
			name:  "trims whitespace",
			input: "  <p>hi</p>  ",
			want:  "<p>hi</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Body(tt.input))
		})
	}
}

func TestPlain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", Plain("<b>hello</b>"))
	assert.Equal(t, "", Plain("<script>alert(1)</script>"))
}
