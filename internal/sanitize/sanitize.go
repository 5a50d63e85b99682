// Package sanitize filters user-submitted rich text down to a safe HTML
// subset before it is stored. Everything outside the allow list is stripped,
// so stored bodies can be rendered without further escaping.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Body sanitizes serialized rich-text HTML from the post editor.
func Body(html string) string {
	return strings.TrimSpace(policy.Sanitize(html))
}

// Plain strips all markup, leaving only text content. Used for fields that
// must never carry HTML, like titles and comments.
func Plain(s string) string {
	return strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(s))
}
