package extract

import (
	"regexp"
	"strings"
)

var (
	scriptRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	tagRe    = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRe  = regexp.MustCompile(`[\s\x{00A0}]+`)
)

// Normalize collapses an HTML body into flat plain text: script/style
// blocks go away with their contents, remaining tags are stripped,
// non-breaking spaces become plain spaces and every whitespace run is
// collapsed to a single space. Idempotent and total; "" in means "" out.
func Normalize(html string) string {
	if html == "" {
		return ""
	}
	s := scriptRe.ReplaceAllString(html, " ")
	s = styleRe.ReplaceAllString(s, " ")
	s = tagRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
