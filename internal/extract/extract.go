package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/imgscribe/imgscribe/internal/model"
)

// Attribute capture patterns. Values must be double-quoted; single-quoted
// and unquoted attributes are deliberately a no-match, not a best-effort
// parse. Attribute order on the line does not matter because the two
// patterns are searched independently.
var (
	namePattern = regexp.MustCompile(`(?i)name\s*=\s*"([^"]*)"`)
	srcPattern  = regexp.MustCompile(`(?i)src\s*=\s*"([^"]*)"`)
)

// ParseImgTag extracts a (name, src) image reference from one line of
// markup. The second return value reports whether the line contained a
// recognizable <img> tag with both attributes; a tag with only one of the
// two is not actionable and yields no match.
//
// Attribute values are HTML-entity-unescaped, so src URLs written as
// "a.png?x=1&amp;y=2" come back with a literal ampersand.
func ParseImgTag(line string) (model.ImageReference, bool) {
	cleaned := strings.TrimSpace(line)
	if cleaned == "" || !strings.Contains(strings.ToLower(cleaned), "<img") {
		return model.ImageReference{}, false
	}

	nameMatch := namePattern.FindStringSubmatch(cleaned)
	srcMatch := srcPattern.FindStringSubmatch(cleaned)
	if nameMatch == nil || srcMatch == nil {
		return model.ImageReference{}, false
	}

	return model.ImageReference{
		Name:      html.UnescapeString(nameMatch[1]),
		SourceURL: html.UnescapeString(srcMatch[1]),
	}, true
}
