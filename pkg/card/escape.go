package card

import "strings"

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escapeXML escapes the five XML-significant characters. Every user-supplied
// string passes through here before insertion into the document.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// truncate caps s at max runes, appending an ellipsis only when something
// was actually cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
