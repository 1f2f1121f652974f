package report

import (
	"regexp"
	"strings"
)

var (
	bioURLPattern = regexp.MustCompile(`https?://\S+`)

	// Service-name labels people list in bios ("Qiita: foo / Twitter: bar").
	// The label itself carries no information once its URL is stripped.
	bioLabelPattern = regexp.MustCompile(`(?i)\b(Qiita|Dribbble|Medium|Twitter|X|LinkedIn|Facebook|Instagram|YouTube|Note|Wantedly)\s*:?\s*`)

	bioSeparatorPattern  = regexp.MustCompile(`[|/·・]\s*`)
	bioWhitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanBio strips URLs, social-platform labels, and separator glyphs from a
// free-text bio and collapses it to a single trimmed line. URL and label
// removal run before separator collapsing so that separators orphaned by the
// removals get cleaned up too.
func CleanBio(bio string) string {
	s := bioURLPattern.ReplaceAllString(bio, "")
	s = bioLabelPattern.ReplaceAllString(s, "")
	s = bioSeparatorPattern.ReplaceAllString(s, " ")
	s = bioWhitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
