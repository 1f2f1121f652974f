package report

import "regexp"

// RepoKind is the derived classification of a repository name.
type RepoKind string

const (
	// KindProduct is a code repository.
	KindProduct RepoKind = "product"
	// KindContent is a blog/article archive repository.
	KindContent RepoKind = "content"
)

// contentRepoPattern matches a hyphen- or underscore-prefixed token that
// marks a repository as a blog/article archive, e.g. "zenn-content",
// "my_blog", "dev-posts".
var contentRepoPattern = regexp.MustCompile(`(?i)[-_](content|blog|articles|posts|zenn)`)

// IsContentRepo reports whether a repository name (bare or owner/name)
// denotes a content archive rather than a product. Empty input is product.
func IsContentRepo(name string) bool {
	return contentRepoPattern.MatchString(name)
}

// Classify returns the derived kind for a repository name.
func Classify(name string) RepoKind {
	if IsContentRepo(name) {
		return KindContent
	}
	return KindProduct
}

// PRColor returns the display color for a pull-request action verb.
func PRColor(action string) string {
	switch action {
	case "merged":
		return "#238636"
	case "opened":
		return "#6f42c1"
	case "closed":
		return "#cf222e"
	default:
		return "#666"
	}
}
