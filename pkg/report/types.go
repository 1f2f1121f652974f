// Package report shapes raw GitHub and Zenn feed data into the view model
// rendered by the weekly chronicle page, the embed view, and the SVG card.
package report

import "encoding/json"

// Profile is a snapshot of a GitHub user profile, fetched once per report.
type Profile struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

// Commit is a single commit carried by a push event. Only the first line of
// the message is shown in compact views.
type Commit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
}

// PullRequest is the subset of pull-request metadata an event payload carries.
type PullRequest struct {
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
	Number  int    `json:"number"`
}

// EventPayload holds the type-specific fields the report reads. Unknown
// upstream fields are ignored.
type EventPayload struct {
	Action      string       `json:"action,omitempty"`
	Commits     []Commit     `json:"commits,omitempty"`
	PullRequest *PullRequest `json:"pull_request,omitempty"`
}

// Event is a timestamped public event. Events arrive most-recent-first from
// the source but ordering is not guaranteed.
type Event struct {
	Type string `json:"type"`
	Repo struct {
		Name string `json:"name"` // owner/name
	} `json:"repo"`
	CreatedAt string       `json:"created_at"` // ISO-8601
	Payload   EventPayload `json:"payload"`
}

// Event type tags as reported by the GitHub events API.
const (
	EventPush         = "PushEvent"
	EventPullRequest  = "PullRequestEvent"
	EventIssues       = "IssuesEvent"
	EventIssueComment = "IssueCommentEvent"
)

// Repository is a repository summary. Its kind (product vs content) is
// derived from the name on every render, never stored.
type Repository struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	UpdatedAt   string `json:"updated_at"`
	HTMLURL     string `json:"html_url"`
}

// ContributionDay is one cell of the contribution calendar. Level is the
// 0..4 quartile bucket supplied by the GraphQL API, not recomputed locally.
type ContributionDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// ContributionWeek is one column of the calendar grid.
type ContributionWeek struct {
	Days []ContributionDay `json:"days"`
}

// ContributionCalendar is a year of per-day activity levels.
type ContributionCalendar struct {
	Total int                `json:"total"`
	Weeks []ContributionWeek `json:"weeks"`
}

// GitHubData bundles everything fetched for one user.
type GitHubData struct {
	Profile       Profile               `json:"profile"`
	Events        []Event               `json:"events"`
	Repos         []Repository          `json:"repos"`
	Contributions *ContributionCalendar `json:"contributions,omitempty"`
}

// Article is a published Zenn article.
type Article struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Emoji       string   `json:"emoji"`
	ArticleType string   `json:"article_type"` // tech | idea
	LikedCount  int      `json:"liked_count"`
	PublishedAt string   `json:"published_at"`
	Path        string   `json:"path"`
	Topics      []string `json:"topics,omitempty"`
}

// ZennData is the article list fetched for one user.
type ZennData struct {
	Articles []Article `json:"articles"`
}

// MarshalIndent renders a value the way the CLI's -format json output wants
// it: two-space indented.
func MarshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
