package report

import (
	"strings"
	"testing"
	"time"
)

func fixtureGitHubData() *GitHubData {
	gh := &GitHubData{
		Profile: Profile{
			Login:       "octocat",
			Name:        "The Octocat",
			Bio:         "Dev https://example.com Twitter: oc",
			PublicRepos: 8,
			Followers:   42,
		},
		Repos: []Repository{
			{Name: "app", Language: "Go", Stars: 10},
			{Name: "tool", Language: "Go", Stars: 3},
			{Name: "site", Language: "TypeScript", Stars: 1},
			{Name: "zenn-content", Stars: 0},
		},
	}

	pr := Event{Type: EventPullRequest, CreatedAt: "2025-01-04T00:00:00Z"}
	pr.Repo.Name = "octocat/app"
	pr.Payload.Action = "opened"
	pr.Payload.PullRequest = &PullRequest{Title: "Add feature", Number: 7}

	issue := Event{Type: EventIssues, CreatedAt: "2025-01-04T01:00:00Z"}
	issue.Repo.Name = "octocat/app"

	gh.Events = []Event{
		pushEvent("octocat/zenn-content", "2025-01-01T00:00:00Z", Commit{SHA: "c1", Message: "add article"}),
		pushEvent("octocat/app", "2025-01-02T00:00:00Z",
			Commit{SHA: "c2", Message: "fix bug\n\ndetails"},
			Commit{SHA: "c3", Message: "add tests"}),
		pr,
		issue,
	}
	return gh
}

func fixtureZennData() *ZennData {
	return &ZennData{Articles: []Article{
		{Title: "Hot take", LikedCount: 12, PublishedAt: "2025-01-03T00:00:00Z", ArticleType: "tech"},
		{Title: "Quiet one", LikedCount: 0, PublishedAt: "2025-01-01T00:00:00Z", ArticleType: "idea"},
	}}
}

func testClock() func() time.Time {
	return func() time.Time { return time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC) }
}

func TestBuildReport(t *testing.T) {
	r := buildAt(fixtureGitHubData(), fixtureZennData(), "octocat", "oc", testClock())

	if !r.HasGitHub() || !r.HasZenn() {
		t.Fatal("both sections should be present")
	}
	if r.TotalCommits != 3 {
		t.Errorf("TotalCommits = %d, want 3", r.TotalCommits)
	}
	if r.ActiveRepos != 2 {
		t.Errorf("ActiveRepos = %d, want 2", r.ActiveRepos)
	}
	if r.PRCount != 1 || r.IssueCount != 1 {
		t.Errorf("PRCount/IssueCount = %d/%d, want 1/1", r.PRCount, r.IssueCount)
	}
	if r.TotalStars != 14 {
		t.Errorf("TotalStars = %d, want 14", r.TotalStars)
	}

	// Product repos lead the push groups even though the content push came first.
	if len(r.PushGroups) != 2 {
		t.Fatalf("PushGroups = %d, want 2", len(r.PushGroups))
	}
	if r.PushGroups[0].Repo != "app" {
		t.Errorf("first group = %q, want app (relevance sort)", r.PushGroups[0].Repo)
	}

	if len(r.TopLanguages) == 0 || r.TopLanguages[0].Name != "Go" || r.TopLanguages[0].Count != 2 {
		t.Errorf("TopLanguages = %+v, want Go×2 first", r.TopLanguages)
	}

	if r.Headline != "The Octocat、直近で3件のコミットを記録" {
		t.Errorf("Headline = %q", r.Headline)
	}
	if strings.Contains(r.Bio, "http") || strings.Contains(r.Bio, "Twitter") {
		t.Errorf("Bio not cleaned: %q", r.Bio)
	}

	// Zero-like articles are excluded from the list but counted.
	if len(r.Articles) != 1 || r.ArticleCount != 2 {
		t.Errorf("Articles/ArticleCount = %d/%d, want 1/2", len(r.Articles), r.ArticleCount)
	}
	if r.TotalLikes != 12 {
		t.Errorf("TotalLikes = %d, want 12", r.TotalLikes)
	}
	if got := r.LatestArticleDaysAgo(); got != 3 {
		t.Errorf("LatestArticleDaysAgo = %d, want 3", got)
	}
}

func TestBuildReportNoCommitsHeadline(t *testing.T) {
	gh := fixtureGitHubData()
	gh.Events = nil

	r := buildAt(gh, nil, "octocat", "", testClock())
	if r.Headline != "The OctocatのGitHub活動レポート" {
		t.Errorf("Headline = %q", r.Headline)
	}
}

func TestBuildReportNilSources(t *testing.T) {
	r := buildAt(nil, nil, "ghost", "", testClock())
	if r.HasGitHub() || r.HasZenn() {
		t.Error("empty report should have no sections")
	}
	if r.GeneratedAt == "" {
		t.Error("GeneratedAt should always be set")
	}
	if r.LatestArticleDaysAgo() != -1 {
		t.Error("no articles should report -1")
	}
}

func TestPushGroupHeadMessages(t *testing.T) {
	g := &PushGroup{Commits: []Commit{
		{Message: "one\nbody"},
		{Message: ""},
		{Message: "two"},
		{Message: "three"},
		{Message: "four"},
	}}

	heads := g.HeadMessages()
	if len(heads) != MaxCommitsShown {
		t.Fatalf("heads = %d, want %d", len(heads), MaxCommitsShown)
	}
	if heads[0] != "one" {
		t.Errorf("first head = %q, want first line only", heads[0])
	}
	if got := g.HiddenCommitCount(); got != 1 {
		t.Errorf("HiddenCommitCount = %d, want 1", got)
	}
}

func TestSummaryMarksContentRepos(t *testing.T) {
	r := buildAt(fixtureGitHubData(), fixtureZennData(), "octocat", "oc", testClock())

	s := r.Summary()
	if !strings.Contains(s, "zenn-content（コンテンツ/ブログ系）") {
		t.Errorf("summary should label content repos:\n%s", s)
	}
	if !strings.Contains(s, "Hot take") {
		t.Errorf("summary should list liked articles:\n%s", s)
	}
}
