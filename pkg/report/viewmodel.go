package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Display limits. Rendering takes only the head of each list.
const (
	MaxPushGroups    = 5
	MaxPREvents      = 5
	MaxArticles      = 8
	MaxTopLanguages  = 5
	MaxFeaturedRepos = 12
	MaxCommitsShown  = 3
)

// LangCount is one entry of the language distribution.
type LangCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Report is the single structure the rendering layer consumes. Built fresh
// per request, discarded after render.
type Report struct {
	GHUser   string `json:"gh_user"`
	ZennUser string `json:"zenn_user"`

	Profile     *Profile `json:"profile,omitempty"`
	DisplayName string   `json:"display_name"`
	Bio         string   `json:"bio"`
	Headline    string   `json:"headline"`
	GeneratedAt string   `json:"generated_at"`

	TotalCommits int `json:"total_commits"`
	ActiveRepos  int `json:"active_repos"`
	TotalStars   int `json:"total_stars"`
	PRCount      int `json:"pr_count"`
	IssueCount   int `json:"issue_count"`

	PushGroups    []*PushGroup          `json:"push_groups,omitempty"`
	PREvents      []Event               `json:"pr_events,omitempty"`
	TopLanguages  []LangCount           `json:"top_languages,omitempty"`
	FeaturedRepos []Repository          `json:"featured_repos,omitempty"`
	Contributions *ContributionCalendar `json:"contributions,omitempty"`

	Articles     []Article `json:"articles,omitempty"`
	ArticleCount int       `json:"article_count"`
	TotalLikes   int       `json:"total_likes"`

	AIComment string   `json:"ai_comment,omitempty"`
	Notices   []string `json:"notices,omitempty"`

	now func() time.Time
}

// HasGitHub reports whether the primary identity resolved.
func (r *Report) HasGitHub() bool { return r.Profile != nil }

// HasZenn reports whether any articles were retrieved.
func (r *Report) HasZenn() bool { return r.ArticleCount > 0 }

// LatestArticleDaysAgo is the sidebar "days since last post" figure, or -1
// when there are no articles.
func (r *Report) LatestArticleDaysAgo() int {
	if len(r.Articles) == 0 {
		return -1
	}
	return daysAgoAt(r.Articles[0].PublishedAt, r.now())
}

// IsContent reports whether the group's repository is a content archive.
func (g *PushGroup) IsContent() bool { return IsContentRepo(g.Repo) }

// HeadMessages returns the first line of up to MaxCommitsShown non-empty
// commit messages.
func (g *PushGroup) HeadMessages() []string {
	var heads []string
	for _, c := range g.Commits {
		if c.Message == "" {
			continue
		}
		if len(heads) == MaxCommitsShown {
			break
		}
		head, _, _ := strings.Cut(c.Message, "\n")
		heads = append(heads, head)
	}
	return heads
}

// HiddenCommitCount is how many non-empty commit messages overflow the
// compact view.
func (g *PushGroup) HiddenCommitCount() int {
	n := 0
	for _, c := range g.Commits {
		if c.Message != "" {
			n++
		}
	}
	if n <= MaxCommitsShown {
		return 0
	}
	return n - MaxCommitsShown
}

// Build combines the classifier, aggregator, sorter and formatter outputs
// with the raw upstream data into the render view model. Either source may
// be nil; the report renders whatever is present.
func Build(gh *GitHubData, zenn *ZennData, ghUser, zennUser string) *Report {
	return buildAt(gh, zenn, ghUser, zennUser, time.Now)
}

func buildAt(gh *GitHubData, zenn *ZennData, ghUser, zennUser string, now func() time.Time) *Report {
	r := &Report{
		GHUser:      ghUser,
		ZennUser:    zennUser,
		GeneratedAt: FormatDate(now().UTC().Format(time.RFC3339)),
		now:         now,
	}

	if gh != nil {
		profile := gh.Profile
		r.Profile = &profile
		r.DisplayName = profile.Name
		if r.DisplayName == "" {
			r.DisplayName = ghUser
		}
		r.Bio = CleanBio(profile.Bio)
		r.Contributions = gh.Contributions

		var pushEvents, prEvents []Event
		activeRepos := make(map[string]struct{})
		for _, e := range gh.Events {
			if e.Repo.Name != "" {
				activeRepos[e.Repo.Name] = struct{}{}
			}
			switch e.Type {
			case EventPush:
				pushEvents = append(pushEvents, e)
				r.TotalCommits += len(e.Payload.Commits)
			case EventPullRequest:
				prEvents = append(prEvents, e)
			case EventIssues, EventIssueComment:
				r.IssueCount++
			}
		}
		r.ActiveRepos = len(activeRepos)
		r.PRCount = len(prEvents)

		groups := GroupPushEvents(SortEventsByRelevance(pushEvents))
		if len(groups) > MaxPushGroups {
			groups = groups[:MaxPushGroups]
		}
		r.PushGroups = groups

		sorted := SortEventsByRelevance(prEvents)
		if len(sorted) > MaxPREvents {
			sorted = sorted[:MaxPREvents]
		}
		r.PREvents = sorted

		langs := make(map[string]int)
		for _, repo := range gh.Repos {
			r.TotalStars += repo.Stars
			if repo.Language != "" {
				langs[repo.Language]++
			}
		}
		r.TopLanguages = topLanguages(langs, MaxTopLanguages)

		featured := gh.Repos
		if len(featured) > MaxFeaturedRepos {
			featured = featured[:MaxFeaturedRepos]
		}
		r.FeaturedRepos = featured

		if r.TotalCommits > 0 {
			r.Headline = fmt.Sprintf("%s、直近で%d件のコミットを記録", r.DisplayName, r.TotalCommits)
		} else {
			r.Headline = fmt.Sprintf("%sのGitHub活動レポート", r.DisplayName)
		}
	}

	if zenn != nil {
		r.ArticleCount = len(zenn.Articles)
		for _, a := range zenn.Articles {
			r.TotalLikes += a.LikedCount
			if a.LikedCount > 0 && len(r.Articles) < MaxArticles {
				r.Articles = append(r.Articles, a)
			}
		}
	}

	return r
}

// topLanguages ranks the language counts, highest first, ties broken by name
// for deterministic output.
func topLanguages(counts map[string]int, limit int) []LangCount {
	ranked := make([]LangCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, LangCount{Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
