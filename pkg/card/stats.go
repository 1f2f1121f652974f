package card

import "github.com/devchronicle/chronicle/pkg/report"

// maxCardRepos caps the top-repositories column.
const maxCardRepos = 5

// StatsFromReport projects the page view model onto the card's inputs.
func StatsFromReport(rep *report.Report) *Stats {
	s := &Stats{
		Profile:       rep.Profile,
		Commits:       rep.TotalCommits,
		PRs:           rep.PRCount,
		Stars:         rep.TotalStars,
		TopLangs:      rep.TopLanguages,
		Contributions: rep.Contributions,
	}
	repos := rep.FeaturedRepos
	if len(repos) > maxCardRepos {
		repos = repos[:maxCardRepos]
	}
	s.TopRepos = repos
	if rep.HasZenn() {
		s.Zenn = &ZennStats{Count: rep.ArticleCount, Likes: rep.TotalLikes}
	}
	return s
}
