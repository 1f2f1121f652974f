package report

import (
	"fmt"
	"strings"
)

// Summary renders the report as a plain-text digest, the payload handed to
// the AI commentary endpoint. Content repositories are labeled so the editor
// prompt can tell article archives apart from product work.
func (r *Report) Summary() string {
	var b strings.Builder

	if r.HasGitHub() {
		fmt.Fprintf(&b, "GitHubユーザー: %s (@%s)\n", r.DisplayName, r.GHUser)
		if r.Bio != "" {
			fmt.Fprintf(&b, "プロフィール: %s\n", r.Bio)
		}
		fmt.Fprintf(&b, "直近のコミット数: %d、アクティブリポジトリ: %d件、PR活動: %d件、Issue活動: %d件\n",
			r.TotalCommits, r.ActiveRepos, r.PRCount, r.IssueCount)
		fmt.Fprintf(&b, "公開リポジトリ: %d件、合計スター: %d\n", r.Profile.PublicRepos, r.TotalStars)

		for _, g := range r.PushGroups {
			kind := ""
			if g.IsContent() {
				kind = "（コンテンツ/ブログ系）"
			}
			fmt.Fprintf(&b, "- %s%s: コミット%d件 / プッシュ%d回\n", g.Repo, kind, len(g.Commits), g.PushCount)
			for _, msg := range g.HeadMessages() {
				fmt.Fprintf(&b, "    %s\n", msg)
			}
		}

		if len(r.TopLanguages) > 0 {
			names := make([]string, len(r.TopLanguages))
			for i, l := range r.TopLanguages {
				names[i] = l.Name
			}
			fmt.Fprintf(&b, "主要言語: %s\n", strings.Join(names, ", "))
		}
	}

	if r.HasZenn() {
		fmt.Fprintf(&b, "Zenn (%s): 記事%d本、合計%dいいね\n", r.ZennUser, r.ArticleCount, r.TotalLikes)
		for _, a := range r.Articles {
			fmt.Fprintf(&b, "- %s (%dいいね)\n", a.Title, a.LikedCount)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
