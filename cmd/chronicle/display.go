package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/devchronicle/chronicle/pkg/report"
)

func displayJSON(rep *report.Report) error {
	data, err := report.MarshalIndent(rep)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = os.Stdout.Write(data)
	return err
}

// newKVTable builds a bare two-column table: no borders, no separators,
// left-aligned.
func newKVTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.SeparatorsNone,
				Lines:      tw.LinesNone,
			},
		}),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
	)
}

// newListTable keeps a separator between columns but drops all borders and
// horizontal lines.
func newListTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenColumns: tw.On},
				Lines:      tw.LinesNone,
			},
		}),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
	)
}

func displayTable(rep *report.Report) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	blue := color.New(color.FgBlue)

	cyan.Println("\n" + strings.Repeat("=", 80))
	cyan.Println("  週刊デベロッパー・クロニクル")
	if rep.Headline != "" {
		cyan.Printf("  %s\n", rep.Headline)
	}
	cyan.Println(strings.Repeat("=", 80))

	if rep.HasGitHub() {
		fmt.Println()
		green.Println("👤 PROFILE")
		fmt.Println(strings.Repeat("-", 80))

		table := newKVTable(os.Stdout)
		table.Header("Field", "Value")
		if rep.DisplayName != "" {
			table.Append("Name", rep.DisplayName)
		}
		table.Append("Username", rep.GHUser)
		if rep.Bio != "" {
			table.Append("Bio", clip(rep.Bio, 60))
		}
		if rep.Profile.Location != "" {
			table.Append("Location", rep.Profile.Location)
		}
		table.Append("Followers", fmt.Sprintf("%d", rep.Profile.Followers))
		table.Append("Public Repos", fmt.Sprintf("%d", rep.Profile.PublicRepos))
		table.Render()

		fmt.Println()
		green.Println("📈 RECENT ACTIVITY")
		fmt.Println(strings.Repeat("-", 80))

		table = newKVTable(os.Stdout)
		table.Header("Metric", "Value")
		table.Append("Commits", fmt.Sprintf("%d", rep.TotalCommits))
		table.Append("Active Repositories", fmt.Sprintf("%d", rep.ActiveRepos))
		table.Append("Pull Requests", fmt.Sprintf("%d", rep.PRCount))
		table.Append("Issue Activity", fmt.Sprintf("%d", rep.IssueCount))
		table.Append("Total Stars", fmt.Sprintf("%d ⭐", rep.TotalStars))
		table.Render()
	}

	if len(rep.PushGroups) > 0 {
		fmt.Println()
		green.Println("🔨 RECENT PUSHES")
		fmt.Println(strings.Repeat("-", 80))

		table := newListTable(os.Stdout)
		table.Header("Repository", "Commits", "Latest")
		for _, g := range rep.PushGroups {
			name := g.Repo
			if g.IsContent() {
				name += " (content)"
			}
			table.Append(name, fmt.Sprintf("%d", len(g.Commits)), report.ShortDate(g.LatestDate))
		}
		table.Render()
	}

	if len(rep.TopLanguages) > 0 {
		fmt.Println()
		green.Println("💻 TOP LANGUAGES")
		fmt.Println(strings.Repeat("-", 80))

		table := newListTable(os.Stdout)
		table.Header("Language", "Repositories")
		for _, l := range rep.TopLanguages {
			table.Append(l.Name, fmt.Sprintf("%d", l.Count))
		}
		table.Render()
	}

	if rep.HasZenn() {
		fmt.Println()
		green.Println("📝 ZENN")
		fmt.Println(strings.Repeat("-", 80))

		table := newKVTable(os.Stdout)
		table.Header("Metric", "Value")
		table.Append("Articles", fmt.Sprintf("%d", rep.ArticleCount))
		table.Append("Total Likes", fmt.Sprintf("%d", rep.TotalLikes))
		if days := rep.LatestArticleDaysAgo(); days >= 0 {
			table.Append("Latest Post", fmt.Sprintf("%d days ago", days))
		}
		table.Render()

		for _, a := range rep.Articles {
			fmt.Printf("  ♥ %-4d %s\n", a.LikedCount, a.Title)
		}
	}

	fmt.Println()
	blue.Println(strings.Repeat("-", 80))
	blue.Printf("Generated: %s\n", rep.GeneratedAt)
	blue.Println(strings.Repeat("=", 80))
	fmt.Println()
}

func clip(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}

func displaySuccess(message string) {
	green := color.New(color.FgGreen)
	green.Printf("✓ %s\n", message)
}

func displayWarning(message string) {
	yellow := color.New(color.FgYellow)
	yellow.Printf("⚠ %s\n", message)
}

func displayError(message string) {
	red := color.New(color.FgRed, color.Bold)
	red.Printf("✗ %s\n", message)
}
