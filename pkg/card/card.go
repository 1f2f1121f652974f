// Package card renders a developer activity summary as a standalone SVG
// document. One parameterized engine covers the light and dark themes and
// both canvas widths; optional sections add their height to the canvas only
// when present.
package card

import (
	"fmt"
	"strings"

	"github.com/devchronicle/chronicle/pkg/report"
)

// Layout constants. The canvas height is the sum of the blocks actually
// rendered, so every block owns a fixed increment including its leading gap.
const (
	DefaultWidth = 420
	wideWidth    = 800 // at or above this, the calendar shows a full year

	narrowWeeks = 26
	wideWeeks   = 52

	headerHeight = 50
	topGap       = 12
	bottomGap    = 20
	sectionGap   = 12
	titleHeight  = 16

	statRowHeight = 20
	statRowCount  = 5

	cellSize         = 8
	cellGap          = 2
	cellStep         = cellSize + cellGap
	contribGridRows  = 7
	contribGridH     = contribGridRows*cellStep + 6
	contribBlockH    = sectionGap + titleHeight + contribGridH
	statsBlockHeight = titleHeight + statRowCount*statRowHeight

	columnHeaderHeight = 16
	columnRowHeight    = 20

	zennBlockHeight = sectionGap + titleHeight + statRowHeight

	maxNameRunes = 32
	maxRepoRunes = 22
)

// ZennStats is the compact article summary shown on the card.
type ZennStats struct {
	Count int
	Likes int
}

// Stats is everything the renderer can draw. Nil or empty optional fields
// drop their section from the document.
type Stats struct {
	Profile       *report.Profile
	Commits       int
	PRs           int
	Stars         int
	TopLangs      []report.LangCount
	TopRepos      []report.Repository
	Contributions *report.ContributionCalendar
	Zenn          *ZennStats
}

// Options selects theme and geometry.
type Options struct {
	Dark     bool
	Width    int // 0 means DefaultWidth
	ZennUser string
}

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultWidth
	}
	return o.Width
}

func (o Options) weekWindow() int {
	if o.width() >= wideWidth {
		return wideWeeks
	}
	return narrowWeeks
}

func (s *Stats) hasContrib() bool {
	return s.Contributions != nil && s.Contributions.Total > 0
}

func (s *Stats) hasColumns() bool {
	return len(s.TopLangs) > 0 || len(s.TopRepos) > 0
}

func (s *Stats) hasZenn(opts Options) bool {
	return s.Zenn != nil && opts.ZennUser != ""
}

func columnHeight(rows int) int {
	if rows == 0 {
		return 0
	}
	return columnHeaderHeight + rows*columnRowHeight
}

func columnsBlockHeight(langs, repos int) int {
	h := max(columnHeight(langs), columnHeight(repos))
	if h == 0 {
		return 0
	}
	return sectionGap + h
}

// totalHeight is the additive canvas height. With no optional sections it is
// exactly header + stats + padding.
func totalHeight(s *Stats, opts Options) int {
	h := headerHeight + topGap + statsBlockHeight + bottomGap
	if s.hasContrib() {
		h += contribBlockH
	}
	if s.hasColumns() {
		h += columnsBlockHeight(len(s.TopLangs), len(s.TopRepos))
	}
	if s.hasZenn(opts) {
		h += zennBlockHeight
	}
	return h
}

// Render produces the full SVG document for one user's stats.
func Render(ghUser string, s *Stats, opts Options) string {
	t := themeFor(opts.Dark)
	width := opts.width()
	height := totalHeight(s, opts)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" fill="none">`,
		width, height, width, height)
	fmt.Fprintf(&b, `<style>.t{font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Helvetica,Arial,sans-serif}.main{fill:%s}.sub{fill:%s}.accent{fill:%s}</style>`,
		t.textMain, t.textSub, t.accent)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" rx="6" fill="%s" stroke="%s" stroke-width="1"/>`,
		width, height, t.bg, t.border)

	renderHeader(&b, t, width, ghUser, s.Profile, opts.ZennUser)

	y := headerHeight + topGap
	if s.hasContrib() {
		renderContrib(&b, t, y, s.Contributions, opts.weekWindow())
		y += contribBlockH
	}
	renderStatsBlock(&b, t, width, y, s)
	y += statsBlockHeight
	if s.hasColumns() {
		renderColumns(&b, t, width, y, s.TopLangs, s.TopRepos)
		y += columnsBlockHeight(len(s.TopLangs), len(s.TopRepos))
	}
	if s.hasZenn(opts) {
		renderZenn(&b, t, y, s.Zenn)
	}

	b.WriteString(`</svg>`)
	return b.String()
}

// ErrorCard is the fixed small graphic returned when no report can be drawn.
func ErrorCard(message string) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="300" height="40"><text x="10" y="25" font-size="14" fill="#cf222e">%s</text></svg>`,
		escapeXML(message))
}

func renderHeader(b *strings.Builder, t theme, width int, ghUser string, p *report.Profile, zennUser string) {
	displayName := ghUser
	if p != nil {
		if p.Name != "" {
			displayName = p.Name
		} else if p.Login != "" {
			displayName = p.Login
		}
	}

	fmt.Fprintf(b, `<rect width="%d" height="%d" rx="6" fill="%s"/>`, width, headerHeight, t.headerBg)
	fmt.Fprintf(b, `<rect x="0" y="%d" width="%d" height="6" fill="%s"/>`, headerHeight-6, width, t.headerBg)
	fmt.Fprintf(b, `<line x1="0" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`,
		headerHeight, width, headerHeight, t.border)
	fmt.Fprintf(b, `<text x="20" y="28" class="t main" font-size="15" font-weight="600">%s</text>`,
		escapeXML(truncate(displayName, maxNameRunes)))

	handle := "@" + ghUser
	if zennUser != "" {
		handle += " / Zenn: " + zennUser
	}
	fmt.Fprintf(b, `<text x="20" y="43" class="t sub" font-size="11">%s</text>`, escapeXML(handle))
}

func renderContrib(b *strings.Builder, t theme, y int, cal *report.ContributionCalendar, window int) {
	y += sectionGap
	fmt.Fprintf(b, `<text x="20" y="%d" class="t main" font-size="12" font-weight="600">%d contributions in the last year</text>`,
		y+titleHeight-4, cal.Total)
	y += titleHeight

	weeks := cal.Weeks
	if len(weeks) > window {
		weeks = weeks[len(weeks)-window:]
	}

	const graphX = 20
	for wi, w := range weeks {
		for di, d := range w.Days {
			level := d.Level
			if level < 0 || level > 4 {
				level = 0
			}
			fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" rx="1.5" fill="%s"/>`,
				graphX+wi*cellStep, y+di*cellStep, cellSize, cellSize, t.contrib[level])
		}
	}

	// Legend to the right of the grid.
	legendX := graphX + len(weeks)*cellStep + 8
	legendY := y + contribGridRows*cellStep - 8
	fmt.Fprintf(b, `<text x="%d" y="%d" class="t sub" font-size="8" text-anchor="end">Less</text>`, legendX-4, legendY)
	for i, c := range t.contrib {
		fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" rx="1.5" fill="%s"/>`,
			legendX+i*12, legendY-7, cellSize, cellSize, c)
	}
	fmt.Fprintf(b, `<text x="%d" y="%d" class="t sub" font-size="8">More</text>`, legendX+5*12+2, legendY)
}

func renderStatsBlock(b *strings.Builder, t theme, width, y int, s *Stats) {
	fmt.Fprintf(b, `<text x="20" y="%d" class="t accent" font-size="11" font-weight="600">GitHub Stats</text>`,
		y+titleHeight-4)
	y += titleHeight

	publicRepos, followers := 0, 0
	if s.Profile != nil {
		publicRepos = s.Profile.PublicRepos
		followers = s.Profile.Followers
	}
	rows := [statRowCount]struct {
		label string
		value int
	}{
		{"Commits (recent)", s.Commits},
		{"Pull Requests", s.PRs},
		{"Stars", s.Stars},
		{"Public Repos", publicRepos},
		{"Followers", followers},
	}
	for _, row := range rows {
		y += statRowHeight
		fmt.Fprintf(b, `<text x="20" y="%d" class="t sub" font-size="12">%s</text>`, y-6, row.label)
		fmt.Fprintf(b, `<text x="%d" y="%d" class="t main" font-size="12" font-weight="600" text-anchor="end">%d</text>`,
			width-20, y-6, row.value)
	}
}

func renderColumns(b *strings.Builder, t theme, width, y int, langs []report.LangCount, repos []report.Repository) {
	y += sectionGap
	rightX := width/2 + 10

	if len(langs) > 0 {
		fmt.Fprintf(b, `<text x="20" y="%d" class="t accent" font-size="11" font-weight="600">Top Languages</text>`,
			y+columnHeaderHeight-4)
		rowY := y + columnHeaderHeight
		for _, l := range langs {
			rowY += columnRowHeight
			fmt.Fprintf(b, `<circle cx="24" cy="%d" r="4" fill="%s"/>`, rowY-10, t.langColor(l.Name))
			fmt.Fprintf(b, `<text x="34" y="%d" class="t main" font-size="11">%s</text>`,
				rowY-6, escapeXML(truncate(l.Name, maxRepoRunes)))
			fmt.Fprintf(b, `<text x="%d" y="%d" class="t sub" font-size="11" text-anchor="end">%d</text>`,
				rightX-20, rowY-6, l.Count)
		}
	}

	if len(repos) > 0 {
		fmt.Fprintf(b, `<text x="%d" y="%d" class="t accent" font-size="11" font-weight="600">Top Repositories</text>`,
			rightX, y+columnHeaderHeight-4)
		rowY := y + columnHeaderHeight
		for _, r := range repos {
			rowY += columnRowHeight
			fmt.Fprintf(b, `<text x="%d" y="%d" class="t main" font-size="11">%s</text>`,
				rightX, rowY-6, escapeXML(truncate(r.Name, maxRepoRunes)))
			fmt.Fprintf(b, `<text x="%d" y="%d" class="t sub" font-size="11" text-anchor="end">★ %d</text>`,
				width-20, rowY-6, r.Stars)
		}
	}
}

func renderZenn(b *strings.Builder, t theme, y int, z *ZennStats) {
	y += sectionGap
	fmt.Fprintf(b, `<text x="20" y="%d" class="t accent" font-size="11" font-weight="600">Zenn</text>`,
		y+titleHeight-4)
	y += titleHeight + statRowHeight
	fmt.Fprintf(b, `<text x="20" y="%d" class="t sub" font-size="12">Articles</text>`, y-6)
	fmt.Fprintf(b, `<text x="150" y="%d" class="t main" font-size="12" font-weight="600">%d</text>`, y-6, z.Count)
	fmt.Fprintf(b, `<text x="200" y="%d" class="t sub" font-size="12">Likes</text>`, y-6)
	fmt.Fprintf(b, `<text x="300" y="%d" class="t main" font-size="12" font-weight="600">%d</text>`, y-6, z.Likes)
}
