package card

import (
	"fmt"
	"strings"
	"testing"

	"github.com/devchronicle/chronicle/pkg/report"
)

func calendarOfWeeks(n int) *report.ContributionCalendar {
	cal := &report.ContributionCalendar{Total: 100}
	for i := 0; i < n; i++ {
		week := report.ContributionWeek{}
		for d := 0; d < 7; d++ {
			week.Days = append(week.Days, report.ContributionDay{Level: d % 5})
		}
		cal.Weeks = append(cal.Weeks, week)
	}
	return cal
}

func TestTotalHeightAdditive(t *testing.T) {
	base := &Stats{Profile: &report.Profile{Login: "octocat"}}
	opts := Options{}

	got := totalHeight(base, opts)
	want := headerHeight + topGap + statsBlockHeight + bottomGap
	if got != want {
		t.Errorf("bare height = %d, want %d", got, want)
	}

	withCal := &Stats{Profile: base.Profile, Contributions: calendarOfWeeks(30)}
	if diff := totalHeight(withCal, opts) - got; diff != contribBlockH {
		t.Errorf("calendar added %d, want %d", diff, contribBlockH)
	}

	withZenn := &Stats{Profile: base.Profile, Zenn: &ZennStats{Count: 3, Likes: 40}}
	if diff := totalHeight(withZenn, Options{ZennUser: "writer"}) - got; diff != zennBlockHeight {
		t.Errorf("zenn added %d, want %d", diff, zennBlockHeight)
	}
	// A zenn handle alone, with no stats, adds nothing.
	if h := totalHeight(base, Options{ZennUser: "writer"}); h != got {
		t.Errorf("zenn user without stats changed height: %d", h)
	}

	// Zero-total calendar is treated as absent.
	empty := &Stats{Profile: base.Profile, Contributions: &report.ContributionCalendar{}}
	if h := totalHeight(empty, opts); h != got {
		t.Errorf("empty calendar changed height: %d", h)
	}
}

func TestColumnsBlockHeightIsMaxOfColumns(t *testing.T) {
	tests := []struct {
		langs, repos int
		want         int
	}{
		{0, 0, 0},
		{3, 0, sectionGap + columnHeaderHeight + 3*columnRowHeight},
		{0, 5, sectionGap + columnHeaderHeight + 5*columnRowHeight},
		{2, 5, sectionGap + columnHeaderHeight + 5*columnRowHeight},
		{5, 2, sectionGap + columnHeaderHeight + 5*columnRowHeight},
	}
	for _, tt := range tests {
		if got := columnsBlockHeight(tt.langs, tt.repos); got != tt.want {
			t.Errorf("columnsBlockHeight(%d, %d) = %d, want %d", tt.langs, tt.repos, got, tt.want)
		}
	}
}

func TestRenderEscapesUserText(t *testing.T) {
	s := &Stats{Profile: &report.Profile{Name: `Alice <&> "Dev"`, Login: "alice"}}
	svg := Render(`ali<ce>`, s, Options{})

	if strings.Contains(svg, "Alice <&>") {
		t.Error("profile name not escaped")
	}
	if !strings.Contains(svg, "Alice &lt;&amp;&gt; &quot;Dev&quot;") {
		t.Error("escaped name missing from output")
	}
	if !strings.Contains(svg, "@ali&lt;ce&gt;") {
		t.Error("handle not escaped")
	}
}

func TestRenderThemesStructurallyIdentical(t *testing.T) {
	s := &Stats{
		Profile:       &report.Profile{Login: "octocat", PublicRepos: 8, Followers: 5},
		Commits:       12,
		TopLangs:      []report.LangCount{{Name: "Go", Count: 4}, {Name: "Brainfuck", Count: 1}},
		Contributions: calendarOfWeeks(10),
		Zenn:          &ZennStats{Count: 2, Likes: 9},
	}
	opts := Options{ZennUser: "octo"}

	light := Render("octocat", s, opts)
	dark := Render("octocat", s, Options{Dark: true, Width: opts.Width, ZennUser: opts.ZennUser})

	for _, tag := range []string{"<rect", "<text", "<circle"} {
		if l, d := strings.Count(light, tag), strings.Count(dark, tag); l != d {
			t.Errorf("%s count differs: light %d, dark %d", tag, l, d)
		}
	}
	if !strings.Contains(dark, `fill="#0d1117"`) {
		t.Error("dark theme background missing")
	}
	if !strings.Contains(light, `fill="#ffffff"`) {
		t.Error("light theme background missing")
	}
	// Known language gets its fixed color, unknown falls back to theme gray.
	if !strings.Contains(light, `fill="#00add8"`) {
		t.Error("Go language dot color missing")
	}
	if !strings.Contains(light, `fill="#656d76"`) || !strings.Contains(dark, `fill="#8b949e"`) {
		t.Error("fallback language color missing")
	}
}

func TestRenderWeekWindowTracksWidth(t *testing.T) {
	s := &Stats{Profile: &report.Profile{Login: "octocat"}, Contributions: calendarOfWeeks(60)}

	count := func(svg string) int {
		// Day cells and the 5 legend swatches share rx="1.5".
		return strings.Count(svg, `rx="1.5"`) - 5
	}

	if got := count(Render("octocat", s, Options{})); got != narrowWeeks*7 {
		t.Errorf("default width day cells = %d, want %d", got, narrowWeeks*7)
	}
	if got := count(Render("octocat", s, Options{Width: 800})); got != wideWeeks*7 {
		t.Errorf("wide width day cells = %d, want %d", got, wideWeeks*7)
	}
}

func TestRenderDeclaredHeightMatchesTotal(t *testing.T) {
	s := &Stats{
		Profile:  &report.Profile{Login: "octocat"},
		TopLangs: []report.LangCount{{Name: "Go", Count: 3}},
		TopRepos: []report.Repository{{Name: "app", Stars: 7}, {Name: "tools", Stars: 1}},
	}
	opts := Options{}
	svg := Render("octocat", s, opts)
	want := fmt.Sprintf(`height="%d"`, totalHeight(s, opts))
	if !strings.Contains(svg, want) {
		t.Errorf("declared height %s missing from document", want)
	}
}

func TestErrorCard(t *testing.T) {
	svg := ErrorCard(`User not found: <ghost>`)
	if !strings.Contains(svg, `width="300" height="40"`) {
		t.Error("error card must keep its fixed canvas")
	}
	if !strings.Contains(svg, "User not found: &lt;ghost&gt;") {
		t.Error("error message not escaped")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a-very-long-repository-name", 10, "a-very-lon…"},
		{"日本語のタイトルです", 5, "日本語のタ…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
