package card

// theme holds every color the renderer emits. Light and dark produce the
// same element graph with different fill values.
type theme struct {
	bg           string
	border       string
	textMain     string
	textSub      string
	accent       string
	headerBg     string
	langFallback string
	contrib      [5]string // index 0 = no activity
}

var lightTheme = theme{
	bg:           "#ffffff",
	border:       "#d0d7de",
	textMain:     "#1f2328",
	textSub:      "#656d76",
	accent:       "#0969da",
	headerBg:     "#f6f8fa",
	langFallback: "#656d76",
	contrib:      [5]string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"},
}

var darkTheme = theme{
	bg:           "#0d1117",
	border:       "#30363d",
	textMain:     "#c9d1d9",
	textSub:      "#8b949e",
	accent:       "#58a6ff",
	headerBg:     "#161b22",
	langFallback: "#8b949e",
	contrib:      [5]string{"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"},
}

// langColors follows the conventional per-language palette. Anything not
// listed gets the theme's fallback gray.
var langColors = map[string]string{
	"Go":         "#00add8",
	"TypeScript": "#3178c6",
	"JavaScript": "#f1e05a",
	"Python":     "#3572a5",
	"Rust":       "#dea584",
	"Ruby":       "#701516",
	"Java":       "#b07219",
	"Kotlin":     "#a97bff",
	"Swift":      "#f05138",
	"Dart":       "#00b4ab",
	"C":          "#555555",
	"C++":        "#f34b7d",
	"C#":         "#178600",
	"PHP":        "#4f5d95",
	"Shell":      "#89e051",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"Vue":        "#41b883",
	"Elixir":     "#6e4a7e",
	"Haskell":    "#5e5086",
	"Scala":      "#c22d40",
	"Lua":        "#000080",
	"Zig":        "#ec915c",
}

func (t theme) langColor(name string) string {
	if c, ok := langColors[name]; ok {
		return c
	}
	return t.langFallback
}

func themeFor(dark bool) theme {
	if dark {
		return darkTheme
	}
	return lightTheme
}
