package application

// languageColors maps language names to GitHub's official display colors.
var languageColors = map[string]string{
	"JavaScript": "#f1e05a",
	"TypeScript": "#3178c6",
	"Python":     "#3572A5",
	"Java":       "#b07219",
	"C++":        "#f34b7d",
	"C":          "#555555",
	"C#":         "#178600",
	"Go":         "#00ADD8",
	"Rust":       "#dea584",
	"Ruby":       "#701516",
	"PHP":        "#4F5D95",
	"Swift":      "#F05138",
	"Kotlin":     "#A97BFF",
	"Dart":       "#00B4AB",
	"Shell":      "#89e051",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"SCSS":       "#c6538c",
	"Vue":        "#41b883",
	"Svelte":     "#ff3e00",
	"Lua":        "#000080",
	"R":          "#198CE7",
	"Scala":      "#c22d40",
	"Elixir":     "#6e4a7e",
	"Haskell":    "#5e5086",
	"Clojure":    "#db5855",
	"Perl":       "#0298c3",
	"Vim":        "#019933",
	"Dockerfile": "#384d54",
	"Makefile":   "#427819",
	"Jupyter":    "#DA5B0B",
	"Astro":      "#ff5a03",
	"MDX":        "#fcb32c",
}

// defaultLanguageColor is the neutral gray used for languages without an
// assigned color.
const defaultLanguageColor = "#8b949e"

// LanguageColor returns the display color for a language name.
func LanguageColor(language string) string {
	if color, ok := languageColors[language]; ok {
		return color
	}
	return defaultLanguageColor
}
