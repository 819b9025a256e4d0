package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#00ffff"),
		Accent:  lipgloss.Color("#ff00ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"), // Green phosphor
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Primary: lipgloss.Color("#ff6b6b"),
		Accent:  lipgloss.Color("#feca57"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeCyberpunk
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
