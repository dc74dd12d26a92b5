package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the live view.
type Theme struct {
	Name    string
	Liquid  lipgloss.Color
	Header  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeOcean = Theme{
		Name:    "ocean",
		Liquid:  lipgloss.Color("#00a8cc"),
		Header:  lipgloss.Color("#0077be"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Accent:  lipgloss.Color("#ffd700"),
		Warning: lipgloss.Color("#ff4444"),
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Liquid:  lipgloss.Color("#00ff00"),
		Header:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Accent:  lipgloss.Color("#ffff00"),
		Warning: lipgloss.Color("#ff0000"),
	}

	ThemeLava = Theme{
		Name:    "lava",
		Liquid:  lipgloss.Color("#ff6b00"),
		Header:  lipgloss.Color("#ff3300"),
		Text:    lipgloss.Color("#fff5f0"),
		Muted:   lipgloss.Color("#8b5a4c"),
		Accent:  lipgloss.Color("#ffd000"),
		Warning: lipgloss.Color("#ff00ff"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Liquid:  lipgloss.Color("#ffffff"),
		Header:  lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#888888"),
		Accent:  lipgloss.Color("#0088ff"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{ThemeOcean, ThemeRetro, ThemeLava, ThemeMinimal}
)

// GetTheme returns a theme by name, falling back to ocean.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeOcean
}

// NextTheme returns the theme after t in Themes.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
