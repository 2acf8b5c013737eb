package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme used for search forms and result tables
type Theme struct {
	Name string

	Foreground lipgloss.Color
	Border     lipgloss.Color

	// Search form
	Label    lipgloss.Color
	Operator lipgloss.Color
	Value    lipgloss.Color

	// Table colors
	TableHeader lipgloss.Color
	Null        lipgloss.Color
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMochaTheme()
	default:
		return DefaultTheme()
	}
}

// DefaultTheme returns the default dark theme
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		Foreground: lipgloss.Color("252"),
		Border:     lipgloss.Color("240"),

		Label:    lipgloss.Color("75"),
		Operator: lipgloss.Color("252"),
		Value:    lipgloss.Color("180"),

		TableHeader: lipgloss.Color("62"),
		Null:        lipgloss.Color("244"),
	}
}

// CatppuccinMochaTheme returns the Catppuccin Mocha theme
// Based on: https://github.com/catppuccin/catppuccin
func CatppuccinMochaTheme() Theme {
	return Theme{
		Name: "catppuccin-mocha",

		Foreground: lipgloss.Color("#cdd6f4"), // Text
		Border:     lipgloss.Color("#45475a"), // Surface1

		Label:    lipgloss.Color("#cba6f7"), // Mauve
		Operator: lipgloss.Color("#94e2d5"), // Teal
		Value:    lipgloss.Color("#a6e3a1"), // Green

		TableHeader: lipgloss.Color("#89b4fa"), // Blue
		Null:        lipgloss.Color("#6c7086"), // Overlay0
	}
}
