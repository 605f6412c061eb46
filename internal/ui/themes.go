package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/TweetSense/internal/analysis"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor

	// Sentiment colors
	Positive lipgloss.AdaptiveColor
	Negative lipgloss.AdaptiveColor
	Other    lipgloss.AdaptiveColor

	// Semantic colors
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// UI colors
	Border   lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Selected lipgloss.AdaptiveColor
}

// buildTheme creates a theme with the given colors
func buildTheme(name string, primary, secondary, positive, negative, other, warning, errorColor, border, muted, selected [2]string) Theme {
	return Theme{
		Name:      name,
		Primary:   lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary: lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Positive:  lipgloss.AdaptiveColor{Light: positive[0], Dark: positive[1]},
		Negative:  lipgloss.AdaptiveColor{Light: negative[0], Dark: negative[1]},
		Other:     lipgloss.AdaptiveColor{Light: other[0], Dark: other[1]},
		Warning:   lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Error:     lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Border:    lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Muted:     lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Selected:  lipgloss.AdaptiveColor{Light: selected[0], Dark: selected[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1E40AF", "#3B82F6"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#059669", "#10B981"}, [2]string{"#DC2626", "#EF4444"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#D97706", "#F59E0B"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#D1D5DB", "#374151"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#DBEAFE", "#1E3A8A"})

	// DarkTheme pins the dark palette regardless of the terminal background
	DarkTheme = buildTheme("dark",
		[2]string{"#60A5FA", "#60A5FA"}, [2]string{"#9CA3AF", "#9CA3AF"},
		[2]string{"#34D399", "#34D399"}, [2]string{"#F87171", "#F87171"}, [2]string{"#9CA3AF", "#9CA3AF"},
		[2]string{"#FBBF24", "#FBBF24"}, [2]string{"#F87171", "#F87171"},
		[2]string{"#374151", "#374151"}, [2]string{"#9CA3AF", "#9CA3AF"}, [2]string{"#1E3A8A", "#1E3A8A"})

	// LightTheme pins the light palette regardless of the terminal background
	LightTheme = buildTheme("light",
		[2]string{"#1E40AF", "#1E40AF"}, [2]string{"#4B5563", "#4B5563"},
		[2]string{"#047857", "#047857"}, [2]string{"#B91C1C", "#B91C1C"}, [2]string{"#4B5563", "#4B5563"},
		[2]string{"#B45309", "#B45309"}, [2]string{"#B91C1C", "#B91C1C"},
		[2]string{"#D1D5DB", "#D1D5DB"}, [2]string{"#6B7280", "#6B7280"}, [2]string{"#DBEAFE", "#DBEAFE"})
)

// ThemeByName returns the named theme, or false when the name is unknown
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "default", "":
		return DefaultTheme, true
	case "dark":
		return DarkTheme, true
	case "light":
		return LightTheme, true
	default:
		return Theme{}, false
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "dark", "light"}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title  lipgloss.Style
	Header lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style
	Help   lipgloss.Style

	Positive lipgloss.Style
	Negative lipgloss.Style
	Other    lipgloss.Style

	BadgeOK      lipgloss.Style
	BadgeIssue   lipgloss.Style
	BadgeOffline lipgloss.Style

	Box   lipgloss.Style
	Input lipgloss.Style

	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
}

// NewStyles builds the styles for theme
func NewStyles(theme Theme) *Styles {
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Help: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Positive: lipgloss.NewStyle().Foreground(theme.Positive).Bold(true),
		Negative: lipgloss.NewStyle().Foreground(theme.Negative).Bold(true),
		Other:    lipgloss.NewStyle().Foreground(theme.Other),

		BadgeOK:      badge.Foreground(theme.Positive),
		BadgeIssue:   badge.Foreground(theme.Warning),
		BadgeOffline: badge.Foreground(theme.Error),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		TableHeader: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			BorderBottom(true).
			Bold(true),

		TableSelected: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Background(theme.Selected).
			Bold(true),
	}
}

// Label returns the style for a sentiment label
func (s *Styles) Label(label string) lipgloss.Style {
	switch {
	case analysis.IsPositive(label):
		return s.Positive
	case analysis.IsNegative(label):
		return s.Negative
	default:
		return s.Other
	}
}
