package components

import "github.com/charmbracelet/lipgloss"

// Colors are defined here rather than taken from the ui theme to avoid an import cycle
var (
	positiveColor = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	negativeColor = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	neutralColor  = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}
	infoColor     = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#3B82F6"}
	mutedColor    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	trackColor    = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
	warningColor  = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}
)
