package components

import "github.com/charmbracelet/lipgloss"

// Banner renders a one-line message box
type Banner struct {
	Message string
	Kind    string // "error", "warning", "success"
	Icon    string
	Width   int
}

// NewErrorBanner creates a banner for an error message
func NewErrorBanner(message string, width int) *Banner {
	return &Banner{Message: message, Kind: "error", Width: width}
}

// NewNoticeBanner creates a banner for a confirmation message
func NewNoticeBanner(message string, width int) *Banner {
	return &Banner{Message: message, Kind: "success", Width: width}
}

// SetIcon sets the icon shown before the message
func (b *Banner) SetIcon(icon string) *Banner {
	b.Icon = icon
	return b
}

// Render renders the banner, or nothing for an empty message
func (b *Banner) Render() string {
	if b.Message == "" {
		return ""
	}

	color := positiveColor
	switch b.Kind {
	case "error":
		color = negativeColor
	case "warning":
		color = warningColor
	}

	text := b.Message
	if b.Icon != "" {
		text = b.Icon + " " + text
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Padding(0, 1)
	if b.Width > 0 {
		style = style.Width(b.Width)
	}
	return style.Render(text)
}
