// Package styles provides shared lipgloss v2 styles for the CLI and the
// toast surface.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/toastq/internal/core/notify"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	SuccessTextStyle   lipgloss.Style
	ErrorTextStyle     lipgloss.Style
	MutedTextStyle     lipgloss.Style

	// Toast surface styles.
	ToastBaseStyle     lipgloss.Style
	ToastSelectedStyle lipgloss.Style
	ToastExitingStyle  lipgloss.Style
	ToastTitleStyle    lipgloss.Style
	ToastCloseStyle    lipgloss.Style
	StatusBarStyle     lipgloss.Style
	HelpStyle          lipgloss.Style
)

// toastStyles maps built-in message styles to their rendering.
var toastStyles map[notify.Style]lipgloss.Style

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	SuccessTextStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorTextStyle = lipgloss.NewStyle().Foreground(ColorError)
	MutedTextStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ToastBaseStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Foreground(ColorForeground).
		Padding(0, 1)
	ToastSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	ToastExitingStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Faint(true)
	ToastTitleStyle = lipgloss.NewStyle().Bold(true)
	ToastCloseStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	toastStyles = map[notify.Style]lipgloss.Style{
		notify.StyleInfo:       ToastBaseStyle.BorderForeground(ColorPrimary),
		notify.StyleSuccess:    ToastBaseStyle.BorderForeground(ColorSuccess),
		notify.StyleWarning:    ToastBaseStyle.BorderForeground(ColorWarning),
		notify.StyleError:      ToastBaseStyle.BorderForeground(ColorError),
		notify.StyleMessage:    ToastBaseStyle.BorderForeground(ColorSecondary),
		notify.StyleMagicBlack: ToastBaseStyle.Background(lipgloss.Color("#000000")).Foreground(lipgloss.Color("#ffffff")),
		notify.StyleMagicGray:  ToastBaseStyle.Background(ColorSurface),
		notify.StyleMagicWhite: ToastBaseStyle.Background(lipgloss.Color("#ffffff")).Foreground(lipgloss.Color("#000000")),
	}
}

// ToastStyle returns the toast style for s. Custom styles render with the
// base style.
func ToastStyle(s notify.Style) lipgloss.Style {
	if st, ok := toastStyles[s]; ok {
		return st
	}
	return ToastBaseStyle
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
