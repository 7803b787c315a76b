// Package styles holds the lipgloss palettes and the global styles used by
// the grid and the CLI tables.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/cespare/xxhash/v2"
	"github.com/lucasb-eyer/go-colorful"
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

	// ColorSelection is the range highlight, a blend of Surface toward Primary.
	ColorSelection color.Color
	// ColorStripe is the background of odd data rows.
	ColorStripe color.Color
)

// Style exports.
var (
	// Grid cells.
	HeaderStyle       lipgloss.Style
	HeaderSortedStyle lipgloss.Style
	CellStyle         lipgloss.Style
	NullCellStyle     lipgloss.Style
	PinnedCellStyle   lipgloss.Style
	SelectedCellStyle lipgloss.Style
	FocusedCellStyle  lipgloss.Style
	GroupHeaderStyle  lipgloss.Style
	PinDividerStyle   lipgloss.Style

	// Chrome.
	StatusBarStyle   lipgloss.Style
	StatusKeyStyle   lipgloss.Style
	StatusValueStyle lipgloss.Style
	StatusErrorStyle lipgloss.Style

	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	TableHeaderStyle   lipgloss.Style
	TableCellStyle     lipgloss.Style
	TableGroupStyle    lipgloss.Style
	TableBorderStyle   lipgloss.Style
)

// ColorPool is used for deterministic color hashing of group keys.
var ColorPool []color.Color

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
	ColorSelection = Blend(p.Surface, p.Primary, 0.35)
	ColorStripe = p.Stripe
	if ColorStripe == nil {
		ColorStripe = Blend(p.Background, p.Surface, 0.5)
	}

	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	HeaderSortedStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		Underline(true)
	CellStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	NullCellStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	PinnedCellStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorSurface)
	SelectedCellStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorSelection)
	FocusedCellStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true)
	GroupHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)
	PinDividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorSurface)
	StatusKeyStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Padding(0, 1)
	StatusValueStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorSurface).
		Padding(0, 1)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Background(ColorSurface).
		Padding(0, 1)

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	TableHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	TableCellStyle = lipgloss.NewStyle().
		Padding(0, 1)
	TableGroupStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true).
		Padding(0, 1)
	TableBorderStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ColorPool = []color.Color{
		ColorPrimary,
		ColorSecondary,
		ColorSuccess,
		ColorWarning,
		ColorError,
	}
}

// ColorForString returns a deterministic color for a given string.
// The same string always produces the same color.
func ColorForString(s string) color.Color {
	return ColorPool[xxhash.Sum64String(s)%uint64(len(ColorPool))]
}

// Blend mixes a toward b in Lab space; t=0 is a and t=1 is b. Colors that
// cannot be converted return a unchanged.
func Blend(a, b color.Color, t float64) color.Color {
	ca, ok := colorful.MakeColor(a)
	if !ok {
		return a
	}
	cb, ok := colorful.MakeColor(b)
	if !ok {
		return a
	}
	return lipgloss.Color(ca.BlendLab(cb, t).Clamped().Hex())
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
