// Package theme holds the color and typography tokens shared by every view,
// plus the registry views use to mount their style sheets.
package theme

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette: true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSapphire lipgloss.Color = "#74c7ec"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
	colorCrust    lipgloss.Color = "#11111b"
)

// ---------------------------------------------------------------------------
// Semantic tokens
// ---------------------------------------------------------------------------

// TextColors are foreground tokens ordered by emphasis.
type TextColors struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Tertiary  lipgloss.Color
	Disabled  lipgloss.Color
}

// BackgroundColors are surface tokens, Primary being the page itself.
type BackgroundColors struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Tertiary  lipgloss.Color
	Overlay   lipgloss.Color
}

type BrandColors struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
}

type StatusColors struct {
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

type BorderColors struct {
	Light  lipgloss.Color
	Medium lipgloss.Color
}

// Palette groups every color token.
type Palette struct {
	Text       TextColors
	Background BackgroundColors
	Brand      BrandColors
	Status     StatusColors
	Border     BorderColors
}

// Colors is the palette every view renders with.
var Colors = Palette{
	Text: TextColors{
		Primary:   colorText,
		Secondary: colorSubtext0,
		Tertiary:  colorOverlay1,
		Disabled:  colorSurface2,
	},
	Background: BackgroundColors{
		Primary:   colorBase,
		Secondary: colorMantle,
		Tertiary:  colorSurface0,
		Overlay:   colorCrust,
	},
	Brand: BrandColors{
		Primary:   colorBlue,
		Secondary: colorSapphire,
	},
	Status: StatusColors{
		Success: colorGreen,
		Warning: colorYellow,
		Error:   colorRed,
		Info:    colorTeal,
	},
	Border: BorderColors{
		Light:  colorSurface1,
		Medium: colorOverlay0,
	},
}

// Accent is used for the brand mark and key hints.
const Accent = colorPink

// Focus marks the focused input or pane.
const Focus = colorLavender

// Highlight marks the selected page in the paginator.
const Highlight = colorPeach
