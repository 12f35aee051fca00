package theme

// Centralized theming and styling initialization for the vision tester UI.
// Provides palette constants and InitStyles to activate a base theme and
// configure semantic widget styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panels, cards
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // buttons, accents
	ColorPrimaryHi = "#1d4ed8"
	ColorPass      = "#10b981" // PASS verdicts
	ColorFail      = "#dc2626" // FAIL verdicts
	ColorFailHi    = "#b91c1c"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StylePassLabel     = "pass.TLabel"
	StyleFailLabel     = "fail.TLabel"
	StyleStatusLabel   = "status.TLabel"
)

// InitStyles applies the base theme and semantic styles.
func InitStyles() {
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(ColorBg))

	StyleConfigure(StylePrimaryButton,
		Background(ColorPrimary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(ColorFail),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StylePassLabel,
		Foreground("white"),
		Background(ColorPass),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
	StyleConfigure(StyleFailLabel,
		Foreground("white"),
		Background(ColorFail),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(ColorText),
		Background(ColorSurface),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
