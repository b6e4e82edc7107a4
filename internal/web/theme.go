package web

// Theme names the ambient style tokens shared across the page so the two
// cards stay visually consistent without repeating literals.
type Theme struct {
	PageBackground   string
	HeroTextColor    string
	HeroGlow         string
	CardSurface      string
	CardSurfaceHover string
	CardBorder       string
	CardTextColor    string
	ButtonSurface    string
	ButtonText       string
	VortexInner      string
	VortexOuter      string
	VortexBlur       string
}

// Default is the production palette: dark page, translucent cards over a
// purple/green vortex.
var Default = Theme{
	PageBackground:   "#0b0b12",
	HeroTextColor:    "#ffffff",
	HeroGlow:         "0 0 40px rgba(167, 139, 250, 0.45)",
	CardSurface:      "rgba(255, 255, 255, 0.06)",
	CardSurfaceHover: "rgba(255, 255, 255, 0.14)",
	CardBorder:       "rgba(255, 255, 255, 0.12)",
	CardTextColor:    "#f4f4f5",
	ButtonSurface:    "#7c3aed",
	ButtonText:       "#ffffff",
	VortexInner:      "#34d399",
	VortexOuter:      "#7c3aed",
	VortexBlur:       "90px",
}
