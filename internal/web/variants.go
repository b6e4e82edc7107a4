package web

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Variant is a named animation state: CSS property -> value. Variants are
// plain data so tests can assert on the states directly and the stylesheet is
// derived rather than hand-written.
type Variant map[string]string

// VariantSet pairs the two states an element transitions between on mount.
type VariantSet struct {
	Hidden  Variant
	Visible Variant
}

// ContainerVariants fades the whole landing container in on mount.
var ContainerVariants = VariantSet{
	Hidden:  Variant{"opacity": "0"},
	Visible: Variant{"opacity": "1"},
}

// ItemVariants slides each staggered child up from a 20px offset.
var ItemVariants = VariantSet{
	Hidden:  Variant{"opacity": "0", "transform": "translateY(20px)"},
	Visible: Variant{"opacity": "1", "transform": "translateY(0)"},
}

const (
	// EntranceDuration is how long each entrance transition runs.
	EntranceDuration = 500 * time.Millisecond
	// StaggerDelay is the per-child delay increment on mount.
	StaggerDelay = 200 * time.Millisecond
	// IconSpinDuration is the full-turn icon rotation on card hover.
	IconSpinDuration = 500 * time.Millisecond
	// staggeredChildren covers the hero plus the two cards.
	staggeredChildren = 3
)

// decls renders a variant as CSS declarations in stable order.
func (v Variant) decls() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s; ", k, v[k])
	}
	return strings.TrimSpace(b.String())
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.2gs", d.Seconds())
}

// Stylesheet derives the page CSS from the theme tokens and the animation
// variants. Elements start in the hidden variant and animate to visible, so
// the initial render state is hidden until the entrance completes.
func Stylesheet(t Theme) string {
	var b strings.Builder

	fmt.Fprintf(&b, "html, body { margin: 0; min-height: 100%%; background: %s; font-family: system-ui, sans-serif; }\n", t.PageBackground)

	// entrance: container fade, items slide+fade, both driven by the variants
	fmt.Fprintf(&b, "@keyframes container-enter { from { %s } to { %s } }\n",
		ContainerVariants.Hidden.decls(), ContainerVariants.Visible.decls())
	fmt.Fprintf(&b, "@keyframes item-enter { from { %s } to { %s } }\n",
		ItemVariants.Hidden.decls(), ItemVariants.Visible.decls())
	fmt.Fprintf(&b, ".landing { %s animation: container-enter %s ease-out forwards; position: relative; z-index: 1; display: flex; flex-direction: column; align-items: center; gap: 2rem; padding: 18vh 1rem 0; }\n",
		ContainerVariants.Hidden.decls(), seconds(EntranceDuration))
	fmt.Fprintf(&b, ".stagger-item { %s animation: item-enter %s ease-out forwards; }\n",
		ItemVariants.Hidden.decls(), seconds(EntranceDuration))
	for i := 1; i <= staggeredChildren; i++ {
		fmt.Fprintf(&b, ".stagger-%d { animation-delay: %s; }\n",
			i, seconds(time.Duration(i-1)*StaggerDelay))
	}

	// hero
	fmt.Fprintf(&b, ".hero { color: %s; text-shadow: %s; font-size: clamp(2rem, 6vw, 4rem); text-align: center; margin: 0; }\n",
		t.HeroTextColor, t.HeroGlow)

	// cards: scale + surface lighten on hover via CSS transition
	fmt.Fprintf(&b, ".card-row { display: flex; gap: 2rem; flex-wrap: wrap; justify-content: center; }\n")
	fmt.Fprintf(&b, ".card { background: %s; border: 1px solid %s; color: %s; border-radius: 1rem; padding: 2rem; width: 16rem; text-align: center; backdrop-filter: blur(12px); transition: transform 0.3s ease, background-color 0.3s ease; }\n",
		t.CardSurface, t.CardBorder, t.CardTextColor)
	fmt.Fprintf(&b, ".card:hover { transform: scale(1.05); background: %s; }\n", t.CardSurfaceHover)

	// icon: full turn on hover, reverting when the pointer leaves
	fmt.Fprintf(&b, ".card-icon { display: inline-block; transition: transform %s ease; }\n", seconds(IconSpinDuration))
	fmt.Fprintf(&b, ".card:hover .card-icon { transform: rotate(360deg); }\n")

	// buttons
	fmt.Fprintf(&b, ".card-button { display: inline-block; margin-top: 1rem; padding: 0.6rem 1.4rem; border-radius: 0.6rem; background: %s; color: %s; text-decoration: none; font-weight: 600; }\n",
		t.ButtonSurface, t.ButtonText)

	// decorative vortex backdrop
	fmt.Fprintf(&b, ".vortex { position: fixed; inset: -20%%; z-index: 0; background: conic-gradient(from 0deg, %s, %s, %s); filter: blur(%s); opacity: 0.5; animation: vortex-spin 24s linear infinite; }\n",
		t.VortexInner, t.VortexOuter, t.VortexInner, t.VortexBlur)
	fmt.Fprintf(&b, "@keyframes vortex-spin { to { transform: rotate(360deg); } }\n")

	return b.String()
}
