package runner

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/boko-runner/internal/core"
)

// Visual characters for rendering
const (
	GroundChar   = '═'
	SoilChar     = '░'
	HillChar     = '^'
	PlainChar    = '.'
	FlattenChar  = '_'
	ShieldChar   = '◎'
	hudRows      = 1
	hillMaxCells = 6
)

// skinColors maps player skins to colors.
var skinColors = map[string]core.Color{
	"default":  core.ColorBrightCyan,
	"morphing": core.ColorMagenta,
	"pokeball": core.ColorBrightRed,
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() <= 0 || dst.Height() <= hudRows {
		return
	}

	v := g.newViewport(dst)
	g.drawBackground(dst, v)
	g.drawGround(dst, v)
	g.drawEntities(dst, v)
	g.drawPlayer(dst, v)
	g.drawHUD(dst)

	switch g.state {
	case StatePaused:
		drawCenteredMessage(dst, "PAUSED", "P resume  |  R restart  |  Q home")
	case StateOver:
		if g.quit {
			break
		}
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  R restart  |  Q home", g.summary.Score))
	}
}

// viewport maps field units onto the cells below the HUD.
type viewport struct {
	w, h   int
	fieldW float64
	fieldH float64
}

func (g *Game) newViewport(dst *core.Screen) viewport {
	return viewport{
		w:      dst.Width(),
		h:      dst.Height() - hudRows,
		fieldW: g.cfg.Field.Width,
		fieldH: g.cfg.Field.Height,
	}
}

func (v viewport) rect(b core.Box) core.Rect {
	r := b.Scale(v.fieldW, v.fieldH, v.w, v.h)
	r.Y += hudRows
	return r
}

func (v viewport) row(y float64) int {
	return int(math.Floor(y*float64(v.h)/v.fieldH)) + hudRows
}

func (v viewport) fieldX(col int) float64 {
	return (float64(col) + 0.5) * v.fieldW / float64(v.w)
}

// drawBackground draws the far layer and, during a transition, the incoming zone.
func (g *Game) drawBackground(dst *core.Screen, v viewport) {
	zv := g.zone.View()
	floorRow := v.row(g.cfg.Field.Floor)

	current := zv.Zone
	if zv.Swapped {
		current = zv.Zone.Toggle()
	}

	for col := 0; col < v.w; col++ {
		fx := v.fieldX(col)
		zone := current
		if zv.Phase == PhaseTransitioning && fx >= zv.TransitionX && fx < zv.TransitionX+zv.TransitionW {
			zone = zv.Zone.Toggle()
		}
		drawFarColumn(dst, col, floorRow, zone, fx-zv.FarX, zv.TileWidth)
	}
}

func drawFarColumn(dst *core.Screen, col, floorRow int, zone Zone, u, tile float64) {
	if tile <= 0 {
		return
	}
	phase := math.Mod(u, tile) / tile
	if phase < 0 {
		phase++
	}
	switch zone {
	case ZoneHill:
		h := int(math.Round((1 + math.Sin(phase*4*math.Pi)) / 2 * hillMaxCells))
		for i := 1; i <= h; i++ {
			dst.SetColored(col, floorRow-i, HillChar, core.ColorGreen)
		}
	case ZonePlain:
		if int(phase*40)%3 == 0 {
			dst.SetColored(col, floorRow-1, PlainChar, core.ColorYellow)
		}
	}
}

// drawGround draws the floor line and the near layer below it. The near layer
// fades with the transition alpha and thins out with the pixel intensity.
func (g *Game) drawGround(dst *core.Screen, v viewport) {
	zv := g.zone.View()
	floorRow := v.row(g.cfg.Field.Floor)
	dst.DrawHLine(0, floorRow, v.w, GroundChar, core.ColorGray)

	density := 1.0
	if zv.Phase == PhaseTransitioning {
		density = math.Min(float64(zv.Alpha)/fullAlpha, 1) * zv.Intensity
		density = math.Max(density, 0.15)
	}

	for y := floorRow + 1; y < dst.Height(); y++ {
		for col := 0; col < v.w; col++ {
			u := v.fieldX(col) - zv.NearX
			cell := int(math.Floor(u / 20))
			if hash01(cell, y) >= density {
				continue
			}
			if (cell+y)%4 == 0 {
				dst.SetColored(col, y, SoilChar, core.ColorDarkGray)
			}
		}
	}
}

// hash01 is a cheap deterministic noise in [0, 1).
func hash01(x, y int) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return float64(h^(h>>16)) / float64(math.MaxUint32+1.0)
}

func (g *Game) drawEntities(dst *core.Screen, v viewport) {
	g.arena.Each(func(_ Handle, e *Entity) bool {
		r := v.rect(e.Box)
		switch {
		case e.Flattened:
			dst.DrawHLine(r.X, r.Bottom()-1, r.W, FlattenChar, e.Kind.Color())
		case e.Collided:
			// picked up or destroyed, waiting for removal
		default:
			dst.DrawRect(r, e.Kind.Glyph(), e.Kind.Color())
		}
		return true
	})
}

func (g *Game) drawPlayer(dst *core.Screen, v viewport) {
	p := g.player
	color, ok := skinColors[g.skin]
	if !ok {
		color = skinColors["default"]
	}
	glyph := KindPlayer.Glyph()

	switch {
	case g.effects.Has(KindMegaBonus, g.tick):
		color = core.ColorBrightRed
	case p.Shield() == ShieldHard:
		glyph, color = ShieldChar, core.ColorBrightYellow
	case p.Shield() == ShieldSoft:
		glyph, color = ShieldChar, core.ColorWhite
	}
	dst.DrawRect(v.rect(p.Box), glyph, color)
}

// drawHUD renders the status line.
func (g *Game) drawHUD(dst *core.Screen) {
	p := g.player
	life := fmt.Sprintf(" ♥ %d/%d ", p.Life(), p.MaxLife())
	lifeColor := core.ColorBrightGreen
	switch {
	case p.Life() <= p.MaxLife()/4:
		lifeColor = core.ColorBrightRed
	case p.Life() <= p.MaxLife()/2:
		lifeColor = core.ColorYellow
	}
	dst.DrawTextColored(0, 0, life, lifeColor)

	stats := fmt.Sprintf(" Dist %d  $ %d  Score %d  Spd %.1f  %s ",
		int(g.ledger.Distance), g.ledger.Coins, g.State().Score, g.speed, g.zone.Zone())
	x := len([]rune(life))
	dst.DrawText(x, 0, stats)
	x += len([]rune(stats))

	var fx []string
	for _, e := range g.effects.Active() {
		secs := float64(e.TicksRemaining(g.tick)) / float64(core.Max(g.runtime.TickRate, 1))
		fx = append(fx, fmt.Sprintf("%s %.0fs", effectLabel(e.Kind), math.Ceil(secs)))
	}
	if len(fx) > 0 {
		dst.DrawTextColored(x, 0, "["+strings.Join(fx, "] [")+"]", core.ColorBrightCyan)
	}

	if g.state == StateRunningSlowly {
		label := " resuming "
		dst.DrawTextColored(dst.Width()-len(label), 0, label, core.ColorYellow)
	}
}

func effectLabel(k Kind) string {
	switch k {
	case KindMegaBonus:
		return "MEGA"
	case KindFlyBonus:
		return "FLY"
	case KindSlowSpeedBonus:
		return "SLOW"
	case KindShieldBonus:
		return "SHIELD"
	default:
		return k.String()
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
