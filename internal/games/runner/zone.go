package runner

import (
	"math"

	"github.com/vovakirdan/boko-runner/internal/config"
)

// Zone is one of the two background environments.
type Zone uint8

const (
	ZoneHill Zone = iota
	ZonePlain
)

// String returns the zone name.
func (z Zone) String() string {
	if z == ZonePlain {
		return "PLAIN"
	}
	return "HILL"
}

// Toggle returns the other zone.
func (z Zone) Toggle() Zone {
	if z == ZoneHill {
		return ZonePlain
	}
	return ZoneHill
}

// Phase is the zone sequencer state. COMPLETE folds straight back to idle
// and is reported by Advance.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseArmed
	PhaseTransitioning
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseArmed:
		return "TRANSITION_ARMED"
	case PhaseTransitioning:
		return "TRANSITIONING"
	default:
		return "IDLE"
	}
}

const (
	fullAlpha     = 255
	fullIntensity = 1.0
)

// ZoneView is the read-only state the renderer needs to draw the backgrounds.
type ZoneView struct {
	Zone        Zone
	Phase       Phase
	FarX        float64 // left edge of the far layer's first tile
	NearX       float64 // left edge of the near layer's first tile
	TileWidth   float64
	TransitionX float64 // left edge of the incoming zone background
	TransitionW float64
	Alpha       int     // foreground opacity, 255 opaque
	Intensity   float64 // pixelation of the near layer, 1.0 full
	Swapped     bool    // textures already show the incoming zone
}

// ZoneSequencer drives the background handoff between zones.
type ZoneSequencer struct {
	cfg    config.ZoneConfig
	fieldW float64

	zone      Zone
	phase     Phase
	nextAt    float64
	farX      float64
	nearX     float64
	transX    float64
	alpha     int
	intensity float64
	swapped   bool
}

// NewZoneSequencer creates an idle sequencer in the HILL zone.
func NewZoneSequencer(cfg config.ZoneConfig, fieldW float64) *ZoneSequencer {
	z := &ZoneSequencer{cfg: cfg, fieldW: fieldW}
	z.Reset()
	return z
}

// Reset returns to the HILL zone with the first milestone one zone length away.
func (z *ZoneSequencer) Reset() {
	z.zone = ZoneHill
	z.phase = PhaseIdle
	z.nextAt = z.cfg.Length
	z.farX = 0
	z.nearX = 0
	z.transX = 0
	z.alpha = fullAlpha
	z.intensity = fullIntensity
	z.swapped = false
}

// Zone returns the current zone.
func (z *ZoneSequencer) Zone() Zone {
	return z.zone
}

// Phase returns the sequencer state.
func (z *ZoneSequencer) Phase() Phase {
	return z.phase
}

// Suppressing reports whether spawning and speed progression are held back.
func (z *ZoneSequencer) Suppressing() bool {
	return z.phase != PhaseIdle
}

// seam is the x of the boundary between the far layer's two tiles.
func (z *ZoneSequencer) seam() float64 {
	return z.farX + z.cfg.BackgroundWidth
}

// Advance moves the sequencer one tick forward. It reports true on the tick
// the transition completes and the zone toggles.
func (z *ZoneSequencer) Advance(distance, scroll float64) bool {
	switch z.phase {
	case PhaseIdle:
		z.scroll(scroll*z.cfg.FarSpeedFactor, scroll)
		if distance >= z.nextAt {
			z.phase = PhaseArmed
		}
		return false

	case PhaseArmed:
		z.scroll(scroll*z.cfg.FarSpeedFactor, scroll)
		if z.seam() > z.fieldW-z.cfg.SeamMargin {
			z.setup()
		}
		return false

	case PhaseTransitioning:
		return z.transition(distance)
	}
	return false
}

func (z *ZoneSequencer) setup() {
	z.phase = PhaseTransitioning
	z.transX = z.seam()
	z.alpha = fullAlpha
	z.intensity = fullIntensity
	z.swapped = false
}

func (z *ZoneSequencer) transition(distance float64) bool {
	speed := z.cfg.TransitionSpeed
	z.transX -= speed
	z.scroll(speed, speed)

	z.alpha -= z.cfg.AlphaStep
	if z.alpha < 0 {
		z.alpha = 0
	}

	// Halfway: the backgrounds now show the incoming zone
	if math.Abs(z.transX) <= z.cfg.TextureSwapWidth {
		z.swapped = true
	}

	if z.transX < z.fieldW/2 && z.intensity >= 0 {
		z.intensity = math.Max(z.intensity-z.cfg.PixelStep, 0)
	}

	if z.transX+z.fieldW > 0 {
		return false
	}

	// Complete
	z.zone = z.zone.Toggle()
	z.phase = PhaseIdle
	z.nextAt = distance + z.cfg.Length
	z.alpha = fullAlpha
	z.intensity = fullIntensity
	z.swapped = false
	return true
}

// scroll moves both layers and wraps each onto its second tile.
func (z *ZoneSequencer) scroll(far, near float64) {
	w := z.cfg.BackgroundWidth
	if w <= 0 {
		return
	}
	z.farX -= far
	for z.farX+w < 0 {
		z.farX += w
	}
	z.nearX -= near
	for z.nearX+w < 0 {
		z.nearX += w
	}
}

// View returns the renderer's snapshot of the sequencer.
func (z *ZoneSequencer) View() ZoneView {
	return ZoneView{
		Zone:        z.zone,
		Phase:       z.phase,
		FarX:        z.farX,
		NearX:       z.nearX,
		TileWidth:   z.cfg.BackgroundWidth,
		TransitionX: z.transX,
		TransitionW: z.fieldW,
		Alpha:       z.alpha,
		Intensity:   z.intensity,
		Swapped:     z.swapped,
	}
}
