package runner

import (
	"math"

	"github.com/vovakirdan/boko-runner/internal/config"
	"github.com/vovakirdan/boko-runner/internal/core"
)

// Movement is the player's mutually exclusive movement state.
type Movement uint8

const (
	MovementNormal Movement = iota
	MovementJumping
	MovementFalling
	MovementDecelerating
)

// String returns the movement name.
func (m Movement) String() string {
	switch m {
	case MovementNormal:
		return "NORMAL"
	case MovementJumping:
		return "JUMPING"
	case MovementFalling:
		return "FALLING"
	case MovementDecelerating:
		return "DECELERATING"
	default:
		return "UNKNOWN"
	}
}

// Shield is the shield overlay on top of the movement state.
type Shield uint8

const (
	ShieldNone Shield = iota
	ShieldSoft        // SHIELDED: standard and totem enemies
	ShieldHard        // HARD_SHIELDED: every enemy
)

// String returns the shield tier name.
func (s Shield) String() string {
	switch s {
	case ShieldSoft:
		return "SHIELDED"
	case ShieldHard:
		return "HARD_SHIELDED"
	default:
		return "NONE"
	}
}

// Covers reports whether the tier absorbs hits from kind.
func (s Shield) Covers(kind Kind) bool {
	switch s {
	case ShieldHard:
		return kind.IsEnemy()
	case ShieldSoft:
		return kind == KindStandardEnemy || kind == KindTotemEnemy
	default:
		return false
	}
}

// MinLife is the lowest life value; reaching it ends the run.
const MinLife = 0

// Player is the controlled body. Position is its top-left corner in field units.
type Player struct {
	Box    core.Box
	VX, VY float64

	life    int
	maxLife int
	shield  Shield

	airborne bool
	braking  bool
	prevY    float64

	physics config.PhysicsConfig
	fieldW  float64
	floor   float64
}

// NewPlayer creates a player standing on the floor with full life.
func NewPlayer(cfg *config.RunnerConfig) *Player {
	p := &Player{
		physics: cfg.Physics,
		fieldW:  cfg.Field.Width,
		floor:   cfg.Field.Floor,
		maxLife: cfg.Player.MaxLife,
	}
	y := cfg.Field.Floor - cfg.Player.Height
	p.Box = core.NewBox(cfg.Player.X, y, cfg.Player.Width, cfg.Player.Height)
	p.prevY = y
	p.life = p.maxLife
	return p
}

// Movement returns the current movement state.
func (p *Player) Movement() Movement {
	switch {
	case p.airborne && p.VY < 0:
		return MovementJumping
	case p.airborne:
		return MovementFalling
	case p.braking:
		return MovementDecelerating
	default:
		return MovementNormal
	}
}

// Shield returns the active shield tier.
func (p *Player) Shield() Shield {
	return p.shield
}

// SetShield replaces the shield tier. Shield timing is owned by the session.
func (p *Player) SetShield(s Shield) {
	p.shield = s
}

// Status is the reported player state: the shield overlay wins over movement.
func (p *Player) Status() string {
	if p.shield != ShieldNone {
		return p.shield.String()
	}
	return p.Movement().String()
}

// Life returns the current life.
func (p *Player) Life() int {
	return p.life
}

// MaxLife returns the life cap.
func (p *Player) MaxLife() int {
	return p.maxLife
}

// SetLife sets life clamped to [MinLife, MaxLife].
func (p *Player) SetLife(n int) {
	p.life = core.Clamp(n, MinLife, p.maxLife)
}

// Dead reports whether life reached MinLife.
func (p *Player) Dead() bool {
	return p.life <= MinLife
}

// Grounded reports whether the player stands on the floor.
func (p *Player) Grounded() bool {
	return !p.airborne
}

// Height returns how far the player's feet are above the floor.
func (p *Player) Height() float64 {
	return p.floor - p.Box.Bottom()
}

// ControlMovements applies a horizontal direction (-1 left, +1 right, 0 none).
// A request towards a field edge the player already touches is dropped
// before it can move the player.
func (p *Player) ControlMovements(dir int) {
	if dir == 0 {
		return
	}
	maxX := p.fieldW - p.Box.W
	if dir < 0 && p.Box.X <= 0 {
		p.Box.X = 0
		p.VX = 0
		return
	}
	if dir > 0 && p.Box.X >= maxX {
		p.Box.X = maxX
		p.VX = 0
		return
	}
	p.braking = false
	p.VX = float64(dir) * p.physics.MoveSpeed
}

// Jump starts the jump arc. It is a no-op while airborne or decelerating.
func (p *Player) Jump() bool {
	if p.airborne || p.braking {
		return false
	}
	p.airborne = true
	p.VY = -p.physics.JumpImpulse
	return true
}

// Decelerate starts braking the horizontal velocity down to zero.
func (p *Player) Decelerate() {
	if p.VX == 0 {
		return
	}
	p.braking = true
}

// bounce relaunches the player upward after flattening an enemy.
func (p *Player) bounce() {
	p.airborne = true
	p.braking = false
	p.VY = -p.physics.JumpImpulse / 2
}

// Move advances the player by one tick. gravityFactor scales gravity
// (below 1 while flying).
func (p *Player) Move(gravityFactor float64) {
	p.prevY = p.Box.Y

	// Horizontal: friction while braking, then clamp to the field
	if p.braking {
		if math.Abs(p.VX) <= p.physics.Friction {
			p.VX = 0
			p.braking = false
		} else {
			p.VX -= math.Copysign(p.physics.Friction, p.VX)
		}
	}
	p.Box.X += p.VX
	maxX := p.fieldW - p.Box.W
	if p.Box.X < 0 || p.Box.X > maxX {
		p.Box.X = core.ClampF(p.Box.X, 0, maxX)
		p.VX = 0
		p.braking = false
	}

	if !p.airborne {
		return
	}

	// Vertical: constant acceleration until the floor is reached
	g := p.physics.Gravity * gravityFactor
	p.VY += g
	if p.VY > p.physics.MaxFallSpeed {
		p.VY = p.physics.MaxFallSpeed
	}
	p.Box.Y += p.VY

	// Jump limit caps the arc and starts the fall
	if top := p.floor - p.physics.JumpLimit - p.Box.H; p.Box.Y < top {
		p.Box.Y = top
		if p.VY < 0 {
			p.VY = 0
		}
	}

	if p.Box.Bottom() >= p.floor {
		p.Box.Y = p.floor - p.Box.H
		p.VY = 0
		p.airborne = false
	}
}

// landedOn reports whether the player came down across top during the last tick.
func (p *Player) landedOn(top float64) bool {
	return p.airborne && p.VY > 0 && p.prevY+p.Box.H <= top
}
