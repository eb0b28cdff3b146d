package runner

import "github.com/vovakirdan/boko-runner/internal/config"

// Perks are the shop upgrades active for a session.
type Perks struct {
	Doubler    bool // coin value doubled
	ShieldPlus bool // shield bonus grants HARD_SHIELDED
	MegaPlus   bool // longer MEGA
	FlyPlus    bool // longer FLY
}

// Effect is an active timed bonus.
type Effect struct {
	Kind      Kind
	UntilTick int
}

// TicksRemaining returns how many ticks the effect has left.
func (e Effect) TicksRemaining(currentTick int) int {
	if r := e.UntilTick - currentTick; r > 0 {
		return r
	}
	return 0
}

// Effects tracks the timed bonuses of a session.
type Effects struct {
	active []Effect
}

// Start activates kind until now+duration. A running effect is extended,
// never shortened.
func (fx *Effects) Start(kind Kind, now, duration int) {
	until := now + duration
	for i := range fx.active {
		if fx.active[i].Kind == kind {
			if until > fx.active[i].UntilTick {
				fx.active[i].UntilTick = until
			}
			return
		}
	}
	fx.active = append(fx.active, Effect{Kind: kind, UntilTick: until})
}

// Has reports whether kind is active at tick now.
func (fx *Effects) Has(kind Kind, now int) bool {
	for _, e := range fx.active {
		if e.Kind == kind && e.UntilTick > now {
			return true
		}
	}
	return false
}

// Expire drops effects that ended by tick now and returns their kinds.
func (fx *Effects) Expire(now int) []Kind {
	var expired []Kind
	kept := fx.active[:0]
	for _, e := range fx.active {
		if e.UntilTick <= now {
			expired = append(expired, e.Kind)
			continue
		}
		kept = append(kept, e)
	}
	fx.active = kept
	return expired
}

// Active returns a copy of the running effects.
func (fx *Effects) Active() []Effect {
	out := make([]Effect, len(fx.active))
	copy(out, fx.active)
	return out
}

// Reset clears every effect.
func (fx *Effects) Reset() {
	fx.active = fx.active[:0]
}

// duration returns the timeout of a timed bonus kind, 0 for instant ones.
func duration(kind Kind, cfg config.BonusConfig, perks Perks) int {
	switch kind {
	case KindMegaBonus:
		if perks.MegaPlus {
			return cfg.MegaTicks + cfg.ExtensionTicks
		}
		return cfg.MegaTicks
	case KindFlyBonus:
		if perks.FlyPlus {
			return cfg.FlyTicks + cfg.ExtensionTicks
		}
		return cfg.FlyTicks
	case KindSlowSpeedBonus:
		return cfg.SlowTicks
	case KindShieldBonus:
		return cfg.ShieldTicks
	default:
		return 0
	}
}

// shieldTier returns the tier granted by the shield bonus.
func shieldTier(perks Perks) Shield {
	if perks.ShieldPlus {
		return ShieldHard
	}
	return ShieldSoft
}
