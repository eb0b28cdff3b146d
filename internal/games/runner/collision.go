package runner

import (
	"github.com/vovakirdan/boko-runner/internal/core"
)

// detectCollision returns the first active, not yet collided entity
// overlapping the player, in spawn order.
func detectCollision(arena *Arena, p *Player) (Handle, *Entity, bool) {
	var (
		hit   Handle
		ent   *Entity
		found bool
	)
	arena.Each(func(h Handle, e *Entity) bool {
		if e.Collided || !p.Box.Intersects(e.Box) {
			return true
		}
		hit, ent, found = h, e, true
		return false
	})
	return hit, ent, found
}

// resolveCollisions processes at most one overlap per pass. The dominant case
// is a single simultaneous collision; a second overlap is picked up next tick.
func (g *Game) resolveCollisions() {
	_, e, ok := detectCollision(g.arena, g.player)
	if !ok {
		return
	}
	e.markCollided()

	switch e.Kind.Category() {
	case CategoryEnemy:
		g.hitEnemy(e)
	case CategoryCoin:
		credit := g.ledger.creditCoin(g.cfg.Score, g.perks)
		g.emit(core.EventCoinCollected, credit, e.Kind.String())
	case CategoryBonus:
		g.applyBonus(e.Kind)
	}
}

func (g *Game) hitEnemy(e *Entity) {
	g.ledger.Destroyed++

	if g.effects.Has(KindMegaBonus, g.tick) || g.player.landedOn(e.Box.Y) {
		e.Flattened = true
		g.ledger.Flattened++
		if !g.effects.Has(KindMegaBonus, g.tick) {
			g.player.bounce()
		}
		g.emit(core.EventEnemyFlattened, 1, e.Kind.String())
		g.emit(core.EventEnemyDestroyed, 1, e.Kind.String())
		return
	}

	g.emit(core.EventEnemyDestroyed, 1, e.Kind.String())
	if g.player.Shield().Covers(e.Kind) {
		return
	}

	dmg := e.Kind.Damage()
	g.player.SetLife(g.player.Life() - dmg)
	g.emit(core.EventDamage, dmg, e.Kind.String())
}

func (g *Game) applyBonus(kind Kind) {
	switch kind {
	case KindPVPlusBonus:
		g.player.SetLife(g.player.Life() + g.cfg.Bonuses.PVPlusLife)
	case KindShieldBonus:
		g.player.SetShield(shieldTier(g.perks))
	}
	if d := duration(kind, g.cfg.Bonuses, g.perks); d > 0 {
		g.effects.Start(kind, g.tick, d)
	}
	g.emit(core.EventBonus, duration(kind, g.cfg.Bonuses, g.perks), kind.String())
}

// expireBonuses ends timed bonuses and undoes their overlays.
func (g *Game) expireBonuses() {
	for _, kind := range g.effects.Expire(g.tick) {
		if kind == KindShieldBonus {
			g.player.SetShield(ShieldNone)
		}
	}
}

// removeOneCollided purges the first collided entity from the active
// collection. At most one is removed per tick.
func (g *Game) removeOneCollided() bool {
	var target Handle
	found := false
	g.arena.Each(func(h Handle, e *Entity) bool {
		if e.Collided {
			target, found = h, true
			return false
		}
		return true
	})
	if !found {
		return false
	}
	return g.arena.Remove(target)
}

// removeOffscreen drops every entity whose right edge left the field.
func (g *Game) removeOffscreen() int {
	return g.arena.RemoveWhere(func(e *Entity) bool {
		return e.Box.Right() <= 0
	})
}
