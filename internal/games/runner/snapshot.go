package runner

// Snapshot captures the session state for determinism testing and replay.
type Snapshot struct {
	Tick      int
	State     State
	PlayerX   float64
	PlayerY   float64
	Life      int
	Movement  Movement
	Shield    Shield
	Distance  float64
	Coins     int
	Flattened int
	Destroyed int
	Entities  int
	Speed     float64
	Zone      Zone
	Phase     Phase
	Score     int
}

// Snapshot returns the current session snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		State:     g.state,
		PlayerX:   g.player.Box.X,
		PlayerY:   g.player.Box.Y,
		Life:      g.player.Life(),
		Movement:  g.player.Movement(),
		Shield:    g.player.Shield(),
		Distance:  g.ledger.Distance,
		Coins:     g.ledger.Coins,
		Flattened: g.ledger.Flattened,
		Destroyed: g.ledger.Destroyed,
		Entities:  g.arena.Len(),
		Speed:     g.speed,
		Zone:      g.zone.Zone(),
		Phase:     g.zone.Phase(),
		Score:     g.State().Score,
	}
}
