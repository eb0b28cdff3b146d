package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventCoinCollected EventKind = iota
	EventEnemyDestroyed
	EventEnemyFlattened
	EventDamage
	EventBonus
	EventZoneChanged
	EventGameOver
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventCoinCollected:
		return "CoinCollected"
	case EventEnemyDestroyed:
		return "EnemyDestroyed"
	case EventEnemyFlattened:
		return "EnemyFlattened"
	case EventDamage:
		return "Damage"
	case EventBonus:
		return "Bonus"
	case EventZoneChanged:
		return "ZoneChanged"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Event is a single notification emitted by a tick. Value carries the
// event-specific amount (coins credited, damage taken, final score).
type Event struct {
	Kind  EventKind
	Value int
	Label string
}

// StepResult is returned by Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether an event of the given kind occurred during the tick.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
