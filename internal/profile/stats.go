package profile

// Stat keys as stored by every backend.
const (
	StatTotalDistance   = "total_distance_travelled"
	StatTotalEnemies    = "total_enemies_destroyed"
	StatTotalCoins      = "total_coins_collected"
	StatTotalGames      = "total_games_played"
	StatPerGameDistance = "per_game_distance_travelled"
	StatPerGameEnemies  = "per_game_enemies_destroyed"
	StatPerGameCoins    = "per_game_coins_collected"
)

// StatKeys lists the stat keys in save order.
var StatKeys = []string{
	StatTotalDistance,
	StatTotalEnemies,
	StatTotalCoins,
	StatTotalGames,
	StatPerGameDistance,
	StatPerGameEnemies,
	StatPerGameCoins,
}

// Stats are the lifetime counters plus the totals of the last game.
type Stats struct {
	TotalDistance   int
	TotalEnemies    int
	TotalCoins      int
	TotalGames      int
	PerGameDistance int
	PerGameEnemies  int
	PerGameCoins    int
}

func (s *Stats) field(key string) *int {
	switch key {
	case StatTotalDistance:
		return &s.TotalDistance
	case StatTotalEnemies:
		return &s.TotalEnemies
	case StatTotalCoins:
		return &s.TotalCoins
	case StatTotalGames:
		return &s.TotalGames
	case StatPerGameDistance:
		return &s.PerGameDistance
	case StatPerGameEnemies:
		return &s.PerGameEnemies
	case StatPerGameCoins:
		return &s.PerGameCoins
	}
	return nil
}

// Get returns the value of a stat key; unknown keys read as 0.
func (s Stats) Get(key string) int {
	if p := s.field(key); p != nil {
		return *p
	}
	return 0
}

// Set assigns a stat by key. Negative values are stored as 0. It reports
// whether the key is known.
func (s *Stats) Set(key string, v int) bool {
	p := s.field(key)
	if p == nil {
		return false
	}
	if v < 0 {
		v = 0
	}
	*p = v
	return true
}

// Map returns every stat keyed by its save name.
func (s Stats) Map() map[string]int {
	m := make(map[string]int, len(StatKeys))
	for _, k := range StatKeys {
		m[k] = s.Get(k)
	}
	return m
}
