package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/boko-runner/internal/config"
)

// SafetyMargin is added to the widest enemy to get the smallest spawn gap.
const SafetyMargin = 40.0

// Spawner places new entities at the right edge of the field.
type Spawner struct {
	rng        *rand.Rand
	cfg        *config.RunnerConfig
	difficulty *config.DifficultyManager
	untilNext  float64 // scrolled distance left before the next spawn
	minGap     float64
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(seed int64, cfg *config.RunnerConfig, diff *config.DifficultyManager) *Spawner {
	s := &Spawner{
		cfg:        cfg,
		difficulty: diff,
		minGap:     maxEnemyWidth() + SafetyMargin,
	}
	s.Reset(seed)
	return s
}

// Reset clears the spacing counter and reseeds the RNG.
func (s *Spawner) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.untilNext = s.cfg.Spawner.MinGap
}

// MinGap returns the smallest gap ever left between two spawns.
func (s *Spawner) MinGap() float64 {
	return s.minGap
}

// MaybeSpawn consumes scrolled units of spacing and returns a new entity when
// the gap is used up. Nothing is spawned while suppressed.
func (s *Spawner) MaybeSpawn(scrolled, distance float64, ticks int, suppressed bool) (Entity, bool) {
	s.untilNext -= scrolled
	if suppressed || s.untilNext > 0 {
		return Entity{}, false
	}

	kind := s.rollKind()
	_, h := kind.Size()
	y := s.cfg.Field.Floor - h - s.elevation(kind)
	e := NewEntity(kind, s.cfg.Field.Width, y)

	base := s.cfg.Spawner.MinGap + s.rng.Float64()*s.cfg.Spawner.ExtraGap
	s.untilNext = s.difficulty.Gap(base, s.minGap, distance, ticks)
	return e, true
}

// elevation lifts collectibles off the ground; enemies always stand on it.
func (s *Spawner) elevation(kind Kind) float64 {
	if kind.IsEnemy() || s.cfg.Spawner.MaxElevation <= 0 {
		return 0
	}
	steps := []float64{0, 0.5, 1}
	return math.Round(steps[s.rng.Intn(len(steps))] * s.cfg.Spawner.MaxElevation)
}

// rollKind selects a kind using the configured weights.
func (s *Spawner) rollKind() Kind {
	w := s.cfg.Spawner.Weights
	total := w.Total()
	if total <= 0 {
		return KindCoin
	}

	roll := s.rng.Intn(total)
	weights := []struct {
		Kind   Kind
		Weight int
	}{
		{KindStandardEnemy, w.Standard},
		{KindTotemEnemy, w.Totem},
		{KindBlockEnemy, w.Block},
		{KindCoin, w.Coin},
		{KindPVPlusBonus, w.PVPlus},
		{KindMegaBonus, w.Mega},
		{KindFlyBonus, w.Fly},
		{KindSlowSpeedBonus, w.Slow},
		{KindShieldBonus, w.Shield},
	}

	cumulative := 0
	for _, kw := range weights {
		cumulative += kw.Weight
		if roll < cumulative {
			return kw.Kind
		}
	}
	return KindCoin
}
