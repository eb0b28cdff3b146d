package runner

import (
	"math"
	"time"

	"github.com/vovakirdan/boko-runner/internal/config"
)

// Ledger holds the running totals of one session.
type Ledger struct {
	Distance   float64
	Coins      int // coins picked up
	CoinsValue int // wallet credit earned by those coins
	Flattened  int
	Destroyed  int
	Ticks      int
	tickRate   int
}

// NewLedger creates an empty ledger for a loop running at tickRate.
func NewLedger(tickRate int) Ledger {
	if tickRate <= 0 {
		tickRate = 60
	}
	return Ledger{tickRate: tickRate}
}

// Elapsed returns the simulated time spent running.
func (l *Ledger) Elapsed() time.Duration {
	rate := l.tickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Duration(l.Ticks) * time.Second / time.Duration(rate)
}

// advance accumulates one tick of travel.
func (l *Ledger) advance(scroll float64, cfg config.ScoreConfig) {
	l.Ticks++
	if scroll > 0 {
		l.Distance += scroll * cfg.DistanceFactor
	}
}

// creditCoin records a collected coin and returns the wallet credit.
func (l *Ledger) creditCoin(cfg config.ScoreConfig, perks Perks) int {
	credit := cfg.CoinValue
	if perks.Doubler && cfg.DoublerFactor > 0 {
		credit *= cfg.DoublerFactor
	}
	l.Coins++
	l.CoinsValue += credit
	return credit
}

// FinalScore combines the totals at the given speed.
func (l *Ledger) FinalScore(speed, flattenedBonus float64) int {
	return CalculateFinalScore(l.Distance, l.CoinsValue, l.Flattened, speed, flattenedBonus)
}

// CalculateFinalScore combines distance, coin value and flattened enemies
// weighted by speed. It never decreases when any input grows.
func CalculateFinalScore(distance float64, coinsValue, flattened int, speed, flattenedBonus float64) int {
	distance = math.Max(distance, 0)
	if coinsValue < 0 {
		coinsValue = 0
	}
	if flattened < 0 {
		flattened = 0
	}
	weight := math.Max(speed, 1) * math.Max(flattenedBonus, 0)
	return int(distance + float64(coinsValue) + float64(flattened)*weight)
}

// Summary is the result of a finished session, handed to persistence.
type Summary struct {
	Difficulty config.DifficultyPreset
	Score      int
	Distance   int
	Coins      int
	CoinsValue int
	Flattened  int
	Destroyed  int
	Speed      float64
	Elapsed    time.Duration
	Zone       Zone
}
