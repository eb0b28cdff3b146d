// Package profile keeps the persistent state of the application: settings,
// lifetime statistics, per-difficulty leaderboards and shop purchases.
// Backends live in internal/storage and only exchange Data snapshots.
package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/boko-runner/internal/games/runner"
)

// Data is a plain snapshot of everything a backend persists.
type Data struct {
	Settings Settings
	Stats    Stats
	Owned    []ItemID
	Scores   map[Difficulty][]int // ascending
}

// DefaultData returns the state of a fresh install.
func DefaultData() Data {
	return Data{
		Settings: DefaultSettings(),
		Scores:   map[Difficulty][]int{Easy: nil, Hard: nil},
	}
}

// Store loads and saves profile snapshots. Load returns DefaultData when
// nothing was saved yet. On corrupt data it returns DefaultData together
// with an error.
type Store interface {
	Load(ctx context.Context) (Data, error)
	Save(ctx context.Context, d Data) error
}

// RunLog is implemented by stores that keep the history of finished games.
type RunLog interface {
	RecordRun(ctx context.Context, r GameRecord) error
}

// Mirror receives a copy of each leaderboard after every save.
type Mirror interface {
	PublishLeaderboard(ctx context.Context, d Difficulty, scores []int) error
}

// GameRecord is the outcome of one finished game.
type GameRecord struct {
	Difficulty Difficulty
	Score      int
	Distance   int
	Enemies    int
	Flattened  int
	Coins      int
	CoinsValue int
	Duration   time.Duration
	PlayedAt   time.Time
}

// RecordFromSummary converts a finished session into a record.
func RecordFromSummary(s runner.Summary) GameRecord {
	d := Hard
	if s.Difficulty == Easy.Preset() {
		d = Easy
	}
	return GameRecord{
		Difficulty: d,
		Score:      s.Score,
		Distance:   s.Distance,
		Enemies:    s.Destroyed,
		Flattened:  s.Flattened,
		Coins:      s.Coins,
		CoinsValue: s.CoinsValue,
		Duration:   s.Elapsed,
	}
}

// Options configure a Profile.
type Options struct {
	Store  Store // required
	Mirror Mirror
	Logger *log.Logger
	Now    func() time.Time
}

// Profile is the in-memory application state. It is safe for concurrent use.
type Profile struct {
	mu       sync.Mutex
	settings Settings
	stats    Stats
	owned    map[ItemID]bool
	boards   map[Difficulty]*Leaderboard
	pending  []GameRecord

	store  Store
	mirror Mirror
	logger *log.Logger
	now    func() time.Time
}

// Open loads the profile from opts.Store. When the store reports corrupt
// data the returned profile holds defaults and the error is returned with it.
func Open(ctx context.Context, opts Options) (*Profile, error) {
	if opts.Store == nil {
		return nil, errors.New("profile: store is required")
	}
	p := &Profile{
		store:  opts.Store,
		mirror: opts.Mirror,
		logger: opts.Logger,
		now:    opts.Now,
	}
	if p.logger == nil {
		p.logger = log.New(io.Discard)
	}
	if p.now == nil {
		p.now = time.Now
	}

	data, err := opts.Store.Load(ctx)
	p.apply(data)
	if err != nil {
		return p, fmt.Errorf("profile: load: %w", err)
	}
	return p, nil
}

// apply replaces the state with d, dropping invalid values.
func (p *Profile) apply(d Data) {
	p.settings = d.Settings
	if p.settings.sanitize() {
		p.logger.Warn("replaced invalid settings with defaults")
	}

	p.stats = Stats{}
	for _, k := range StatKeys {
		p.stats.Set(k, d.Stats.Get(k))
	}

	p.owned = make(map[ItemID]bool)
	for _, id := range d.Owned {
		if _, ok := LookupItem(id); !ok {
			p.logger.Warn("dropping unknown shop item", "id", id)
			continue
		}
		p.owned[id] = true
	}
	if id, ok := skinItem(p.settings.Skin); ok && !p.owned[id] {
		p.settings.Skin = SkinDefault
	}

	p.boards = make(map[Difficulty]*Leaderboard, len(Difficulties))
	for _, diff := range Difficulties {
		p.boards[diff] = NewLeaderboard(d.Scores[diff]...)
	}
	p.pending = nil
}

// Data returns a snapshot of the current state.
func (p *Profile) Data() Data {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dataLocked()
}

func (p *Profile) dataLocked() Data {
	d := Data{
		Settings: p.settings,
		Stats:    p.stats,
		Scores:   make(map[Difficulty][]int, len(p.boards)),
	}
	for _, it := range Catalogue {
		if p.owned[it.ID] {
			d.Owned = append(d.Owned, it.ID)
		}
	}
	for diff, lb := range p.boards {
		d.Scores[diff] = lb.Scores()
	}
	return d
}

// Save persists the state, flushes finished games to stores that keep a
// history and publishes the leaderboards to the mirror. Mirror failures
// are logged, not returned.
func (p *Profile) Save(ctx context.Context) error {
	p.mu.Lock()
	data := p.dataLocked()
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()

	if err := p.store.Save(ctx, data); err != nil {
		p.requeue(pending)
		return fmt.Errorf("profile: save: %w", err)
	}

	if rl, ok := p.store.(RunLog); ok {
		for i, r := range pending {
			if err := rl.RecordRun(ctx, r); err != nil {
				p.requeue(pending[i:])
				return fmt.Errorf("profile: record run: %w", err)
			}
		}
	}

	if p.mirror != nil {
		for _, diff := range Difficulties {
			if err := p.mirror.PublishLeaderboard(ctx, diff, data.Scores[diff]); err != nil {
				p.logger.Warn("leaderboard mirror failed", "difficulty", diff, "err", err)
			}
		}
	}
	return nil
}

func (p *Profile) requeue(rs []GameRecord) {
	if len(rs) == 0 {
		return
	}
	p.mu.Lock()
	p.pending = append(append([]GameRecord(nil), rs...), p.pending...)
	p.mu.Unlock()
}

// Settings returns the current settings.
func (p *Profile) Settings() Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// Stats returns the lifetime statistics.
func (p *Profile) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Wallet returns the coins available for the shop.
func (p *Profile) Wallet() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings.Wallet
}

// Leaderboard returns a copy of the leaderboard of d.
func (p *Profile) Leaderboard(d Difficulty) *Leaderboard {
	p.mu.Lock()
	defer p.mu.Unlock()
	lb, ok := p.boards[d]
	if !ok {
		return NewLeaderboard()
	}
	return NewLeaderboard(lb.Scores()...)
}

// AddScore inserts score into the leaderboard of d and reports whether it
// was kept.
func (p *Profile) AddScore(d Difficulty, score int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addScoreLocked(d, score)
}

func (p *Profile) addScoreLocked(d Difficulty, score int) bool {
	lb, ok := p.boards[d]
	if !ok {
		return false
	}
	return lb.Add(score)
}

// RecordGame folds a finished game into the stats, the wallet and the
// leaderboard of its difficulty. It reports whether the score was kept.
func (p *Profile) RecordGame(r GameRecord) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if r.PlayedAt.IsZero() {
		r.PlayedAt = p.now()
	}

	p.stats.TotalGames++
	p.stats.TotalDistance += max(r.Distance, 0)
	p.stats.TotalEnemies += max(r.Enemies, 0)
	p.stats.TotalCoins += max(r.Coins, 0)
	p.stats.PerGameDistance = max(r.Distance, 0)
	p.stats.PerGameEnemies = max(r.Enemies, 0)
	p.stats.PerGameCoins = max(r.Coins, 0)
	p.settings.Wallet += max(r.CoinsValue, 0)

	p.pending = append(p.pending, r)
	kept := p.addScoreLocked(r.Difficulty, r.Score)
	p.logger.Debug("game recorded", "difficulty", r.Difficulty, "score", r.Score, "kept", kept)
	return kept
}

// Activated reports whether the shop item id was bought.
func (p *Profile) Activated(id ItemID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.owned[id]
}

// ActivatedBonuses returns the run perks granted by bought items.
func (p *Profile) ActivatedBonuses() runner.Perks {
	p.mu.Lock()
	defer p.mu.Unlock()
	return perksFor(p.owned)
}

// Buy purchases a catalogue item with the wallet.
func (p *Profile) Buy(id ItemID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	item, ok := LookupItem(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if p.owned[id] {
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, id)
	}
	if p.settings.Wallet < item.Price {
		return fmt.Errorf("%w: %s costs %d, wallet has %d", ErrInsufficientFunds, id, item.Price, p.settings.Wallet)
	}
	p.settings.Wallet -= item.Price
	p.owned[id] = true
	p.logger.Info("item bought", "id", id, "wallet", p.settings.Wallet)
	return nil
}

// SetDifficulty changes the difficulty of the next games.
func (p *Profile) SetDifficulty(d Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("profile: unknown difficulty %d", d)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings.Difficulty = d
	return nil
}

// SetLanguage changes the UI language.
func (p *Profile) SetLanguage(l Language) error {
	if _, err := ParseLanguage(string(l)); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings.Language = l
	return nil
}

// SetSkin selects a player skin. Cosmetic skins must be bought first.
func (p *Profile) SetSkin(s Skin) error {
	skin, err := ParseSkin(string(s))
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if id, ok := skinItem(skin); ok && !p.owned[id] {
		return fmt.Errorf("%w: %s", ErrSkinLocked, skin)
	}
	p.settings.Skin = skin
	return nil
}

// ToggleMenuMusic flips the menu music flag and returns the new value.
func (p *Profile) ToggleMenuMusic() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings.MenuMusic = !p.settings.MenuMusic
	return p.settings.MenuMusic
}

// ToggleGameMusic flips the game music flag and returns the new value.
func (p *Profile) ToggleGameMusic() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings.GameMusic = !p.settings.GameMusic
	return p.settings.GameMusic
}

// ClearLeaderboard empties every leaderboard.
func (p *Profile) ClearLeaderboard() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, lb := range p.boards {
		lb.Clear()
	}
}

// ClearAppData resets settings, stats, purchases and leaderboards.
func (p *Profile) ClearAppData() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.apply(DefaultData())
}
