package runner

import "github.com/vovakirdan/boko-runner/internal/core"

// Kind is the closed set of entity types.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindStandardEnemy
	KindTotemEnemy
	KindBlockEnemy
	KindCoin
	KindPVPlusBonus
	KindMegaBonus
	KindFlyBonus
	KindSlowSpeedBonus
	KindShieldBonus
	kindCount
)

// Category groups kinds by how a collision with them is resolved.
type Category uint8

const (
	CategoryPlayer Category = iota
	CategoryEnemy
	CategoryCoin
	CategoryBonus
)

// kindInfo is the per-kind behavior table entry.
type kindInfo struct {
	name     string
	w, h     float64
	category Category
	damage   int
	glyph    rune
	color    core.Color
}

var kinds = [kindCount]kindInfo{
	KindPlayer:         {"PLAYER", 30, 30, CategoryPlayer, 0, '●', core.ColorBrightCyan},
	KindStandardEnemy:  {"STANDARD_ENEMY", 30, 30, CategoryEnemy, 10, '▲', core.ColorRed},
	KindTotemEnemy:     {"TOTEM_ENEMY", 30, 90, CategoryEnemy, 15, '▓', core.ColorMagenta},
	KindBlockEnemy:     {"BLOCK_ENEMY", 50, 50, CategoryEnemy, 20, '█', core.ColorOrange},
	KindCoin:           {"COIN", 25, 25, CategoryCoin, 0, '$', core.ColorBrightYellow},
	KindPVPlusBonus:    {"PV_PLUS_BONUS", 25, 25, CategoryBonus, 0, '+', core.ColorBrightGreen},
	KindMegaBonus:      {"MEGA_BONUS", 25, 25, CategoryBonus, 0, 'M', core.ColorBrightRed},
	KindFlyBonus:       {"FLY_BONUS", 25, 25, CategoryBonus, 0, 'F', core.ColorCyan},
	KindSlowSpeedBonus: {"SLOW_SPEED_BONUS", 25, 25, CategoryBonus, 0, 'S', core.ColorBlue},
	KindShieldBonus:    {"SHIELD_BONUS", 25, 25, CategoryBonus, 0, 'O', core.ColorWhite},
}

// String returns the kind's name.
func (k Kind) String() string {
	if k >= kindCount {
		return "UNKNOWN"
	}
	return kinds[k].name
}

// Size returns the kind's width and height in field units.
func (k Kind) Size() (w, h float64) {
	return kinds[k].w, kinds[k].h
}

// Category returns how collisions with this kind are resolved.
func (k Kind) Category() Category {
	return kinds[k].category
}

// Damage returns the life removed by an unshielded hit.
func (k Kind) Damage() int {
	return kinds[k].damage
}

// IsEnemy reports whether the kind hurts the player.
func (k Kind) IsEnemy() bool {
	return kinds[k].category == CategoryEnemy
}

// Glyph returns the rune used to draw the kind.
func (k Kind) Glyph() rune {
	return kinds[k].glyph
}

// Color returns the color used to draw the kind.
func (k Kind) Color() core.Color {
	return kinds[k].color
}

// maxEnemyWidth is the widest blocking kind.
func maxEnemyWidth() float64 {
	w := 0.0
	for k := Kind(0); k < kindCount; k++ {
		if k.IsEnemy() && kinds[k].w > w {
			w = kinds[k].w
		}
	}
	return w
}

// Entity is any moving object of the world except the player.
type Entity struct {
	Kind      Kind
	Box       core.Box
	VX, VY    float64
	Collided  bool // set once resolved against, never reset
	Flattened bool
}

// NewEntity creates an entity of the given kind with its top-left corner at (x, y).
func NewEntity(kind Kind, x, y float64) Entity {
	w, h := kind.Size()
	return Entity{
		Kind: kind,
		Box:  core.NewBox(x, y, w, h),
	}
}

// markCollided flags the entity for removal. The flag is monotonic.
func (e *Entity) markCollided() {
	e.Collided = true
}

// Handle is a stable reference into an Arena. A handle outlives its entity
// but stops resolving once the slot is reused.
type Handle struct {
	index uint32
	gen   uint32
}

type slot struct {
	entity Entity
	gen    uint32
	alive  bool
}

// Arena stores the active entities of a session in a flat slice of slots.
// Freed slots are reused and iteration follows spawn order.
type Arena struct {
	slots []slot
	free  []uint32
	order []uint32
}

// NewArena creates an arena with room for capacity entities.
func NewArena(capacity int) *Arena {
	return &Arena{
		slots: make([]slot, 0, capacity),
		order: make([]uint32, 0, capacity),
	}
}

// Insert adds an entity and returns its handle.
func (a *Arena) Insert(e Entity) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	s := &a.slots[idx]
	s.entity = e
	s.alive = true
	a.order = append(a.order, idx)
	return Handle{index: idx, gen: s.gen}
}

// Get resolves a handle. The returned pointer is valid until the next Insert.
func (a *Arena) Get(h Handle) (*Entity, bool) {
	if int(h.index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.index]
	if !s.alive || s.gen != h.gen {
		return nil, false
	}
	return &s.entity, true
}

// Remove frees the entity behind h. It reports whether anything was removed.
func (a *Arena) Remove(h Handle) bool {
	if _, ok := a.Get(h); !ok {
		return false
	}
	s := &a.slots[h.index]
	s.alive = false
	s.gen++
	s.entity = Entity{}
	a.free = append(a.free, h.index)
	for i, idx := range a.order {
		if idx == h.index {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of live entities.
func (a *Arena) Len() int {
	return len(a.order)
}

// Each calls fn for every live entity in spawn order until fn returns false.
// fn must not insert or remove entities.
func (a *Arena) Each(fn func(h Handle, e *Entity) bool) {
	for _, idx := range a.order {
		s := &a.slots[idx]
		if !fn(Handle{index: idx, gen: s.gen}, &s.entity) {
			return
		}
	}
}

// RemoveWhere frees every entity matching pred and returns how many were removed.
func (a *Arena) RemoveWhere(pred func(e *Entity) bool) int {
	var doomed []Handle
	a.Each(func(h Handle, e *Entity) bool {
		if pred(e) {
			doomed = append(doomed, h)
		}
		return true
	})
	for _, h := range doomed {
		a.Remove(h)
	}
	return len(doomed)
}

// Reset drops every entity at once. Handles issued before Reset stop resolving.
func (a *Arena) Reset() {
	a.free = a.free[:0]
	for i := len(a.slots) - 1; i >= 0; i-- {
		s := &a.slots[i]
		if s.alive {
			s.alive = false
			s.gen++
			s.entity = Entity{}
		}
		a.free = append(a.free, uint32(i))
	}
	a.order = a.order[:0]
}
