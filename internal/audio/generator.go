package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ThemeGenerator plays an endless bass and arpeggio pattern. The tempo and
// the note table depend on the difficulty.
type ThemeGenerator struct {
	sr     beep.SampleRate
	pos    int
	step   int // samples per note
	notes  []float64
	bassHz float64
	volume float64
}

// NewThemeGenerator creates the theme for the given variant.
func NewThemeGenerator(sr beep.SampleRate, v Variant) *ThemeGenerator {
	g := &ThemeGenerator{sr: sr, volume: 0.12}
	switch v {
	case VariantEasy:
		g.step = sr.N(220 * time.Millisecond)
		g.notes = []float64{261.63, 329.63, 392.00, 329.63, 293.66, 349.23, 440.00, 349.23}
		g.bassHz = 65.41
	default:
		g.step = sr.N(150 * time.Millisecond)
		g.notes = []float64{220.00, 261.63, 329.63, 261.63, 246.94, 293.66, 349.23, 392.00}
		g.bassHz = 55.00
	}
	return g
}

// Stream never runs dry.
func (g *ThemeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		inNote := g.pos % g.step
		note := g.notes[(g.pos/g.step)%len(g.notes)]

		// Short pluck envelope on every note
		env := math.Exp(-float64(inNote) / float64(g.step) * 4)
		lead := 0.6 * env * square(note*t)
		bass := 0.4 * math.Sin(2*math.Pi*g.bassHz*t)

		s := g.volume * (lead + bass)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *ThemeGenerator) Err() error {
	return nil
}

// square is a band-limited-ish square wave from its first harmonics.
func square(phase float64) float64 {
	x := 2 * math.Pi * phase
	return math.Sin(x) + math.Sin(3*x)/3 + math.Sin(5*x)/5
}

// ChirpGenerator sweeps from one frequency to another, used for the short
// effects.
type ChirpGenerator struct {
	sr       beep.SampleRate
	pos      int
	length   int
	from, to float64
	volume   float64
	phase    float64
}

// NewChirpGenerator creates a sweep lasting d.
func NewChirpGenerator(sr beep.SampleRate, from, to float64, d time.Duration, volume float64) *ChirpGenerator {
	return &ChirpGenerator{
		sr:     sr,
		length: max(sr.N(d), 1),
		from:   from,
		to:     to,
		volume: volume,
	}
}

// Stream ends after the sweep duration.
func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.length {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.length {
			return i, true
		}
		progress := float64(g.pos) / float64(g.length)
		freq := g.from + (g.to-g.from)*progress
		g.phase += freq / float64(g.sr)

		env := 1 - progress
		s := g.volume * env * math.Sin(2*math.Pi*g.phase)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}

// NoiseGenerator produces a decaying noise burst with a low rumble.
type NoiseGenerator struct {
	sr     beep.SampleRate
	pos    int
	length int
	seed   uint32
}

// NewNoiseGenerator creates a burst lasting d. The seed is fixed so the
// sound is identical on every hit.
func NewNoiseGenerator(sr beep.SampleRate, d time.Duration) *NoiseGenerator {
	return &NoiseGenerator{sr: sr, length: max(sr.N(d), 1), seed: 0x2545f491}
}

// Stream ends after the burst duration.
func (g *NoiseGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.length {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.length {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)

		// xorshift32
		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1

		env := math.Exp(-t * 12)
		s := env * (0.2*noise + 0.25*math.Sin(2*math.Pi*70*t))
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *NoiseGenerator) Err() error {
	return nil
}
