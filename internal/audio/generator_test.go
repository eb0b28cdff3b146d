package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 || buf[i][1] < -1 || buf[i][1] > 1 {
				t.Fatalf("sample %d out of range: %v", total+i, buf[i])
			}
		}
		total += n
		if !ok {
			break
		}
	}
	return total
}

func TestThemeNeverEnds(t *testing.T) {
	for _, v := range []Variant{VariantEasy, VariantHard} {
		g := NewThemeGenerator(sampleRate, v)
		limit := sampleRate.N(5 * time.Second)
		if got := drain(t, g, limit); got < limit {
			t.Errorf("variant %d: theme ended after %d samples", v, got)
		}
		if g.Err() != nil {
			t.Errorf("variant %d: unexpected error %v", v, g.Err())
		}
	}
}

func TestThemeVariantsDiffer(t *testing.T) {
	easy := NewThemeGenerator(sampleRate, VariantEasy)
	hard := NewThemeGenerator(sampleRate, VariantHard)
	if easy.step <= hard.step {
		t.Errorf("easy notes should be slower: easy=%d hard=%d", easy.step, hard.step)
	}
}

func TestChirpLength(t *testing.T) {
	d := 90 * time.Millisecond
	g := NewChirpGenerator(sampleRate, 880, 1760, d, 0.2)
	if got, want := drain(t, g, 1<<20), sampleRate.N(d); got != want {
		t.Errorf("chirp length = %d, want %d", got, want)
	}

	// Exhausted streamer stays exhausted
	n, ok := g.Stream(make([][2]float64, 16))
	if n != 0 || ok {
		t.Errorf("Stream after end = (%d, %v), want (0, false)", n, ok)
	}
}

func TestNoiseLengthAndRepeatability(t *testing.T) {
	d := 50 * time.Millisecond
	a := NewNoiseGenerator(sampleRate, d)
	b := NewNoiseGenerator(sampleRate, d)

	bufA := make([][2]float64, 64)
	bufB := make([][2]float64, 64)
	a.Stream(bufA)
	b.Stream(bufB)
	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, bufA[i], bufB[i])
		}
	}

	g := NewNoiseGenerator(sampleRate, d)
	if got, want := drain(t, g, 1<<20), sampleRate.N(d); got != want {
		t.Errorf("noise length = %d, want %d", got, want)
	}
}

func TestEffectsAreFinite(t *testing.T) {
	effects := []Effect{EffectCoin, EffectEnemyDestroyed, EffectFlatten, EffectDamage, EffectBonus, EffectGameOver}
	limit := sampleRate.N(2 * time.Second)
	for _, e := range effects {
		if got := drain(t, newEffect(e), limit); got == 0 || got >= limit {
			t.Errorf("effect %d streamed %d samples", e, got)
		}
	}
}
