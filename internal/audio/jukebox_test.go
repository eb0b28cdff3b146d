package audio

import (
	"testing"

	"github.com/vovakirdan/boko-runner/internal/core"
)

// Nothing here opens the speaker: every call must be safe on a jukebox
// that never got an audio device.
func TestJukeboxGracefulDegradation(t *testing.T) {
	j := New(nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("jukebox panicked without a speaker: %v", r)
		}
	}()

	j.SetVariant(VariantEasy)
	j.Start()
	j.Pause()
	j.Resume()
	j.Play(EffectCoin)
	j.PlayEvents([]core.Event{{Kind: core.EventDamage}, {Kind: core.EventZoneChanged}})
	j.Stop()
	j.SetMusic(false)
	j.Close()

	if j.Enabled() {
		t.Error("jukebox should report disabled without Init")
	}
	if j.theme != nil {
		t.Error("no theme should be held without a speaker")
	}
}

func TestEffectFor(t *testing.T) {
	testCases := []struct {
		kind core.EventKind
		want Effect
		ok   bool
	}{
		{core.EventCoinCollected, EffectCoin, true},
		{core.EventEnemyDestroyed, EffectEnemyDestroyed, true},
		{core.EventEnemyFlattened, EffectFlatten, true},
		{core.EventDamage, EffectDamage, true},
		{core.EventBonus, EffectBonus, true},
		{core.EventGameOver, EffectGameOver, true},
		{core.EventZoneChanged, 0, false},
	}

	for _, tc := range testCases {
		got, ok := EffectFor(tc.kind)
		if ok != tc.ok || got != tc.want {
			t.Errorf("EffectFor(%v) = (%d, %v), want (%d, %v)", tc.kind, got, ok, tc.want, tc.ok)
		}
	}
}
