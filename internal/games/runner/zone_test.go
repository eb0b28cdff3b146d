package runner

import (
	"testing"

	"github.com/vovakirdan/boko-runner/internal/config"
)

// runCycle drives the sequencer until one transition completes.
func runCycle(t *testing.T, z *ZoneSequencer, distance *float64) {
	t.Helper()
	for i := 0; i < 100000; i++ {
		*distance += 1
		if z.Advance(*distance, 8) {
			return
		}
	}
	t.Fatal("transition never completed")
}

func TestZoneTogglesOncePerCycle(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	z := NewZoneSequencer(cfg.Zone, cfg.Field.Width)
	distance := 0.0

	if z.Zone() != ZoneHill {
		t.Fatalf("initial zone = %v, expected HILL", z.Zone())
	}

	runCycle(t, z, &distance)
	if z.Zone() != ZonePlain {
		t.Errorf("after one cycle zone = %v, expected PLAIN", z.Zone())
	}

	runCycle(t, z, &distance)
	if z.Zone() != ZoneHill {
		t.Errorf("after two cycles zone = %v, expected HILL", z.Zone())
	}
}

func TestZonePhases(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	z := NewZoneSequencer(cfg.Zone, cfg.Field.Width)

	z.Advance(cfg.Zone.Length-1, 8)
	if z.Phase() != PhaseIdle || z.Suppressing() {
		t.Fatalf("phase = %v before the milestone, expected IDLE", z.Phase())
	}

	z.Advance(cfg.Zone.Length, 8)
	if z.Phase() != PhaseArmed || !z.Suppressing() {
		t.Fatalf("phase = %v at the milestone, expected ARMED", z.Phase())
	}

	for i := 0; i < 1000 && z.Phase() == PhaseArmed; i++ {
		z.Advance(cfg.Zone.Length, 8)
	}
	if z.Phase() != PhaseTransitioning {
		t.Fatalf("phase = %v, expected TRANSITIONING", z.Phase())
	}
	v := z.View()
	if v.Alpha != fullAlpha || v.Intensity != fullIntensity {
		t.Errorf("transition starts with alpha=%d intensity=%f", v.Alpha, v.Intensity)
	}
	if v.TransitionX <= cfg.Field.Width-cfg.Zone.SeamMargin {
		t.Errorf("transition started at x=%f, expected beyond the seam margin", v.TransitionX)
	}
}

func TestZoneTransitionEffects(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	z := NewZoneSequencer(cfg.Zone, cfg.Field.Width)
	z.Advance(cfg.Zone.Length, 8)
	for z.Phase() != PhaseTransitioning {
		z.Advance(cfg.Zone.Length, 8)
	}

	prevAlpha := z.View().Alpha
	prevIntensity := z.View().Intensity
	swapped := false
	for !z.Advance(cfg.Zone.Length, 8) {
		v := z.View()
		if v.Alpha > prevAlpha {
			t.Fatalf("alpha rose from %d to %d", prevAlpha, v.Alpha)
		}
		if v.Intensity > prevIntensity {
			t.Fatalf("intensity rose from %f to %f", prevIntensity, v.Intensity)
		}
		if v.TransitionX >= cfg.Field.Width/2 && v.Intensity != fullIntensity {
			t.Fatalf("intensity dropped before the midpoint at x=%f", v.TransitionX)
		}
		if v.Intensity < 0 {
			t.Fatalf("intensity below zero: %f", v.Intensity)
		}
		if v.Swapped {
			swapped = true
		}
		prevAlpha, prevIntensity = v.Alpha, v.Intensity
	}

	if !swapped {
		t.Error("textures never swapped during the transition")
	}
	v := z.View()
	if v.Phase != PhaseIdle || v.Alpha != fullAlpha || v.Intensity != fullIntensity || v.Swapped {
		t.Errorf("view after completion = %+v", v)
	}
}

func TestZoneLayerWrap(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	z := NewZoneSequencer(cfg.Zone, cfg.Field.Width)
	for i := 0; i < 10000; i++ {
		z.Advance(0, 7.5)
		v := z.View()
		if v.FarX > 0 || v.FarX+v.TileWidth < 0 || v.NearX > 0 || v.NearX+v.TileWidth < 0 {
			t.Fatalf("layer out of range: far=%f near=%f", v.FarX, v.NearX)
		}
	}
}
