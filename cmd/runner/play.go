package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/boko-runner/internal/audio"
	"github.com/vovakirdan/boko-runner/internal/config"
	"github.com/vovakirdan/boko-runner/internal/core"
	"github.com/vovakirdan/boko-runner/internal/games/runner"
	"github.com/vovakirdan/boko-runner/internal/platform/tui"
	"github.com/vovakirdan/boko-runner/internal/profile"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSkin       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game right away",
	Long: `Start a game without going through the menu.

Controls:
  ←/→ or A/D   - Move
  Space/↑/W    - Jump (hold for a higher jump)
  P/Esc        - Pause
  R            - Restart (paused or game over)
  Q            - Back / quit

Examples:
  runner play
  runner play --difficulty easy
  runner play --skin pokeball --seed 42`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx, true)
		if err != nil {
			fail("%v", err)
		}
		defer a.Close()

		var preset *profile.Difficulty
		if flagDifficulty != "" {
			d, err := profile.ParseDifficulty(flagDifficulty)
			if err != nil {
				fail("%v", err)
			}
			preset = &d
		}
		if flagSkin != "" {
			s, err := profile.ParseSkin(flagSkin)
			if err != nil {
				fail("%v", err)
			}
			if err := a.profile.SetSkin(s); err != nil {
				fail("%v", err)
			}
		}

		jukebox := newJukebox(a)
		defer jukebox.Close()

		if _, err := playGame(ctx, a, jukebox, runtimeConfig(), preset); err != nil {
			fail("%v", err)
		}
		if err := a.save(ctx); err != nil {
			fail("%v", err)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to a runner YAML config")
	}
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "easy or hard (this session only)")
	playCmd.Flags().StringVar(&flagSkin, "skin", "", "Player skin: default, morphing or pokeball")
}

// runtimeConfig builds the runtime config from the flags and the
// terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// newJukebox opens the audio device. The game runs silently when that
// fails.
func newJukebox(a *app) *audio.Jukebox {
	j := audio.New(a.logger)
	if err := j.Init(); err != nil {
		a.logger.Warn("audio disabled", "err", err)
	}
	return j
}

// playGame runs one game screen. override, when set, replaces the
// difficulty of the settings for this session.
func playGame(ctx context.Context, a *app, jukebox *audio.Jukebox, rt core.RuntimeConfig, override *profile.Difficulty) (tui.GameResult, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		a.logger.Warn("using default runner config", "path", flagConfig, "err", err)
	}

	settings := a.profile.Settings()
	diff := settings.Difficulty
	if override != nil {
		diff = *override
	}

	variant := audio.VariantHard
	if diff == profile.Easy {
		variant = audio.VariantEasy
	}
	jukebox.SetVariant(variant)
	jukebox.SetMusic(settings.GameMusic)

	game := runner.New(runner.Options{
		Config:     &cfg,
		Difficulty: diff.Preset(),
		Perks:      a.profile.ActivatedBonuses(),
		Skin:       string(settings.Skin),
		Music:      jukebox,
		Logger:     a.logger,
	})

	a.logger.Info("game started", "difficulty", diff, "skin", settings.Skin, "seed", rt.Seed)
	res, err := tui.RunGame(game, tui.GameOptions{
		Runtime:      rt,
		PausedTick:   time.Duration(cfg.Timing.PausedTickMillis) * time.Millisecond,
		ReleaseAfter: cfg.Timing.ReleaseAfterTicks,
		Effects:      jukebox,
		Recorder:     a.profile,
		Logger:       a.logger,
	})
	jukebox.Stop()
	if err != nil {
		return res, err
	}
	return res, ctx.Err()
}
