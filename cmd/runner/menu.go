package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boko-runner/internal/audio"
	"github.com/vovakirdan/boko-runner/internal/platform/tui"
	"github.com/vovakirdan/boko-runner/internal/profile"
)

const recentRunsShown = 10

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive main menu",
	Long: `Open the main menu to play, visit the shop, browse the leaderboards,
change the settings or read the statistics.

Navigation:
  ↑/↓ or W/S   - Move selection
  Enter/Space  - Select
  Esc          - Back
  Q            - Quit`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx, true)
		if err != nil {
			fail("%v", err)
		}
		defer a.Close()

		jukebox := newJukebox(a)
		defer jukebox.Close()

		if err := runMenuLoop(ctx, a, jukebox); err != nil {
			fail("%v", err)
		}
	},
}

// runMenuLoop shows the menu until the player quits. The profile is
// saved after every screen.
func runMenuLoop(ctx context.Context, a *app, jukebox *audio.Jukebox) error {
	rt := runtimeConfig()

	for {
		settings := a.profile.Settings()
		startMenuMusic(jukebox, settings)
		res, err := tui.RunMenu(settings, rt)
		jukebox.Stop()
		if err != nil {
			return err
		}
		rt = res.Config
		if res.Quit {
			return nil
		}

		var goBack bool
		switch res.Screen {
		case tui.ScreenGame:
			var gr tui.GameResult
			gr, err = playGame(ctx, a, jukebox, rt, nil)
			goBack = !gr.Exit
		case tui.ScreenShop:
			goBack, err = tui.RunShop(a.profile, settings.Language, rt.ScreenW, rt.ScreenH)
		case tui.ScreenLeaderboard:
			goBack, err = tui.RunScoreboard(a.profile, settings, rt.ScreenW, rt.ScreenH)
		case tui.ScreenSettings:
			goBack, err = tui.RunSettings(a.profile, rt.ScreenW)
		case tui.ScreenStatistics:
			goBack, err = tui.RunStats(a.profile.Stats(), settings.Language, recentRuns(ctx, a), rt.ScreenW)
		}
		if saveErr := a.save(ctx); saveErr != nil && err == nil {
			err = saveErr
		}
		if err != nil {
			return err
		}
		if !goBack {
			return nil
		}
	}
}

func startMenuMusic(j *audio.Jukebox, s profile.Settings) {
	if !s.MenuMusic {
		return
	}
	variant := audio.VariantHard
	if s.Difficulty == profile.Easy {
		variant = audio.VariantEasy
	}
	j.SetVariant(variant)
	j.SetMusic(true)
	j.Start()
}

// recentRuns returns the run history when the store keeps one.
func recentRuns(ctx context.Context, a *app) []profile.GameRecord {
	if a.sqlite == nil {
		return nil
	}
	runs, err := a.sqlite.RecentRuns(ctx, recentRunsShown)
	if err != nil {
		a.logger.Warn("cannot read run history", "err", err)
		return nil
	}
	return runs
}
