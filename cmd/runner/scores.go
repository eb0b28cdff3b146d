package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boko-runner/internal/profile"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [easy|hard]",
	Short: "Show the leaderboards",
	Long: `Display the leaderboard of each difficulty, or of the one given.
With --redis the mirrored leaderboard is shown instead of the local one.

Examples:
  runner scores
  runner scores hard
  runner --redis localhost:6379 scores easy`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	diffs := profile.Difficulties
	if len(args) == 1 {
		d, err := profile.ParseDifficulty(args[0])
		if err != nil {
			fail("%v", err)
		}
		diffs = []profile.Difficulty{d}
	}

	a, err := openApp(ctx, false)
	if err != nil {
		fail("opening profile: %v", err)
	}
	defer a.Close()

	for i, d := range diffs {
		if i > 0 {
			fmt.Println()
		}
		scores, source, err := leaderboardScores(ctx, a, d)
		if err != nil {
			fail("retrieving scores: %v", err)
		}
		printLeaderboard(d, source, scores)
		printRunStats(ctx, a, d)
	}
}

// leaderboardScores reads the mirror when one is configured and the
// profile otherwise.
func leaderboardScores(ctx context.Context, a *app, d profile.Difficulty) ([]int, string, error) {
	if a.mirror != nil {
		scores, err := a.mirror.Top(ctx, d, profile.MaxScores)
		return scores, "redis", err
	}
	return a.profile.Leaderboard(d).Ranked(), "local", nil
}

func printLeaderboard(d profile.Difficulty, source string, scores []int) {
	fmt.Printf("Leaderboard - %s (%s)\n", d, source)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'runner play --difficulty %s' to set the first one!\n", d)
		return
	}

	fmt.Printf("  %-4s  %s\n", "Rank", "Score")
	fmt.Printf("  %-4s  %s\n", "----", "-----")
	for i, sc := range scores {
		fmt.Printf("  %-4d  %d\n", i+1, sc)
	}
	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0])
}

// printRunStats prints the run history summary kept by the sqlite store.
func printRunStats(ctx context.Context, a *app, d profile.Difficulty) {
	if a.sqlite == nil {
		return
	}
	rs, err := a.sqlite.Stats(ctx, d)
	if err != nil {
		a.logger.Warn("cannot read run history", "difficulty", d, "err", err)
		return
	}
	if rs.Games == 0 {
		return
	}
	fmt.Printf("Games: %d  Average: %.0f  Last played: %s\n",
		rs.Games, rs.AvgScore, rs.LastPlayed.Local().Format("2006-01-02 15:04"))
}
