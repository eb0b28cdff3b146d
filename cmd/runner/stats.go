package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boko-runner/internal/profile"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime statistics",
	Long: `Display the lifetime counters and the totals of the last game.
The sqlite store also keeps a history of runs, shown below them.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx, false)
		if err != nil {
			fail("opening profile: %v", err)
		}
		defer a.Close()

		settings := a.profile.Settings()
		values := a.profile.Stats().Map()

		fmt.Println("Statistics")
		fmt.Println()
		for _, k := range profile.StatKeys {
			fmt.Printf("  %-28s %10d\n", k, values[k])
		}
		fmt.Printf("  %-28s %10d\n", "wallet", settings.Wallet)

		runs := recentRuns(ctx, a)
		if len(runs) == 0 {
			return
		}

		fmt.Println()
		fmt.Println("Recent runs")
		fmt.Println()
		fmt.Printf("  %-16s  %-4s  %8s  %7s  %5s  %s\n", "Date", "Mode", "Score", "Dist", "Coins", "Time")
		fmt.Printf("  %-16s  %-4s  %8s  %7s  %5s  %s\n", "----", "----", "-----", "----", "-----", "----")
		for _, r := range runs {
			fmt.Printf("  %-16s  %-4s  %8d  %7d  %5d  %s\n",
				r.PlayedAt.Local().Format("2006-01-02 15:04"), r.Difficulty,
				r.Score, r.Distance, r.Coins, formatDuration(r.Duration.Seconds()))
		}

		for _, d := range profile.Difficulties {
			rs, err := a.sqlite.Stats(ctx, d)
			if err != nil || rs.Games == 0 {
				continue
			}
			fmt.Printf("\n%s: %d games, best %d, total %d\n",
				strings.ToUpper(d.String()), rs.Games, rs.BestScore, rs.TotalScore)
		}
	},
}

func formatDuration(sec float64) string {
	s := int(sec)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
