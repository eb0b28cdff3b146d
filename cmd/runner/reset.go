package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagResetAll bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the leaderboards",
	Long: `Clear every leaderboard. With --all the settings, statistics, wallet
and purchases are reset too.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx, false)
		if err != nil {
			fail("opening profile: %v", err)
		}
		defer a.Close()

		if flagResetAll {
			a.profile.ClearAppData()
		} else {
			a.profile.ClearLeaderboard()
		}
		if err := a.save(ctx); err != nil {
			fail("saving profile: %v", err)
		}

		if flagResetAll {
			fmt.Println("All data cleared.")
		} else {
			fmt.Println("Leaderboards cleared.")
		}
	},
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetAll, "all", false, "Clear every app datum, not only the leaderboards")
}
