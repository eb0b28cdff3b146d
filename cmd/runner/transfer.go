package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boko-runner/internal/profile"
	"github.com/vovakirdan/boko-runner/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.xml>",
	Short: "Write the profile in the legacy XML save format",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx, false)
		if err != nil {
			fail("opening profile: %v", err)
		}
		defer a.Close()

		out, err := storage.NewXMLFile(args[0], a.logger)
		if err != nil {
			fail("%v", err)
		}
		if err := out.Save(ctx, a.profile.Data()); err != nil {
			fail("exporting: %v", err)
		}
		fmt.Printf("Profile exported to %s\n", out.Path())
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.xml>",
	Short: "Replace the profile with a legacy XML save",
	Long: `Replace the current profile with the content of a legacy XML save.
A save that fails its integrity check is refused.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if _, err := os.Stat(args[0]); err != nil {
			fail("%v", err)
		}

		a, err := openApp(ctx, false)
		if err != nil {
			fail("opening profile: %v", err)
		}
		defer a.Close()

		in, err := storage.NewXMLFile(args[0], a.logger)
		if err != nil {
			fail("%v", err)
		}
		data, err := in.Load(ctx)
		if err != nil {
			if isCorrupt(err) {
				fail("%s is not a valid save, nothing imported", args[0])
			}
			fail("reading %s: %v", args[0], err)
		}

		if err := a.store.Save(ctx, data); err != nil {
			fail("importing: %v", err)
		}
		if a.mirror != nil {
			for _, d := range profile.Difficulties {
				if err := a.mirror.PublishLeaderboard(ctx, d, data.Scores[d]); err != nil {
					a.logger.Warn("leaderboard mirror failed", "difficulty", d, "err", err)
				}
			}
		}
		fmt.Printf("Imported %s (wallet %d, %d games played)\n",
			args[0], data.Settings.Wallet, data.Stats.TotalGames)
	},
}
