// runner is a side-scrolling arcade runner for the terminal.
//
// Usage:
//
//	runner play                  - Start a game right away
//	runner menu                  - Main menu (play, shop, leaderboard, settings, statistics)
//	runner scores [easy|hard]    - Show the leaderboards
//	runner stats                 - Show lifetime statistics
//	runner shop                  - List the shop; runner shop buy <item> to purchase
//	runner export <file.xml>     - Write the profile in the legacy XML save format
//	runner import <file.xml>     - Replace the profile with a legacy XML save
//	runner reset                 - Clear the leaderboards (--all clears everything)
//	runner config                - Print the default runner YAML
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Profile location (default: ~/.boko-runner/runner.db)
//	--store <kind>      - Profile backend: sqlite or xml
//	--redis <addr>      - Mirror leaderboards to Redis
//	--log-level <lvl>   - debug, info, warn or error
//
// RUNNER_DB, RUNNER_CONFIG, RUNNER_REDIS_ADDR, RUNNER_STORE and
// RUNNER_LOG_LEVEL (also read from a .env file) provide flag defaults.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boko-runner/internal/config"
)

const (
	storeSQLite = "sqlite"
	storeXML    = "xml"

	defaultSQLitePath = "~/" + config.AppDirName + "/runner.db"
	defaultXMLPath    = "~/" + config.AppDirName + "/runner.xml"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagStore    string
	flagRedis    string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Boko Runner - an endless runner in your terminal",
	Long: `Boko Runner is a side-scrolling arcade runner: jump over enemies,
stomp them, collect coins and bonuses, and spend your coins in the shop.

Available commands:
  play     - Start a game
  menu     - Interactive main menu
  scores   - View the leaderboards
  stats    - View lifetime statistics
  shop     - List or buy shop items
  export   - Save the profile as legacy XML
  import   - Load a legacy XML save
  reset    - Clear leaderboards or all data
  config   - Print the runner configuration

Examples:
  runner menu
  runner play --difficulty easy
  runner scores hard
  runner shop buy doubler
  runner --store xml --db ./save.xml menu`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnv,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "", "Profile location (default "+defaultSQLitePath+" or "+defaultXMLPath+")")
	pf.StringVar(&flagStore, "store", storeSQLite, "Profile backend: sqlite or xml")
	pf.StringVar(&flagRedis, "redis", "", "Redis address for the leaderboard mirror (host:port)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
}

// applyEnv fills the flags the user did not set from the environment.
func applyEnv(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("store") && env.Store != "" {
		flagStore = env.Store
	}
	if !flags.Changed("db") && env.DB != "" {
		flagDBPath = env.DB
	}
	if !flags.Changed("redis") && env.RedisAddr != "" {
		flagRedis = env.RedisAddr
	}
	if !flags.Changed("log-level") && env.LogLevel != "" {
		flagLogLevel = env.LogLevel
	}
	if f := flags.Lookup("config"); f != nil && !f.Changed && env.Config != "" {
		flagConfig = env.Config
	}

	switch flagStore {
	case storeSQLite, storeXML:
	default:
		return fmt.Errorf("unknown store %q (want sqlite or xml)", flagStore)
	}
	if flagDBPath == "" {
		flagDBPath = defaultSQLitePath
		if flagStore == storeXML {
			flagDBPath = defaultXMLPath
		}
	}
	return nil
}
