// snake plays the grid snake variants in the terminal.
//
// Usage:
//
//	snake list               - List available variants
//	snake play <variant>     - Play a variant
//	snake menu               - Pick variants interactively
//	snake scores <variant>   - Show high scores for a variant
//	snake simulate <variant> - Let the autopilot play headless
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/snake.db)
//	--log-file <path>     - Where the TUI writes its log (default: ~/.arcade/snake.log)
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - chase food or villagers in your terminal",
	Long: `Snake is a terminal grid game in two variants.

  snake          - Classic: knives line the border, every meal scores 1
  snake_capture  - Village Hunt: catch the fleeing human among houses,
                   trees and wells; 5 points per catch, 20 wins

Available commands:
  list      - Show all variants
  play      - Play a variant directly
  menu      - Interactive variant picker
  scores    - View high scores
  simulate  - Run the autopilot without a terminal UI

Examples:
  snake list
  snake play snake_capture
  snake menu --fps 30
  snake simulate snake --seed 42`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/snake.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/snake.log", "Path to the log file used while the TUI runs")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}
