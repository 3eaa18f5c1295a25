// turtle runs 2D games written in JavaScript, TypeScript or Lua in the
// terminal.
//
// Usage:
//
//	turtle [dir]             - Run the game in dir (no dir shows a placeholder)
//	turtle run [dir]         - Same as above
//	turtle serve [dir]       - Serve the game over SSH
//	turtle faults [dir]      - Show recorded script faults
//	turtle version           - Print the version
//
// Global flags:
//
//	--fps <rate>         - Override the frame rate
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Extra config file layered over the defaults
//	--db <path>          - Save database path
//	--log-file <path>    - Write logs to a rotated file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
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
	Use:   "turtle [dir]",
	Short: "TURTLE - run 2D script games in your terminal",
	Long: `TURTLE runs a game directory containing main.js, main.ts or main.lua.
The script defines load(), update(dt) and draw() and reaches the runtime
through the global turtle object.

Available commands:
  run      - Run a game locally (the default)
  serve    - Serve a game over SSH
  faults   - Show recorded script faults
  version  - Print the version

Examples:
  turtle ./examples/bounce
  turtle run ./examples/bounce --fps 30
  turtle serve ./examples/bounce --ssh :2222
  turtle faults ./examples/bounce`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runGame,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to an extra config file (YAML, TOML or JSON)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to save database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Path to log file (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (default from config)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(faultsCmd)
	rootCmd.AddCommand(versionCmd)
}
