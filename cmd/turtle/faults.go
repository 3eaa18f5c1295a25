package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/turtle/internal/platform/tui"
)

var (
	flagFaultLimit int
	flagPlain      bool
)

var faultsCmd = &cobra.Command{
	Use:   "faults [dir]",
	Short: "Show recorded script faults",
	Long: `Display the most recent script faults that halted a game, newest first.
Without a directory, faults of every game are listed. On a terminal the
faults open in a browser; --plain prints them instead.

Examples:
  turtle faults
  turtle faults ./examples/bounce --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFaults,
}

func init() {
	faultsCmd.Flags().IntVar(&flagFaultLimit, "limit", 10, "Number of faults to show")
	faultsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print faults instead of opening the browser")
}

func runFaults(cmd *cobra.Command, args []string) error {
	env, err := setup(dirArg(args), nil, "turtle")
	if err != nil {
		return err
	}
	defer env.close()

	if env.store == nil {
		return fmt.Errorf("cannot open save database %s", env.cfg.Storage.DB)
	}
	faults, err := env.store.RecentFaults(env.gameID, flagFaultLimit)
	if err != nil {
		return err
	}

	if !flagPlain && len(faults) > 0 && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			width, height = 80, 24
		}
		return tui.RunFaults(faults, width, height)
	}

	out := cmd.OutOrStdout()
	if len(faults) == 0 {
		fmt.Fprintln(out, "No faults recorded.")
		return nil
	}
	for _, f := range faults {
		fmt.Fprintf(out, "%s  %s\n", f.CreatedAt.Format("2006-01-02 15:04"), f.GameID)
		for _, line := range strings.Split(f.Message, "\n") {
			fmt.Fprintf(out, "    %s\n", line)
		}
		fmt.Fprintln(out)
	}
	return nil
}
