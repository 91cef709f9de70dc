package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/kokkai/internal/app"
	"github.com/corey/kokkai/internal/ports"
)

var (
	runsLatest bool
	runsID     string
	runsJSON   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs <corpus>",
	Short: "List or show stored clustering runs",
	Long:  "Lists the runs stored for a corpus (id or corpus file path), or shows one with --latest or --run.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&runsLatest, "latest", false, "Show the most recent run")
	runsCmd.Flags().StringVar(&runsID, "run", "", "Show the run with this id")
	runsCmd.Flags().BoolVar(&runsJSON, "json", false, "Output as JSON")
}

func runRuns(cmd *cobra.Command, args []string) error {
	corpusID := app.CorpusID(args[0])

	a, release, err := openApp(true)
	if err != nil {
		return err
	}
	defer release()

	if !runsLatest && runsID == "" {
		runs, err := a.Store.ListRuns(corpusID)
		if err != nil {
			return err
		}
		if runsJSON {
			return writeJSON(os.Stdout, runs)
		}
		fmt.Print(formatRunList(corpusID, runs))
		return nil
	}

	var run *ports.ClusterRun
	if runsID != "" {
		run, err = a.Store.LoadRun(corpusID, runsID)
	} else {
		run, err = a.Store.LatestRun(corpusID)
	}
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run found for %s", corpusID)
	}
	if runsJSON {
		return writeJSON(os.Stdout, run)
	}
	fmt.Print(formatRun(run))
	return nil
}
