package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/kokkai/internal/app"
)

var wipeForce bool

var wipeCmd = &cobra.Command{
	Use:   "wipe <corpus>",
	Short: "Delete all stored runs for a corpus",
	Args:  cobra.ExactArgs(1),
	RunE:  runWipe,
}

func init() {
	wipeCmd.Flags().BoolVar(&wipeForce, "force", false, "Skip confirmation prompt")
}

func runWipe(cmd *cobra.Command, args []string) error {
	corpusID := app.CorpusID(args[0])
	paths := app.NewPaths(projectRoot())

	if _, err := os.Stat(paths.DB); os.IsNotExist(err) {
		fmt.Println("⚡ no data to wipe")
		return nil
	}

	if !wipeForce {
		fmt.Printf("⚠ This will delete all runs for %s. Continue? [y/N] ", corpusID)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("cancelled")
			return nil
		}
	}

	a, release, err := openApp(true)
	if err != nil {
		return err
	}
	defer release()

	if err := a.Store.DeleteCorpus(corpusID); err != nil {
		return err
	}
	fmt.Printf("⚡ runs for %s wiped\n", corpusID)
	return nil
}
