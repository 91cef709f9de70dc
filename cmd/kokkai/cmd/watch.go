package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/corey/kokkai/internal/adapters/fsnotify"
	"github.com/corey/kokkai/internal/ports"
)

var (
	watchOpts     clusterFlags
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <speeches.jsonl>",
	Short: "Recluster a corpus whenever it changes",
	Long:  "Clusters the corpus, then again after every write to it, until interrupted.",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchOpts.register(watchCmd.Flags())
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", fsnotify.DefaultDebounce, "Quiet period before a rerun")
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts := watchOpts.options(cmd.Flags())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, release, err := openApp(!watchOpts.noSave)
	if err != nil {
		return err
	}
	defer release()

	w, err := fsnotify.NewWatcher(watchDebounce)
	if err != nil {
		return err
	}
	defer w.Stop()

	fmt.Printf("⚡ watching %s (ctrl-c to stop)\n", args[0])
	return a.WatchCorpus(ctx, args[0], opts, w, func(run *ports.ClusterRun, err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "%serror: %v%s\n", colorYellow, err, colorReset)
			return
		}
		fmt.Print(formatRun(run))
	})
}
