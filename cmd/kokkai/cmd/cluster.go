package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/corey/kokkai/internal/domain/cluster"
)

// clusterFlags are shared by cluster and watch. Set flags override config.
type clusterFlags struct {
	core    float64
	sub     float64
	max     int
	minCore int
	workers int
	clean   bool
	noSave  bool
}

func (f *clusterFlags) register(fs *pflag.FlagSet) {
	d := cluster.DefaultOptions()
	fs.Float64Var(&f.core, "core", d.CoreThreshold, "Max distance to the centroid for the core list")
	fs.Float64Var(&f.sub, "sub", d.SubThreshold, "Max distance to the centroid for the sub list")
	fs.IntVarP(&f.max, "max", "n", d.MaxClusters, "Max clusters to extract")
	fs.IntVar(&f.minCore, "min-core", d.MinCoreSize, "Stop once the best core is smaller than this")
	fs.IntVar(&f.workers, "workers", 0, "Distance matrix workers (0 = GOMAXPROCS)")
	fs.BoolVar(&f.clean, "clean", false, "Input is raw minutes text (drop speaker field and annotations)")
	fs.BoolVar(&f.noSave, "no-save", false, "Do not persist the run")
}

// options merges changed flags over the configured options.
func (f *clusterFlags) options(fs *pflag.FlagSet) cluster.Options {
	opts := cfg.ClusterOptions()
	if fs.Changed("core") {
		opts.CoreThreshold = f.core
	}
	if fs.Changed("sub") {
		opts.SubThreshold = f.sub
	}
	if fs.Changed("max") {
		opts.MaxClusters = f.max
	}
	if fs.Changed("min-core") {
		opts.MinCoreSize = f.minCore
	}
	if fs.Changed("workers") {
		opts.Workers = f.workers
	}
	if fs.Changed("clean") {
		cfg.Cluster.CleanText = f.clean
	}
	return opts
}

var (
	clusterOpts clusterFlags
	clusterJSON bool
)

var clusterCmd = &cobra.Command{
	Use:   "cluster <speeches.jsonl>",
	Short: "Group speeches by shared key phrases",
	Long: "Builds the distance matrix over a JSONL speech corpus and extracts clusters greedily.\n" +
		"The run is stored in .kokkai/kokkai.db under the corpus file name.",
	Args: cobra.ExactArgs(1),
	RunE: runCluster,
}

func init() {
	clusterOpts.register(clusterCmd.Flags())
	clusterCmd.Flags().BoolVar(&clusterJSON, "json", false, "Output the run as JSON")
}

func runCluster(cmd *cobra.Command, args []string) error {
	opts := clusterOpts.options(cmd.Flags())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, release, err := openApp(!clusterOpts.noSave)
	if err != nil {
		return err
	}
	defer release()

	start := time.Now()
	run, err := a.RunClusters(ctx, args[0], opts)
	if err != nil {
		return err
	}

	if clusterJSON {
		return writeJSON(os.Stdout, run)
	}
	fmt.Print(formatRun(run))
	fmt.Printf("%s  %s%s\n", colorGray, formatElapsed(time.Since(start)), colorReset)
	return nil
}
