package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/kokkai/internal/app"
)

var (
	similarK    int
	similarJSON bool
)

var similarCmd = &cobra.Command{
	Use:   "similar <clips.jsonl> <speeches.jsonl>",
	Short: "Rank related clips",
	Long: "Aligns each clip to its speech, then ranks for every clip the clips whose\n" +
		"transcripts cover most of its tokens. A clip always ranks itself.",
	Args: cobra.ExactArgs(2),
	RunE: runSimilar,
}

func init() {
	similarCmd.Flags().IntVarP(&similarK, "top", "k", 0, "Related clips per clip (default from config)")
	similarCmd.Flags().BoolVar(&similarJSON, "json", false, "Output as JSON")
}

type relatedClip struct {
	ClipID int     `json:"clip_id"`
	Score  float64 `json:"score"`
}

func runSimilar(cmd *cobra.Command, args []string) error {
	k := cfg.Match.TopK
	if cmd.Flags().Changed("top") {
		k = similarK
	}

	clips, err := app.LoadClips(args[0])
	if err != nil {
		return err
	}
	speeches, err := app.LoadSpeeches(args[1])
	if err != nil {
		return err
	}

	a, release, err := openApp(false)
	if err != nil {
		return err
	}
	defer release()

	ranked, err := a.SimilarClips(clips, speeches, k)
	if err != nil {
		return err
	}

	if similarJSON {
		out := make(map[int][]relatedClip, len(clips))
		for i, scores := range ranked {
			rel := make([]relatedClip, len(scores))
			for j, s := range scores {
				rel[j] = relatedClip{ClipID: clips[s.Index].ClipID, Score: s.Score}
			}
			out[clips[i].ClipID] = rel
		}
		return writeJSON(os.Stdout, out)
	}

	fmt.Printf("%s⚡ %d clips%s │ top %d\n", colorBold, len(clips), colorReset, k)
	for i, scores := range ranked {
		fmt.Printf("  %s%d %s%s\n", colorCyan, clips[i].ClipID, clips[i].Title, colorReset)
		for _, s := range scores {
			fmt.Printf("      %.2f  %d %s%s%s\n",
				s.Score, clips[s.Index].ClipID, colorGray, clips[s.Index].Title, colorReset)
		}
	}
	return nil
}
