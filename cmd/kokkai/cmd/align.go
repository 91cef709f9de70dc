package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/kokkai/internal/app"
)

var alignJSON bool

var alignCmd = &cobra.Command{
	Use:   "align <clips.jsonl> <speeches.jsonl>",
	Short: "Find the speech each clip shows",
	Long:  "For each clip, picks the speech by the clip's speaker in the clip's minutes that covers most of the clip's tokens.",
	Args:  cobra.ExactArgs(2),
	RunE:  runAlign,
}

func init() {
	alignCmd.Flags().BoolVar(&alignJSON, "json", false, "Output as JSON")
}

type alignedClip struct {
	ClipID    int     `json:"clip_id"`
	MinutesID string  `json:"minutes_id,omitempty"`
	Order     int     `json:"order,omitempty"`
	Speaker   string  `json:"speaker"`
	Score     float64 `json:"score"`
	Error     string  `json:"error,omitempty"`
}

func runAlign(cmd *cobra.Command, args []string) error {
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

	aligned := a.AlignClips(clips, speeches)

	if alignJSON {
		out := make([]alignedClip, len(aligned))
		for i, al := range aligned {
			out[i] = alignedClip{ClipID: al.Clip.ClipID, Speaker: al.Clip.Speaker, Score: al.Score}
			if al.Err != nil {
				out[i].Error = al.Err.Error()
				continue
			}
			out[i].MinutesID = al.Speech.MinutesID
			out[i].Order = al.Speech.Order
		}
		return writeJSON(os.Stdout, out)
	}

	fmt.Printf("%s⚡ %d clips%s\n", colorBold, len(aligned), colorReset)
	for _, al := range aligned {
		if al.Err != nil {
			fmt.Printf("  %d %s%s%s  %s✗ no speech%s\n",
				al.Clip.ClipID, colorGray, al.Clip.Title, colorReset, colorYellow, colorReset)
			continue
		}
		fmt.Printf("  %d %s%s%s  → %s%s%s  %.2f\n",
			al.Clip.ClipID, colorGray, al.Clip.Title, colorReset,
			colorCyan, formatKey(al.Speech.Key()), colorReset, al.Score)
	}
	return nil
}
