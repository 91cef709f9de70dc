package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/kokkai/internal/app"
	"github.com/corey/kokkai/internal/domain/topic"
)

var (
	topicsSuggest bool
	topicsAll     bool
	topicsTopic   int
	topicsMinLen  int
	topicsLimit   int
	topicsJSON    bool
)

var topicsCmd = &cobra.Command{
	Use:   "topics <topics.yaml> <clips.jsonl>",
	Short: "Assign clips to topics",
	Long: "Matches every clip title against the topic queries (\"a b;c\" = (a AND b) OR c).\n" +
		"With --suggest, lists frequent phrases of clips no topic matched (or of --all clips,\n" +
		"or of the clips of one --topic).",
	Args: cobra.ExactArgs(2),
	RunE: runTopics,
}

func init() {
	topicsCmd.Flags().BoolVar(&topicsSuggest, "suggest", false, "Suggest phrases from unmatched clips")
	topicsCmd.Flags().BoolVar(&topicsAll, "all", false, "With --suggest, count over all clips")
	topicsCmd.Flags().IntVar(&topicsTopic, "topic", 0, "With --suggest, count over the clips of this topic id")
	topicsCmd.MarkFlagsMutuallyExclusive("all", "topic")
	topicsCmd.Flags().IntVar(&topicsMinLen, "min-len", 0, "Min phrase length in characters for suggestions (default from config)")
	topicsCmd.Flags().IntVar(&topicsLimit, "limit", 20, "Max suggestions")
	topicsCmd.Flags().BoolVar(&topicsJSON, "json", false, "Output as JSON")
}

func runTopics(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open topics: %w", err)
	}
	topics, err := topic.LoadTopics(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	clips, err := app.LoadClips(args[1])
	if err != nil {
		return err
	}

	assigned, err := topic.Assign(topics, clips)
	if err != nil {
		return err
	}

	if topicsSuggest {
		minLen := cfg.Match.MinPhraseLen
		if cmd.Flags().Changed("min-len") {
			minLen = topicsMinLen
		}
		scope := topic.Unassigned()
		switch {
		case topicsAll:
			scope = topic.AllClips()
		case cmd.Flags().Changed("topic"):
			scope = topic.InTopic(topicsTopic)
		}
		suggestions := topic.Suggest(clips, assigned, scope, minLen)
		if topicsLimit > 0 && len(suggestions) > topicsLimit {
			suggestions = suggestions[:topicsLimit]
		}
		if topicsJSON {
			return writeJSON(os.Stdout, suggestions)
		}
		fmt.Printf("%s⚡ %d suggestions%s\n", colorBold, len(suggestions), colorReset)
		for _, s := range suggestions {
			fmt.Printf("  %s%s%s  %d\n", colorGreen, s.Phrase, colorReset, s.Count)
		}
		return nil
	}

	if topicsJSON {
		return writeJSON(os.Stdout, assigned)
	}

	unmatched := 0
	for _, c := range clips {
		if len(assigned.ClipTopics[c.ClipID]) == 0 {
			unmatched++
		}
	}
	fmt.Printf("%s⚡ %d topics%s │ %d clips │ %d unmatched\n",
		colorBold, len(topics), colorReset, len(clips), unmatched)
	for _, t := range topics {
		n := len(assigned.TopicClips[t.ID])
		color := colorCyan
		if n == 0 {
			color = colorYellow
		}
		fmt.Printf("  %s%d %s%s  %d clips\n", color, t.ID, t.Title, colorReset, n)
	}
	return nil
}
