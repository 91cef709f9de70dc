package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/corey/kokkai/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// formatKey renders a speech key as minutes#order(speaker).
func formatKey(k ports.SpeechKey) string {
	return fmt.Sprintf("%s#%d(%s)", k.MinutesID, k.Order, k.Speaker)
}

// formatRun formats a clustering run for terminal display.
//
//	⚡ 2 clusters │ 120 speeches │ 310 tokens │ run 0190… │ core ≤ 0.50 sub ≤ 0.75
//	  [1] m1#4(Sato)  core 5  sub 8
//	      #pension #reform
//	      m1#4(Sato) m1#9(Suzuki) ...
func formatRun(run *ports.ClusterRun) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d clusters%s │ %d speeches │ %d tokens │ run %s │ core ≤ %.2f sub ≤ %.2f\n",
		colorBold, len(run.Clusters), colorReset, run.SpeechCount, run.Vocabulary, run.ID,
		run.Options.CoreThreshold, run.Options.SubThreshold))

	for i, c := range run.Clusters {
		sb.WriteString(fmt.Sprintf("  [%d] %s%s%s  core %d  sub %d\n",
			i+1, colorCyan, formatKey(c.Centroid), colorReset, len(c.Core), len(c.Sub)))
		if len(c.Phrases) > 0 {
			sb.WriteString("      ")
			for k, p := range c.Phrases {
				if k > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(fmt.Sprintf("%s#%s%s", colorGreen, p, colorReset))
			}
			sb.WriteString("\n")
		}
		members := make([]string, len(c.Core))
		for k, key := range c.Core {
			members[k] = formatKey(key)
		}
		sb.WriteString(fmt.Sprintf("      %s%s%s\n", colorGray, strings.Join(members, " "), colorReset))
	}
	return sb.String()
}

// formatRunList renders one line per stored run, oldest first.
func formatRunList(corpusID string, runs []*ports.ClusterRun) string {
	if len(runs) == 0 {
		return fmt.Sprintf("⚡ no runs for %s\n", corpusID)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %d runs%s │ %s\n", colorBold, len(runs), colorReset, corpusID))
	for _, r := range runs {
		sb.WriteString(fmt.Sprintf("  %s%s%s  %s  %d speeches  %d clusters\n",
			colorCyan, r.ID, colorReset,
			r.CreatedAt.Local().Format(time.DateTime), r.SpeechCount, len(r.Clusters)))
	}
	return sb.String()
}

// formatElapsed renders a duration as e.g. "42ms" or "1.3s".
func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
