package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/corey/kokkai/internal/ports"
)

func TestFormatKey(t *testing.T) {
	assert.Equal(t, "m1#3(Sato)", formatKey(ports.SpeechKey{MinutesID: "m1", Order: 3, Speaker: "Sato"}))
}

func TestFormatRun(t *testing.T) {
	sato := ports.SpeechKey{MinutesID: "m1", Order: 1, Speaker: "Sato"}
	suzuki := ports.SpeechKey{MinutesID: "m1", Order: 2, Speaker: "Suzuki"}
	run := &ports.ClusterRun{
		ID:          "run-1",
		SpeechCount: 3,
		Vocabulary:  4,
		Options:     ports.RunOptions{CoreThreshold: 0.5, SubThreshold: 0.75},
		Clusters: []ports.ClusterRecord{{
			Centroid: sato,
			Core:     []ports.SpeechKey{sato, suzuki},
			Sub:      []ports.SpeechKey{sato, suzuki},
			Phrases:  []string{"pension", "reform"},
		}},
	}

	out := formatRun(run)
	assert.Contains(t, out, "1 clusters")
	assert.Contains(t, out, "3 speeches")
	assert.Contains(t, out, "4 tokens")
	assert.Contains(t, out, "run run-1")
	assert.Contains(t, out, "core ≤ 0.50 sub ≤ 0.75")
	assert.Contains(t, out, "core 2  sub 2")
	assert.Contains(t, out, "#pension")
	assert.Contains(t, out, "m1#1(Sato) m1#2(Suzuki)")
}

func TestFormatRunList(t *testing.T) {
	assert.Equal(t, "⚡ no runs for c\n", formatRunList("c", nil))

	runs := []*ports.ClusterRun{
		{ID: "a", CreatedAt: time.Now(), SpeechCount: 10},
		{ID: "b", CreatedAt: time.Now(), SpeechCount: 12, Clusters: make([]ports.ClusterRecord, 2)},
	}
	out := formatRunList("c", runs)
	assert.Contains(t, out, "2 runs")
	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.Contains(t, out, "12 speeches  2 clusters")
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "42ms", formatElapsed(42*time.Millisecond))
	assert.Equal(t, "1.5s", formatElapsed(1500*time.Millisecond))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	run := &ports.ClusterRun{ID: "x", Clusters: []ports.ClusterRecord{}}
	require.NoError(t, writeJSON(&buf, run))
	assert.Contains(t, buf.String(), `"id": "x"`)
	assert.Contains(t, buf.String(), `"clusters": []`)
}

func TestIsDBLockError(t *testing.T) {
	assert.False(t, isDBLockError(nil))
	assert.False(t, isDBLockError(errors.New("permission denied")))
	assert.False(t, isDBLockError(errors.New("timeout")))
	assert.True(t, isDBLockError(fmt.Errorf("open database: %w", berrors.ErrTimeout)))
}
