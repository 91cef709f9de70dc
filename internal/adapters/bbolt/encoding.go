// Run blobs are gob-encoded. Runs are small (a few clusters of speech keys)
// and only ever read back by this package, so gob's self-describing stream is
// enough and keeps decoding tolerant of added fields.
package bbolt

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/corey/kokkai/internal/ports"
)

func encodeRun(run *ports.ClusterRun) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(run); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRun(data []byte) (*ports.ClusterRun, error) {
	var run ports.ClusterRun
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&run); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	return &run, nil
}
