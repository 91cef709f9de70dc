// kokkai groups parliamentary speeches by shared key phrases and links video
// clips to the speeches they show.
package main

import (
	"fmt"
	"os"

	"github.com/corey/kokkai/cmd/kokkai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
