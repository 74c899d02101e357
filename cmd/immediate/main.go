// Command immediate renders and inspects the demo scene headlessly.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/immediate/cmd/immediate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
