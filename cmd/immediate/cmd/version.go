package cmd

import "fmt"

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the CLI version and build time.",
		Usage: "immediate version",
		Run: func(*Globals, []string) error {
			printVersion()
			return nil
		},
	})
}

func printVersion() {
	fmt.Printf("immediate version %s (built %s)\n", Version, BuildTime)
}
