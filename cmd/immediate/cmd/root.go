// Package cmd implements the immediate CLI commands.
//
// A root command dispatches to subcommands (render, tree, version). Global
// flags are stripped before dispatch.
package cmd

import (
	"fmt"
	"os"
	"strings"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(g *Globals, args []string) error
	SubCommands []*Command
}

// Globals are the flags accepted before the command name.
type Globals struct {
	// Dir is the project directory configuration is read from.
	Dir string
	// LogLevel overrides engine.log_level from the configuration.
	LogLevel string
}

var rootCmd = &Command{
	Name:  "immediate",
	Short: "immediate - headless driver for the immediate-mode engine",
	Long: `immediate runs the demo scene through the engine without a window.
It can rasterize a frame to PNG or print the reconciled node tree.

Use "immediate <command> --help" for more information about a command.`,
	Usage: "immediate [flags] <command> [args]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	g := &Globals{Dir: "."}
	var filtered []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(filtered) > 0 {
			filtered = append(filtered, arg)
			continue
		}
		switch {
		case arg == "-h" || arg == "--help" || arg == "help":
			printHelp(rootCmd)
			return nil
		case arg == "-v" || arg == "--version":
			printVersion()
			return nil
		case arg == "--dir" || arg == "--log-level":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", arg)
			}
			setGlobal(g, arg, args[i+1])
			i++
		case strings.HasPrefix(arg, "--dir="), strings.HasPrefix(arg, "--log-level="):
			name, value, _ := strings.Cut(arg, "=")
			setGlobal(g, name, value)
		default:
			filtered = append(filtered, arg)
		}
	}
	if len(filtered) == 0 {
		printHelp(rootCmd)
		return nil
	}

	name := filtered[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", name)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", name)
	}

	cmdArgs := filtered[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" {
			printCommandHelp(cmd)
			return nil
		}
	}
	return cmd.Run(g, cmdArgs)
}

func setGlobal(g *Globals, name, value string) {
	switch name {
	case "--dir":
		g.Dir = value
	case "--log-level":
		g.LogLevel = value
	}
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println("  --dir DIR            Project directory holding immediate.yaml (default: .)")
	fmt.Println("  --log-level LEVEL    debug, info, warn or error")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  immediate render -o demo.png        Rasterize the demo scene")
	fmt.Println("  immediate tree --frames 3           Print the node tree after three frames")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}
