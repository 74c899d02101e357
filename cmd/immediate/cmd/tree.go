package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

func init() {
	RegisterCommand(&Command{
		Name:  "tree",
		Short: "Print the reconciled node tree",
		Long: `Run the demo scene and print the node tree and frame statistics as
YAML. Output to a terminal is coloured.

Flags:
  --width N           Viewport width (default: 480)
  --height N          Viewport height (default: 320)
  --frames N          Frames to run before printing (default: 2)
  --font NAME         basic or goregular (default: basic)
  --type TEXT         Type TEXT into the text field after the first frame
  --click X,Y         Left click at X,Y after the first frame
  --no-color          Never colour the output`,
		Usage: "immediate tree [flags]",
		Run:   runTree,
	})
}

func runTree(g *Globals, args []string) error {
	opts := defaultSessionOptions()
	var script inputScript
	noColor := false
	for i := 0; i < len(args); i++ {
		if n, err := parseSessionFlag(&opts, args, i); err != nil {
			return err
		} else if n > 0 {
			i += n - 1
			continue
		}
		if n, err := parseInputFlag(&script, args, i); err != nil {
			return err
		} else if n > 0 {
			i += n - 1
			continue
		}
		if args[i] == "--no-color" {
			noColor = true
			continue
		}
		return fmt.Errorf("unknown flag: %s", args[i])
	}

	sess, err := newSession(g, opts)
	if err != nil {
		return err
	}
	if err := sess.run(1); err != nil {
		return err
	}
	if err := script.apply(sess); err != nil {
		return err
	}
	if err := sess.run(opts.frames); err != nil {
		return err
	}

	out, err := sess.ui.Dump()
	if err != nil {
		return err
	}
	color := !noColor && isTerminal(os.Stdout)
	if err := writeTree(os.Stdout, out, color); err != nil {
		return err
	}
	fmt.Printf("# mean build time over %d frames: %v\n", len(sess.ui.Timings()), meanTiming(sess))
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func meanTiming(sess *session) time.Duration {
	samples := sess.ui.Timings()
	if len(samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range samples {
		total += d
	}
	return total / time.Duration(len(samples))
}

const (
	ansiKey   = "\x1b[36m"
	ansiKind  = "\x1b[1;33m"
	ansiReset = "\x1b[0m"
)

// writeTree copies the YAML dump to w, colouring keys and node kinds when
// color is set.
func writeTree(w io.Writer, dump []byte, color bool) error {
	if !color {
		_, err := w.Write(dump)
		return err
	}
	bw := bufio.NewWriter(w)
	sc := bufio.NewScanner(bytes.NewReader(dump))
	for sc.Scan() {
		bw.WriteString(colorLine(sc.Text()))
		bw.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return bw.Flush()
}

func colorLine(line string) string {
	trimmed := strings.TrimLeft(line, " -")
	indent := line[:len(line)-len(trimmed)]
	key, value, ok := strings.Cut(trimmed, ":")
	if !ok {
		return line
	}
	if key == "kind" {
		return indent + ansiKey + key + ansiReset + ":" + ansiKind + value + ansiReset
	}
	return indent + ansiKey + key + ansiReset + ":" + value
}
