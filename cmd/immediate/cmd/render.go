package cmd

import (
	"fmt"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/go-drift/immediate/pkg/draw/raster"
	"github.com/go-drift/immediate/pkg/geometry"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Rasterize the demo scene to PNG",
		Long: `Run the demo scene for a number of frames and rasterize the last one
with the software rasterizer.

Flags:
  -o, --output FILE   PNG file to write (default: immediate.png)
  --width N           Viewport width (default: 480)
  --height N          Viewport height (default: 320)
  --frames N          Frames to run before rendering (default: 2)
  --font NAME         basic or goregular (default: basic)
  --type TEXT         Type TEXT into the text field after the first frame
  --click X,Y         Left click at X,Y after the first frame`,
		Usage: "immediate render [flags]",
		Run:   runRender,
	})
}

type renderOptions struct {
	sessionOptions
	output string
	input  inputScript
}

// inputScript is the input replayed after the first frame.
type inputScript struct {
	text  string
	click *geometry.Point
}

func (s inputScript) apply(sess *session) error {
	if s.click != nil {
		resp := click(sess.ui, *s.click)
		sess.logger.Info("click", "x", s.click.X, "y", s.click.Y, "response", resp.String())
	}
	if s.text != "" {
		return typeInto(sess.ui, s.text)
	}
	return nil
}

// parseInputFlag consumes --type or --click at args[i].
func parseInputFlag(s *inputScript, args []string, i int) (int, error) {
	name, value, inline := strings.Cut(args[i], "=")
	if name != "--type" && name != "--click" {
		return 0, nil
	}
	used := 1
	if !inline {
		if i+1 >= len(args) {
			return 0, fmt.Errorf("%s requires a value", name)
		}
		value = args[i+1]
		used = 2
	}
	if name == "--type" {
		s.text = value
		return used, nil
	}
	p, err := parsePoint(value)
	if err != nil {
		return 0, err
	}
	s.click = &p
	return used, nil
}

func parsePoint(s string) (geometry.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geometry.Point{}, fmt.Errorf("--click wants X,Y (got %q)", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 32)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("--click x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 32)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("--click y: %w", err)
	}
	return geometry.Point{X: float32(x), Y: float32(y)}, nil
}

func runRender(g *Globals, args []string) error {
	opts := renderOptions{sessionOptions: defaultSessionOptions(), output: "immediate.png"}
	for i := 0; i < len(args); i++ {
		if n, err := parseSessionFlag(&opts.sessionOptions, args, i); err != nil {
			return err
		} else if n > 0 {
			i += n - 1
			continue
		}
		if n, err := parseInputFlag(&opts.input, args, i); err != nil {
			return err
		} else if n > 0 {
			i += n - 1
			continue
		}
		switch args[i] {
		case "-o", "--output":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a file name", args[i])
			}
			opts.output = args[i+1]
			i++
		default:
			if strings.HasPrefix(args[i], "--output=") {
				opts.output = strings.TrimPrefix(args[i], "--output=")
				continue
			}
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	sess, err := newSession(g, opts.sessionOptions)
	if err != nil {
		return err
	}
	if err := sess.run(1); err != nil {
		return err
	}
	if err := opts.input.apply(sess); err != nil {
		return err
	}
	if err := sess.run(opts.frames); err != nil {
		return err
	}

	list := sess.ui.Draw(geometry.Point{}, sess.size)
	img := raster.NewImage(int(sess.size.Width), int(sess.size.Height))
	if err := raster.New(sess.resources).Rasterize(list, img); err != nil {
		return err
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.output, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", opts.output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	stats := sess.ui.Stats()
	fmt.Printf("Wrote %s (%dx%d, %d commands, %d nodes, frame %d)\n",
		opts.output, img.Bounds().Dx(), img.Bounds().Dy(), list.Len(), stats.Nodes, stats.Frame)
	return nil
}
