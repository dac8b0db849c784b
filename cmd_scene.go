package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/scene"
)

var (
	sceneFrames int
	sceneFPS    int
	sceneScroll float64
	sceneOut    string
	sceneWidth  int
	sceneHeight int
	sceneAt     float64
)

var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "Inspect the animated page backgrounds",
}

var sceneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scene presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTITLE\tLAYERS\tPARTICLES\tSHAPES")
		for _, name := range scene.Presets() {
			spec, err := scene.Lookup(name)
			if err != nil {
				return err
			}
			particles := 0
			for _, l := range spec.Layers {
				particles += l.Count
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", name, spec.Title, len(spec.Layers), particles, len(spec.Shapes))
		}
		return w.Flush()
	},
}

var sceneFramesCmd = &cobra.Command{
	Use:   "frames <name>",
	Short: "Print synthetic frames as JSON lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := mountCLI(args[0])
		if err != nil {
			return err
		}
		defer sc.Unmount()
		if sceneFPS <= 0 {
			return fmt.Errorf("fps must be positive")
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		var encErr error
		sc.Emit(func(f scene.Frame) {
			if encErr == nil {
				encErr = enc.Encode(f)
			}
		})
		sc.Scroll().Set(sceneScroll)
		delta := time.Second / time.Duration(sceneFPS)
		for i := 0; i < sceneFrames && encErr == nil; i++ {
			sc.Step(delta)
		}
		return encErr
	},
}

var scenePosterCmd = &cobra.Command{
	Use:   "poster <name>",
	Short: "Render a still PNG of a scene",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := mountCLI(args[0])
		if err != nil {
			return err
		}
		defer sc.Unmount()
		sc.Scroll().Set(sceneScroll)
		sc.Step(time.Duration(sceneAt * float64(time.Second)))

		f, err := os.Create(sceneOut)
		if err != nil {
			return err
		}
		if err := scene.WritePoster(f, sc, sceneWidth, sceneHeight); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("poster written")
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", sceneOut, sceneWidth, sceneHeight)
		return nil
	},
}

var scenePreviewCmd = &cobra.Command{
	Use:   "preview <name>",
	Short: "Animate a scene in the terminal (j/k or arrows scroll, q quits)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := mountCLI(args[0])
		if err != nil {
			return err
		}
		defer sc.Unmount()
		_, err = tea.NewProgram(newPreview(sc, sceneFPS), tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	sceneFramesCmd.Flags().IntVar(&sceneFrames, "frames", 30, "number of frames")
	for _, c := range []*cobra.Command{sceneFramesCmd, scenePreviewCmd} {
		c.Flags().IntVar(&sceneFPS, "fps", 30, "frames per second")
	}
	for _, c := range []*cobra.Command{sceneFramesCmd, scenePosterCmd} {
		c.Flags().Float64Var(&sceneScroll, "scroll", 0, "page scroll offset in pixels")
	}
	scenePosterCmd.Flags().StringVarP(&sceneOut, "out", "o", "poster.png", "output file")
	scenePosterCmd.Flags().IntVar(&sceneWidth, "width", 1200, "image width")
	scenePosterCmd.Flags().IntVar(&sceneHeight, "height", 630, "image height")
	scenePosterCmd.Flags().Float64Var(&sceneAt, "at", 2, "elapsed seconds to render")
	sceneCmd.AddCommand(sceneListCmd, sceneFramesCmd, scenePosterCmd, scenePreviewCmd)
}

func mountCLI(name string) (*scene.Scene, error) {
	spec, err := scene.Lookup(name)
	if err != nil {
		return nil, err
	}
	return scene.Mount(spec, scene.Options{Capable: true, Logger: logger}), nil
}

// preview is a bubbletea model that drives the scene with synthetic ticks.
type preview struct {
	sc     *scene.Scene
	fps    int
	width  int
	height int
	scroll float64
	styles map[string]lipgloss.Style
}

type previewTick time.Time

func newPreview(sc *scene.Scene, fps int) *preview {
	if fps <= 0 {
		fps = 30
	}
	return &preview{sc: sc, fps: fps, width: 80, height: 24, styles: make(map[string]lipgloss.Style)}
}

func (p *preview) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(p.fps), func(t time.Time) tea.Msg { return previewTick(t) })
}

func (p *preview) Init() tea.Cmd { return p.tick() }

func (p *preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case "j", "down":
			p.scroll += 50
		case "k", "up":
			p.scroll = max(0, p.scroll-50)
		}
		p.sc.Scroll().Set(p.scroll)
	case previewTick:
		p.sc.Step(time.Second / time.Duration(p.fps))
		return p, p.tick()
	}
	return p, nil
}

func (p *preview) View() string {
	rows := max(1, p.height-1)
	// Terminal cells are about twice as tall as wide.
	grid := make([][]string, rows)
	for y := range grid {
		grid[y] = make([]string, p.width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	for _, pt := range scene.Project(p.sc, p.width, rows*2) {
		x, y := int(pt.X), int(pt.Y/2)
		if x < 0 || x >= p.width || y < 0 || y >= rows {
			continue
		}
		glyph := "·"
		switch {
		case pt.Radius > 2:
			glyph = "●"
		case pt.Radius > 0.6:
			glyph = "•"
		}
		grid[y][x] = p.style(scene.Hex(pt.Color)).Render(glyph)
	}
	var b strings.Builder
	for _, row := range grid {
		b.WriteString(strings.Join(row, ""))
		b.WriteByte('\n')
	}
	status := fmt.Sprintf(" %s  scroll %.0f  frame %d  (j/k scroll, q quit)",
		p.sc.Spec().Title, p.scroll, p.sc.Driver().Frames())
	b.WriteString(lipgloss.NewStyle().Faint(true).Render(status))
	return b.String()
}

func (p *preview) style(hex string) lipgloss.Style {
	st, ok := p.styles[hex]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		p.styles[hex] = st
	}
	return st
}
