package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jask/plotnav/nav"
	"github.com/jask/plotnav/widgets"
)

// ---------------------------------------------------------------------------
// Figure configuration (TOML-based)
// ---------------------------------------------------------------------------

// paneSpec defines one plot pane of the figure.
type paneSpec struct {
	ID        string `toml:"id"`
	Title     string `toml:"title"`
	Series    string `toml:"series"`    // generator name
	Samples   int    `toml:"samples"`   // sample count, default 400
	XScale    string `toml:"x_scale"`   // "linear" or "log"
	YScale    string `toml:"y_scale"`   // "linear" or "log"
	ShareX    string `toml:"share_x"`   // x axis group name
	ShareY    string `toml:"share_y"`   // y axis group name
	Row       int    `toml:"row"`       // layout row index
	Navigable bool   `toml:"navigable"` // participates in gestures
	Zoomable  bool   `toml:"zoomable"`
	Pannable  bool   `toml:"pannable"`
}

// figureFile is the top-level TOML structure.
type figureFile struct {
	Title string     `toml:"title"`
	Pane  []paneSpec `toml:"pane"`
}

const defaultFigureTOML = `# Plotnav figure definition
# Add [[pane]] blocks to lay out more plots. Panes sharing a row split
# the terminal width; rows split the height.

title = "Signal workbench"

[[pane]]
id = "sweep"
title = "Chirp"
series = "chirp"
samples = 600
x_scale = "linear"
y_scale = "linear"
share_x = "time"
row = 0
navigable = true
zoomable = true
pannable = true

[[pane]]
id = "envelope"
title = "Damped envelope"
series = "damped"
samples = 600
x_scale = "linear"
y_scale = "linear"
share_x = "time"
row = 0
navigable = true
zoomable = true
pannable = true

[[pane]]
id = "bode"
title = "Response magnitude"
series = "rolloff"
samples = 400
x_scale = "log"
y_scale = "log"
row = 1
navigable = true
zoomable = true
pannable = true
`

// loadFigure reads a figure definition, falling back to the embedded
// default when path is empty.
func loadFigure(path string) (figureFile, error) {
	data := []byte(defaultFigureTOML)
	if path != "" {
		read, err := os.ReadFile(path)
		if err != nil {
			return figureFile{}, fmt.Errorf("read figure: %w", err)
		}
		data = read
	}
	return parseFigure(data)
}

// parseFigure parses TOML bytes into a validated figure definition.
func parseFigure(data []byte) (figureFile, error) {
	var f figureFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return figureFile{}, fmt.Errorf("parse figure: %w", err)
	}
	if len(f.Pane) == 0 {
		return figureFile{}, fmt.Errorf("no panes defined in figure")
	}
	seen := make(map[string]bool)
	for i := range f.Pane {
		p := &f.Pane[i]
		if p.ID == "" {
			return figureFile{}, fmt.Errorf("pane[%d]: id is required", i)
		}
		if seen[p.ID] {
			return figureFile{}, fmt.Errorf("pane[%d]: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
		if p.Title == "" {
			p.Title = p.ID
		}
		if p.Samples <= 1 {
			p.Samples = 400
		}
		if _, err := parseScale(p.XScale); err != nil {
			return figureFile{}, fmt.Errorf("pane %q: x_scale: %w", p.ID, err)
		}
		if _, err := parseScale(p.YScale); err != nil {
			return figureFile{}, fmt.Errorf("pane %q: y_scale: %w", p.ID, err)
		}
		if _, err := seriesGenerator(p.Series); err != nil {
			return figureFile{}, fmt.Errorf("pane %q: %w", p.ID, err)
		}
		if p.Row < 0 {
			return figureFile{}, fmt.Errorf("pane %q: negative row", p.ID)
		}
	}
	return f, nil
}

func parseScale(s string) (nav.Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return nav.ScaleLinear, nil
	case "log":
		return nav.ScaleLog, nil
	default:
		return nav.ScaleLinear, fmt.Errorf("unknown scale %q", s)
	}
}

// ---------------------------------------------------------------------------
// Series generators
// ---------------------------------------------------------------------------

type generator func(n int) []widgets.Point

func seriesGenerator(name string) (generator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sine":
		return genSine, nil
	case "chirp":
		return genChirp, nil
	case "damped":
		return genDamped, nil
	case "rolloff":
		return genRolloff, nil
	case "noise":
		return genNoise, nil
	default:
		return nil, fmt.Errorf("unknown series %q", name)
	}
}

func genSine(n int) []widgets.Point {
	out := make([]widgets.Point, n)
	for i := 0; i < n; i++ {
		x := 10 * float64(i) / float64(n-1)
		out[i] = widgets.Point{X: x, Y: math.Sin(2 * math.Pi * x / 2.5)}
	}
	return out
}

func genChirp(n int) []widgets.Point {
	out := make([]widgets.Point, n)
	for i := 0; i < n; i++ {
		x := 10 * float64(i) / float64(n-1)
		out[i] = widgets.Point{X: x, Y: math.Sin(2 * math.Pi * (0.2*x + 0.08*x*x))}
	}
	return out
}

func genDamped(n int) []widgets.Point {
	out := make([]widgets.Point, n)
	for i := 0; i < n; i++ {
		x := 10 * float64(i) / float64(n-1)
		out[i] = widgets.Point{X: x, Y: math.Exp(-0.35*x) * math.Cos(2*math.Pi*x)}
	}
	return out
}

// genRolloff is a low-pass magnitude curve over four decades, suited to
// log/log axes.
func genRolloff(n int) []widgets.Point {
	out := make([]widgets.Point, n)
	for i := 0; i < n; i++ {
		f := math.Pow(10, 4*float64(i)/float64(n-1)) // 1 .. 10^4
		mag := 1 / math.Sqrt(1+math.Pow(f/100, 4))
		out[i] = widgets.Point{X: f, Y: math.Max(mag, 1e-6)}
	}
	return out
}

func genNoise(n int) []widgets.Point {
	rng := rand.New(rand.NewSource(42))
	out := make([]widgets.Point, n)
	v := 0.0
	for i := 0; i < n; i++ {
		x := 10 * float64(i) / float64(n-1)
		v += rng.NormFloat64() * 0.1
		out[i] = widgets.Point{X: x, Y: v}
	}
	return out
}

// ---------------------------------------------------------------------------
// Pane construction and layout
// ---------------------------------------------------------------------------

// buildPanes materializes the figure's panes in definition order.
func buildPanes(f figureFile) []*widgets.PlotPane {
	accents := SeriesAccentColors()
	panes := make([]*widgets.PlotPane, 0, len(f.Pane))
	for i, spec := range f.Pane {
		gen, _ := seriesGenerator(spec.Series)
		xs, _ := parseScale(spec.XScale)
		ys, _ := parseScale(spec.YScale)

		p := widgets.NewPlotPane(spec.ID, spec.Title, gen(spec.Samples))
		p.SetScales(xs, ys)
		p.SetShareGroups(spec.ShareX, spec.ShareY)
		p.SetNavigable(spec.Navigable)
		p.SetZoomable(spec.Zoomable)
		p.SetPannable(spec.Pannable)
		applyPaneTheme(p, accents[i%len(accents)])
		panes = append(panes, p)
	}
	widgets.LinkSharedAxes(panes)
	return panes
}

// layoutPanes assigns absolute frames: panes grouped by row, rows
// splitting the height evenly, row members splitting the width evenly.
func layoutPanes(f figureFile, panes []*widgets.PlotPane, width, height int) {
	maxRow := 0
	for _, spec := range f.Pane {
		if spec.Row > maxRow {
			maxRow = spec.Row
		}
	}
	rows := maxRow + 1
	rowH := height / rows

	for row := 0; row < rows; row++ {
		var members []int
		for i, spec := range f.Pane {
			if spec.Row == row {
				members = append(members, i)
			}
		}
		if len(members) == 0 {
			continue
		}
		colW := width / len(members)
		y := row * rowH
		h := rowH
		if row == rows-1 {
			h = height - y
		}
		for j, idx := range members {
			x := j * colW
			w := colW
			if j == len(members)-1 {
				w = width - x
			}
			panes[idx].SetFrame(nav.Rect{X: x, Y: y, W: w, H: h})
		}
	}
}
