package widgets

import (
	"fmt"
	"math"
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart"
	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/plotnav/nav"
)

// Point is one sample of a pane's series in data coordinates.
type Point struct {
	X, Y float64
}

// Pixel geometry inside the pane frame. The y-label gutter is pinned by
// the label formatter so the graph region is known before the first
// render.
const (
	plotYLabelWidth = 6
	plotBottomRows  = 2
	plotSecondsPerX = 86400
)

// PlotPane is one plot area of the figure: a single series drawn with a
// braille line chart, plus the navigable view state. It implements
// nav.Surface, so zoom and pan gestures operate on it directly.
//
// Log axes store their ranges in data space and plot the log10 image,
// so a view of (1, 1000) spans three even decades of cells.
type PlotPane struct {
	id     string
	title  string
	series []Point

	x0, x1, y0, y1 float64
	xScale, yScale nav.Scale

	navigable bool
	zoomable  bool
	pannable  bool

	// Axis-sharing group names; empty means unshared.
	groupX string
	groupY string

	// Group members that mirror this pane's ranges. Filled by
	// LinkSharedAxes once the figure's panes exist.
	linkedX []*PlotPane
	linkedY []*PlotPane

	frame nav.Rect
	graph nav.Rect

	lineStyle  lipgloss.Style
	axisStyle  lipgloss.Style
	labelStyle lipgloss.Style
	frameStyle lipgloss.Style
	titleStyle lipgloss.Style

	pan *panSession
}

type panSession struct {
	sx0, sx1, sy0, sy1 float64
	startX, startY     int
	button             nav.MouseButton
}

func NewPlotPane(id, title string, series []Point) *PlotPane {
	p := &PlotPane{
		id:        id,
		title:     title,
		series:    series,
		navigable: true,
		zoomable:  true,
		pannable:  true,
	}
	p.x0, p.x1, p.y0, p.y1 = seriesExtent(series)
	return p
}

func seriesExtent(series []Point) (x0, x1, y0, y1 float64) {
	if len(series) == 0 {
		return 0, 1, 0, 1
	}
	x0, x1 = series[0].X, series[0].X
	y0, y1 = series[0].Y, series[0].Y
	for _, pt := range series[1:] {
		x0 = math.Min(x0, pt.X)
		x1 = math.Max(x1, pt.X)
		y0 = math.Min(y0, pt.Y)
		y1 = math.Max(y1, pt.Y)
	}
	if x0 == x1 {
		x1 = x0 + 1
	}
	if y0 == y1 {
		y1 = y0 + 1
	}
	return x0, x1, y0, y1
}

// SetScales selects linear or logarithmic mapping per axis.
func (p *PlotPane) SetScales(x, y nav.Scale) {
	p.xScale, p.yScale = x, y
}

// SetShareGroups assigns the axis-sharing group names. Panes with the
// same non-empty x group report SharedX to each other, and likewise
// for y.
func (p *PlotPane) SetShareGroups(x, y string) {
	p.groupX, p.groupY = x, y
}

// SetStyles installs the pane's lipgloss styles.
func (p *PlotPane) SetStyles(line, axis, label, frame, title lipgloss.Style) {
	p.lineStyle = line
	p.axisStyle = axis
	p.labelStyle = label
	p.frameStyle = frame
	p.titleStyle = title
}

// SetFrame places the pane at an absolute cell rectangle of the figure
// and derives the inner graph region from it.
func (p *PlotPane) SetFrame(r nav.Rect) {
	p.frame = r
	// Border, title row, y-label gutter and axis column on the way in;
	// axis row and x-label row at the bottom.
	p.graph = nav.Rect{
		X: r.X + 1 + plotYLabelWidth + 1,
		Y: r.Y + 2,
		W: r.W - 2 - plotYLabelWidth - 1,
		H: r.H - 3 - plotBottomRows,
	}
	if p.graph.W < 1 {
		p.graph.W = 1
	}
	if p.graph.H < 1 {
		p.graph.H = 1
	}
}

func (p *PlotPane) Frame() nav.Rect { return p.frame }
func (p *PlotPane) Title() string   { return p.title }
func (p *PlotPane) Series() []Point { return p.series }

// nav.Surface implementation.

func (p *PlotPane) ID() string { return p.id }

func (p *PlotPane) XRange() (float64, float64) { return p.x0, p.x1 }
func (p *PlotPane) YRange() (float64, float64) { return p.y0, p.y1 }

// SetXRange and SetYRange mirror the new range onto linked group
// members. The equality check stops the mirror loop once the group
// agrees.
func (p *PlotPane) SetXRange(min, max float64) {
	p.x0, p.x1 = min, max
	for _, q := range p.linkedX {
		if q.x0 != min || q.x1 != max {
			q.SetXRange(min, max)
		}
	}
}

func (p *PlotPane) SetYRange(min, max float64) {
	p.y0, p.y1 = min, max
	for _, q := range p.linkedY {
		if q.y0 != min || q.y1 != max {
			q.SetYRange(min, max)
		}
	}
}

func (p *PlotPane) XScale() nav.Scale { return p.xScale }
func (p *PlotPane) YScale() nav.Scale { return p.yScale }

func (p *PlotPane) Navigable() bool      { return p.navigable }
func (p *PlotPane) SetNavigable(on bool) { p.navigable = on }
func (p *PlotPane) CanZoom() bool        { return p.zoomable }
func (p *PlotPane) CanPan() bool         { return p.pannable }

// SetZoomable and SetPannable gate the pane against the respective
// gesture without touching navigability.
func (p *PlotPane) SetZoomable(on bool) { p.zoomable = on }
func (p *PlotPane) SetPannable(on bool) { p.pannable = on }

// Bounds returns the inner graph region in figure cells. Gestures are
// clamped to it, not to the full pane frame.
func (p *PlotPane) Bounds() nav.Rect { return p.graph }

func (p *PlotPane) Contains(x, y int) bool { return p.graph.Contains(x, y) }

func (p *PlotPane) SharedX(other nav.Surface) bool {
	o, ok := other.(*PlotPane)
	return ok && p.groupX != "" && p.groupX == o.groupX
}

func (p *PlotPane) SharedY(other nav.Surface) bool {
	o, ok := other.(*PlotPane)
	return ok && p.groupY != "" && p.groupY == o.groupY
}

// LinkSharedAxes wires range mirroring between panes with matching
// non-empty share groups. Call it once after all panes are built.
func LinkSharedAxes(panes []*PlotPane) {
	for _, p := range panes {
		p.linkedX = nil
		p.linkedY = nil
		for _, q := range panes {
			if q == p {
				continue
			}
			if p.SharedX(q) {
				p.linkedX = append(p.linkedX, q)
			}
			if p.SharedY(q) {
				p.linkedY = append(p.linkedY, q)
			}
		}
	}
}

// scaleValue maps a data value onto the linear cell axis: identity for
// linear axes, log10 for log axes.
func scaleValue(v float64, s nav.Scale) float64 {
	if s == nav.ScaleLog {
		return math.Log10(v)
	}
	return v
}

func unscaleValue(v float64, s nav.Scale) float64 {
	if s == nav.ScaleLog {
		return math.Pow(10, v)
	}
	return v
}

// affineTransform is a frozen pixel/data mapping between the pane's
// graph region and its scaled view range at the moment Transform was
// called.
type affineTransform struct {
	graph              nav.Rect
	sx0, sx1, sy0, sy1 float64
	xScale, yScale     nav.Scale
}

// Transform snapshots the current mapping. Later range changes do not
// affect the returned value.
func (p *PlotPane) Transform() nav.Transform {
	return affineTransform{
		graph:  p.graph,
		sx0:    scaleValue(p.x0, p.xScale),
		sx1:    scaleValue(p.x1, p.xScale),
		sy0:    scaleValue(p.y0, p.yScale),
		sy1:    scaleValue(p.y1, p.yScale),
		xScale: p.xScale,
		yScale: p.yScale,
	}
}

func (t affineTransform) spanX() float64 {
	if t.graph.W <= 1 {
		return 1
	}
	return float64(t.graph.W - 1)
}

func (t affineTransform) spanY() float64 {
	if t.graph.H <= 1 {
		return 1
	}
	return float64(t.graph.H - 1)
}

func (t affineTransform) PixelToData(px, py float64) (float64, float64) {
	fx := (px - float64(t.graph.X)) / t.spanX()
	// Cell rows grow downward while the y axis grows upward.
	fy := (py - float64(t.graph.Y)) / t.spanY()
	sx := t.sx0 + fx*(t.sx1-t.sx0)
	sy := t.sy1 - fy*(t.sy1-t.sy0)
	return unscaleValue(sx, t.xScale), unscaleValue(sy, t.yScale)
}

func (t affineTransform) DataToPixel(x, y float64) (float64, float64) {
	sx := scaleValue(x, t.xScale)
	sy := scaleValue(y, t.yScale)
	var fx, fy float64
	if t.sx1 != t.sx0 {
		fx = (sx - t.sx0) / (t.sx1 - t.sx0)
	}
	if t.sy1 != t.sy0 {
		fy = (t.sy1 - sy) / (t.sy1 - t.sy0)
	}
	return float64(t.graph.X) + fx*t.spanX(), float64(t.graph.Y) + fy*t.spanY()
}

// StartPan freezes the scaled view and the press point for a pan
// session. DragPan applies total deltas from that frozen baseline, so
// intermediate motion events don't accumulate rounding.
func (p *PlotPane) StartPan(x, y int, button nav.MouseButton) {
	p.pan = &panSession{
		sx0:    scaleValue(p.x0, p.xScale),
		sx1:    scaleValue(p.x1, p.xScale),
		sy0:    scaleValue(p.y0, p.yScale),
		sy1:    scaleValue(p.y1, p.yScale),
		startX: x,
		startY: y,
		button: button,
	}
}

func (p *PlotPane) DragPan(button nav.MouseButton, key string, x, y int) {
	s := p.pan
	if s == nil {
		return
	}
	dx := float64(x - s.startX)
	dy := float64(y - s.startY)
	switch key {
	case "x":
		dy = 0
	case "y":
		dx = 0
	}

	spanX := float64(p.graph.W - 1)
	if spanX < 1 {
		spanX = 1
	}
	spanY := float64(p.graph.H - 1)
	if spanY < 1 {
		spanY = 1
	}

	switch button {
	case nav.Button1:
		// Content follows the cursor: dragging right slides the view
		// left, dragging down slides it up.
		shiftX := dx * (s.sx1 - s.sx0) / spanX
		shiftY := dy * (s.sy1 - s.sy0) / spanY
		p.setScaledX(s.sx0-shiftX, s.sx1-shiftX)
		p.setScaledY(s.sy0+shiftY, s.sy1+shiftY)
	case nav.Button3:
		// Scale drag about the press point. One graph width of motion
		// is one decade of zoom. The anchor stays in scaled space.
		fx := (float64(s.startX) - float64(p.graph.X)) / spanX
		fy := (float64(s.startY) - float64(p.graph.Y)) / spanY
		anchorX := s.sx0 + fx*(s.sx1-s.sx0)
		anchorY := s.sy1 - fy*(s.sy1-s.sy0)
		coefX := math.Pow(10, dx/spanX)
		coefY := math.Pow(10, -dy/spanY)
		p.setScaledX(anchorX+(s.sx0-anchorX)/coefX, anchorX+(s.sx1-anchorX)/coefX)
		p.setScaledY(anchorY+(s.sy0-anchorY)/coefY, anchorY+(s.sy1-anchorY)/coefY)
	}
}

func (p *PlotPane) EndPan() {
	p.pan = nil
}

func (p *PlotPane) setScaledX(s0, s1 float64) {
	p.SetXRange(unscaleValue(s0, p.xScale), unscaleValue(s1, p.xScale))
}

func (p *PlotPane) setScaledY(s0, s1 float64) {
	p.SetYRange(unscaleValue(s0, p.yScale), unscaleValue(s1, p.yScale))
}

// xTime maps a scaled x value onto the chart's time axis.
func xTime(sx float64) time.Time {
	return time.Unix(int64(math.Round(sx*plotSecondsPerX)), 0)
}

func plotLabel(v float64) string {
	s := fmt.Sprintf("%.4g", v)
	if len(s) > plotYLabelWidth {
		s = s[:plotYLabelWidth]
	}
	for len(s) < plotYLabelWidth {
		s = " " + s
	}
	return s
}

// Render draws the pane at its frame size: a rounded border with the
// title in the top row and a braille line chart inside.
func (p *PlotPane) Render() string {
	innerW := p.frame.W - 2
	innerH := p.frame.H - 2
	chartH := innerH - 1
	if innerW < plotYLabelWidth+3 || chartH < plotBottomRows+1 {
		return p.frameStyle.Render("")
	}

	sx0, sx1 := orderedPair(scaleValue(p.x0, p.xScale), scaleValue(p.x1, p.xScale))
	sy0, sy1 := orderedPair(scaleValue(p.y0, p.yScale), scaleValue(p.y1, p.yScale))
	if sx1-sx0 < 1e-12 {
		sx1 = sx0 + 1e-12
	}
	if sy1-sy0 < 1e-12 {
		sy1 = sy0 + 1e-12
	}

	chart := tslc.New(innerW, chartH)
	chart.SetXStep(1)
	chart.SetYStep(1)
	chart.SetStyle(p.lineStyle)
	chart.AxisStyle = p.axisStyle
	chart.LabelStyle = p.labelStyle
	chart.SetTimeRange(xTime(sx0), xTime(sx1))
	chart.SetViewTimeRange(xTime(sx0), xTime(sx1))
	chart.SetYRange(sy0, sy1)
	chart.SetViewYRange(sy0, sy1)
	chart.Model.XLabelFormatter = p.xLabelFormatter()
	chart.Model.YLabelFormatter = p.yLabelFormatter()

	for _, pt := range p.series {
		sx := scaleValue(pt.X, p.xScale)
		sy := scaleValue(pt.Y, p.yScale)
		if math.IsNaN(sx) || math.IsInf(sx, 0) || math.IsNaN(sy) || math.IsInf(sy, 0) {
			continue
		}
		chart.Push(tslc.TimePoint{Time: xTime(sx), Value: sy})
	}

	chart.DrawBraille()

	title := p.title
	if !p.navigable {
		title += " (locked)"
	}
	header := p.titleStyle.Render("[" + title + "]")
	body := header + "\n" + chart.View()
	return p.frameStyle.Width(innerW).Height(innerH).Render(body)
}

func (p *PlotPane) xLabelFormatter() linechart.LabelFormatter {
	scale := p.xScale
	return func(i int, v float64) string {
		return plotLabel(unscaleValue(v/plotSecondsPerX, scale))
	}
}

func (p *PlotPane) yLabelFormatter() linechart.LabelFormatter {
	scale := p.yScale
	return func(i int, v float64) string {
		return plotLabel(unscaleValue(v, scale))
	}
}

func orderedPair(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}
