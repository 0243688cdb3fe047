package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/viz"
)

const (
	Body1Color = "#ff00ff"
	Body2Color = "#00ffff"
)

// Layer is one braille canvas drawn in a single color.
type Layer struct {
	Canvas *viz.Canvas
	Color  string
}

// Path is a polyline in world coordinates.
type Path struct {
	Points []viz.Point
	Color  string
}

// BodyPaths extracts both bodies' tracks, initial position first.
func BodyPaths(r *sim.Result) []Path {
	p1 := make([]viz.Point, 0, len(r.States)+1)
	p2 := make([]viz.Point, 0, len(r.States)+1)
	p1 = append(p1, viz.Point{X: r.Initial.X1, Y: r.Initial.Y1})
	p2 = append(p2, viz.Point{X: r.Initial.X2, Y: r.Initial.Y2})
	for _, s := range r.States {
		p1 = append(p1, viz.Point{X: s.X1, Y: s.Y1})
		p2 = append(p2, viz.Point{X: s.X2, Y: s.Y2})
	}
	return []Path{{Points: p1, Color: Body1Color}, {Points: p2, Color: Body2Color}}
}

// CanvasToSVG converts braille canvases of equal size to SVG, one dot per lit
// sub-pixel, later layers on top.
func CanvasToSVG(scale float64, layers ...Layer) string {
	if len(layers) == 0 || layers[0].Canvas == nil {
		return ""
	}
	canvas := layers[0].Canvas

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	dotRadius := scale * 0.4
	for _, layer := range layers {
		fmt.Fprintf(&sb, "<g fill=\"%s\">\n", layer.Color)
		w, h := layer.Canvas.PixelSize()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if !layer.Canvas.IsSet(x, y) {
					continue
				}
				cx := float64(x)*scale + scale/2
				cy := float64(y)*scale + scale/2
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
			}
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// OrbitSVG draws both trajectories of a run on cols x rows braille canvases
// sharing one frame and renders them as dots.
func OrbitSVG(r *sim.Result, cols, rows int, scale float64) string {
	paths := BodyPaths(r)
	frame := viz.FitFrame(0.1, paths[0].Points, paths[1].Points)

	layers := make([]Layer, len(paths))
	for i, p := range paths {
		c := viz.NewCanvas(cols, rows)
		frame.DrawPath(c, p.Points)
		layers[i] = Layer{Canvas: c, Color: p.Color}
	}
	return CanvasToSVG(scale, layers...)
}

// TrajectoryToSVG draws paths as vector polylines on a square-scaled view.
func TrajectoryToSVG(paths []Path, width, height int) string {
	sets := make([][]viz.Point, 0, len(paths))
	for _, p := range paths {
		if len(p.Points) >= 2 {
			sets = append(sets, p.Points)
		}
	}
	if len(sets) == 0 {
		return ""
	}
	frame := viz.FitFrame(0.1, sets...)
	scale := float64(min(width, height)) / 2 / frame.Half

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for _, p := range paths {
		if len(p.Points) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, p.Color)
		for i, pt := range p.Points {
			x := float64(width)/2 + (pt.X-frame.CX)*scale
			y := float64(height)/2 - (pt.Y-frame.CY)*scale
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteFile writes svg to path, or to w when path is "-".
func WriteFile(path string, w io.Writer, svg string) error {
	if path == "-" {
		_, err := io.WriteString(w, svg)
		return err
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
