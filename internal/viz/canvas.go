package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank rune = 0x2800

// Canvas is a grid of braille cells. Each cell holds 2x4 sub-pixels, so the
// drawable area is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelSize returns the drawable size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

// cell locates the braille cell and dot bit of sub-pixel (x, y).
func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, pixelMap[y%4][x%2], true
}

// Set lights sub-pixel (x, y). Out of range points are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= bit
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] = blank | (c.Grid[row][col] &^ bit)
	}
}

// IsSet reports whether sub-pixel (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawDisc fills a disc of radius r sub-pixels around (cx, cy).
func (c *Canvas) DrawDisc(cx, cy, r int) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				c.Set(cx+x, cy+y)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Point is a position in world coordinates.
type Point struct{ X, Y float64 }

// Frame maps a square world region centred on (CX, CY) with half-width Half
// onto a canvas, y pointing up.
type Frame struct {
	CX, CY, Half float64
}

// FitFrame returns the smallest square frame around the bounding box
// of pts, widened by margin (0.1 = 10%).
func FitFrame(margin float64, pts ...[]Point) Frame {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, set := range pts {
		for _, p := range set {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 0) {
		return Frame{Half: 1}
	}

	half := math.Max(maxX-minX, maxY-minY) / 2
	if half == 0 {
		half = 1
	}
	return Frame{
		CX:   (minX + maxX) / 2,
		CY:   (minY + maxY) / 2,
		Half: half * (1 + margin),
	}
}

// Contains reports whether p lies inside the frame.
func (f Frame) Contains(p Point) bool {
	return math.Abs(p.X-f.CX) <= f.Half && math.Abs(p.Y-f.CY) <= f.Half
}

// Project converts p to sub-pixel coordinates on c.
func (f Frame) Project(c *Canvas, p Point) (int, int) {
	w, h := c.PixelSize()
	scale := float64(min(w, h)) / 2 / f.Half
	x := float64(w)/2 + (p.X-f.CX)*scale
	y := float64(h)/2 - (p.Y-f.CY)*scale
	return int(math.Round(x)), int(math.Round(y))
}

// DrawPath joins consecutive points with lines.
func (f Frame) DrawPath(c *Canvas, pts []Point) {
	for i := range pts {
		x1, y1 := f.Project(c, pts[i])
		if i == 0 {
			c.Set(x1, y1)
			continue
		}
		x0, y0 := f.Project(c, pts[i-1])
		c.DrawLine(x0, y0, x1, y1)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
