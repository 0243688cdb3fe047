package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != 0x2801 || c.Grid[0][1] != 0x2880 {
		t.Errorf("unexpected cells %U %U", c.Grid[0][0], c.Grid[0][1])
	}
	if !c.IsSet(3, 3) || c.IsSet(1, 0) {
		t.Error("IsSet disagrees with Set")
	}

	c.Unset(3, 3)
	if c.Grid[0][1] != blank {
		t.Errorf("expected blank cell, got %U", c.Grid[0][1])
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if strings.Count(c.String(), "\n") != 1 {
		t.Error("expected one row")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)
	for i := 0; i < 20; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal pixel %d not set", i)
		}
	}
}

func TestFitFrameAndProject(t *testing.T) {
	c := NewCanvas(40, 20) // 80 x 80 sub-pixels
	f := FitFrame(0, []Point{{-1, -1}, {1, 1}})
	if f.CX != 0 || f.CY != 0 || f.Half != 1 {
		t.Fatalf("unexpected frame %+v", f)
	}

	tests := []struct {
		p    Point
		x, y int
	}{
		{Point{0, 0}, 40, 40},
		{Point{1, 1}, 80, 0},
		{Point{-1, -1}, 0, 80},
		{Point{0.5, 0}, 60, 40},
	}
	for _, tt := range tests {
		x, y := f.Project(c, tt.p)
		if x != tt.x || y != tt.y {
			t.Errorf("Project(%v) = (%d, %d), want (%d, %d)", tt.p, x, y, tt.x, tt.y)
		}
	}

	if !f.Contains(Point{0.9, -0.9}) || f.Contains(Point{1.1, 0}) {
		t.Error("Contains disagrees with frame bounds")
	}
}

func TestFitFrameDegenerate(t *testing.T) {
	if f := FitFrame(0.1); f.Half != 1 {
		t.Errorf("empty input should give a unit frame, got %+v", f)
	}
	if f := FitFrame(0, []Point{{2, 3}}); f.CX != 2 || f.CY != 3 || f.Half != 1 {
		t.Errorf("single point should be centred, got %+v", f)
	}
}
