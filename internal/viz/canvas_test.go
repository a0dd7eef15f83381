package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/pointmass/internal/world"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 2)

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected 0x2801, got %x", c.Grid[0][0])
	}

	c.Set(1, 3)
	if c.Grid[0][0] != 0x2801|0x80 {
		t.Errorf("expected dot 8 set, got %x", c.Grid[0][0])
	}
}

func TestCanvasSetOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)

	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 0)
	c.Set(0, 100)

	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatalf("expected empty canvas, found %x", r)
			}
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Set(2, 5)
	c.Clear()

	if c.Grid[1][1] != 0x2800 {
		t.Errorf("expected cleared cell, got %x", c.Grid[1][1])
	}
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 39)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected line to light cells")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(4, 3)
	out := c.String()

	if strings.Count(out, "\n") != 3 {
		t.Errorf("expected 3 rows, got %d", strings.Count(out, "\n"))
	}
}

func trajectoryFixture() *world.Result {
	return &world.Result{
		Times: []float64{0, 1, 2},
		States: [][]float64{
			{0, 0, 0, 1, 1, 0},
			{1, 2, 0, 1, 0, 0},
			{2, 0, 0, 1, -1, 0},
		},
	}
}

func TestTrajectoryCanvas(t *testing.T) {
	canvas := TrajectoryCanvas(trajectoryFixture(), 0, 1, 20, 10)
	if canvas == nil {
		t.Fatal("expected canvas")
	}

	lit := 0
	for _, row := range canvas.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected trajectory to light cells")
	}
}

func TestTrajectoryCanvasBadInput(t *testing.T) {
	if c := TrajectoryCanvas(nil, 0, 1, 10, 10); c != nil {
		t.Error("expected nil for nil result")
	}
	if c := TrajectoryCanvas(trajectoryFixture(), 0, 99, 10, 10); c != nil {
		t.Error("expected nil for out-of-range column")
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Set(0, 0)
	c.Set(3, 7)

	svg := CanvasToSVG(c, 4.0)
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("expected xml header")
	}
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 dots, got %d", strings.Count(svg, "<circle"))
	}
	if CanvasToSVG(nil, 4.0) != "" {
		t.Error("expected empty string for nil canvas")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	points := []struct{ X, Y float64 }{
		{0, 0}, {1, 2}, {2, 0},
	}

	svg := TrajectoryToSVG(points, 400, 300, "#00ff00")
	if !strings.Contains(svg, "<path") {
		t.Error("expected path element")
	}
	if !strings.Contains(svg, "#00ff00") {
		t.Error("expected stroke color")
	}
	if TrajectoryToSVG(points[:1], 400, 300, "#fff") != "" {
		t.Error("expected empty string for single point")
	}
}
