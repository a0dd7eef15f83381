package viz

import (
	"github.com/san-kum/pointmass/internal/world"
)

// TrajectoryCanvas draws two recorded state columns against each other as a
// connected braille polyline. Column indices address the flattened state
// rows, so (0, 1) plots the first tracked particle's XY path.
func TrajectoryCanvas(result *world.Result, xIdx, yIdx, width, height int) *Canvas {
	if result == nil || len(result.States) == 0 {
		return nil
	}
	if xIdx >= len(result.States[0]) || yIdx >= len(result.States[0]) {
		return nil
	}

	canvas := NewCanvas(width, height)
	subW := width * 2
	subH := height * 4

	minX, maxX := result.States[0][xIdx], result.States[0][xIdx]
	minY, maxY := result.States[0][yIdx], result.States[0][yIdx]
	for _, state := range result.States {
		if state[xIdx] < minX {
			minX = state[xIdx]
		}
		if state[xIdx] > maxX {
			maxX = state[xIdx]
		}
		if state[yIdx] < minY {
			minY = state[yIdx]
		}
		if state[yIdx] > maxY {
			maxY = state[yIdx]
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	toPixel := func(state []float64) (int, int) {
		px := int((state[xIdx] - minX) / rangeX * float64(subW-1))
		py := subH - 1 - int((state[yIdx]-minY)/rangeY*float64(subH-1))
		return px, py
	}

	prevX, prevY := toPixel(result.States[0])
	canvas.Set(prevX, prevY)

	for _, state := range result.States[1:] {
		px, py := toPixel(state)
		canvas.DrawLine(prevX, prevY, px, py)
		prevX, prevY = px, py
	}

	return canvas
}
