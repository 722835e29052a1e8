package ui

// UIScale is the device scale factor. Layout works in logical pixels and
// everything is multiplied by UIScale when drawn.
var UIScale = 1.0

func scaleF(v int) float32 {
	return float32(float64(v) * UIScale)
}

func scaleD(v int) float64 {
	return float64(v) * UIScale
}

// rect is a logical-pixel rectangle used for hit testing.
type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
