package render

// ChartDimensions applies the width/height clamp rules used for charts.
// Input: desired raw width (e.g., window width). Returns clamped width & height.
func ChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	h := int(float32(w) * 0.6)
	if h < 480 {
		h = 480
	}
	if h > 900 {
		h = 900
	}
	return w, h
}
