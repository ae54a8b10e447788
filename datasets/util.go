package datasets

// PixelCount is the number of pixels in a width x height image.
func PixelCount(width, height int) int64 {
	return int64(width) * int64(height)
}

// FlattenPixel encodes (row, col) as row*width + col.
func FlattenPixel(row, col, width int) int64 {
	return int64(row)*int64(width) + int64(col)
}

// UnflattenPixel is the inverse of FlattenPixel.
func UnflattenPixel(idx int64, width int) (row, col int) {
	return int(idx / int64(width)), int(idx % int64(width))
}

// InBounds reports whether idx is a valid pixel index for the image size.
func InBounds(idx int64, width, height int) bool {
	return idx >= 0 && idx < PixelCount(width, height)
}

// ClampPixel clamps a flattened index into [0, width*height-1]. It works on
// the flattened value, so an offset that runs past a row edge lands on the
// neighbouring row instead of the image border.
func ClampPixel(idx int64, width, height int) int64 {
	if idx < 0 {
		return 0
	}
	if last := PixelCount(width, height) - 1; idx > last {
		return last
	}
	return idx
}
