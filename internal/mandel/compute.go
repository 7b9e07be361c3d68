package mandel

// Compute fills f in row-major order and returns the checksum.
// Rows are visited top to bottom and columns left to right.
func Compute(f *Field) uint64 {
	return ComputeRows(f, 0, f.H)
}

// ComputeRows fills rows [y0, y1) of f and returns their partial checksum.
// The band is clamped to the field. Bands that do not overlap write disjoint
// parts of f, so they may be computed concurrently.
func ComputeRows(f *Field, y0, y1 int) uint64 {
	if y0 < 0 {
		y0 = 0
	}
	if y1 > f.H {
		y1 = f.H
	}

	var checksum uint64
	for y := y0; y < y1; y++ {
		row := f.Iters[y*f.W : (y+1)*f.W]
		for x := range row {
			n := EvaluatePixel(x, y)
			row[x] = n
			checksum += uint64(n)
		}
	}
	return checksum
}

// ComputeIndex evaluates the pixel at flat index i, stores it and returns it.
// Used by strategies that walk the field in a non row-major order.
func ComputeIndex(f *Field, i int) int {
	x, y := f.Coord(i)
	n := EvaluatePixel(x, y)
	f.Iters[i] = n
	return n
}

// ComputeOrder evaluates the pixels listed in order and returns the checksum.
// Indices outside the field are skipped.
func ComputeOrder(f *Field, order []int) uint64 {
	var checksum uint64
	for _, i := range order {
		if i < 0 || i >= len(f.Iters) {
			continue
		}
		checksum += uint64(ComputeIndex(f, i))
	}
	return checksum
}
