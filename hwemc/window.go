package hwemc

import "math"

// MoveWindow addresses the 2x2 block of cells that one chain step may
// switch: rows I1 < I2 and columns J1 < J2.
type MoveWindow struct {
	I1, I2 int
	J1, J2 int

	// Coincidence counts the row/column index collisions (0, 1 or 2).
	Coincidence int

	// Cst rescales probability ratios for cells that collapse two ordered
	// allele draws (heterozygotes) into one stored count.
	Cst float64
}

// Merged reports whether the two anti-diagonal cells (I1,J2) and (I2,J1) are
// the same stored cell.
func (w MoveWindow) Merged() bool {
	return w.Coincidence == 2
}

// choosePair draws an unordered pair of distinct values from {0, ..., k-1}
// without rejection: the second draw comes from the k-1 values that remain
// after the first.
func choosePair(rs RandomSource, k int) (int, int) {
	first := drawIndex(rs, k)
	second := drawIndex(rs, k-1)
	if second >= first {
		second++
	}

	if first > second {
		first, second = second, first
	}
	return first, second
}

// SampleWindow draws a MoveWindow uniformly for a k-allele table.
func SampleWindow(rs RandomSource, k int) MoveWindow {
	i1, i2 := choosePair(rs, k)
	j1, j2 := choosePair(rs, k)

	return NewMoveWindow(i1, i2, j1, j2)
}

// NewMoveWindow builds a window from explicit indices, which must satisfy
// i1 < i2 and j1 < j2.
func NewMoveWindow(i1, i2, j1, j2 int) MoveWindow {
	w := MoveWindow{I1: i1, I2: i2, J1: j1, J2: j2}

	for _, same := range []bool{i1 == j1, i1 == j2, i2 == j1, i2 == j2} {
		if same {
			w.Coincidence++
		}
	}

	if i1 == j1 || i2 == j2 {
		w.Cst = math.Pow(2, float64(w.Coincidence))
	} else {
		w.Cst = math.Pow(2, -float64(w.Coincidence))
	}

	return w
}
