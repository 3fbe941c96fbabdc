package hwemc

import (
	"fmt"
	"strings"
)

// MaxAlleles bounds the number of alleles a Table may hold.
const MaxAlleles = 40

// Table is the lower-triangular genotype count table of one marker. Cell
// (a,b) with a > b holds the a/b heterozygote count and (a,a) the a/a
// homozygote count.
type Table struct {
	nAlleles int
	cells    []int
}

// TriangleSize is the number of cells in the lower triangle (diagonal
// included) of a k-allele table.
func TriangleSize(k int) int {
	return k * (k + 1) / 2
}

// NewTable copies cells, given row by row (a(0,0); a(1,0) a(1,1); ...), into
// a new Table.
func NewTable(k int, cells []int) (*Table, error) {
	if k < 3 {
		return nil, fmt.Errorf("%w: %d alleles declared, at least 3 are required", ErrMalformedTable, k)
	}
	if k > MaxAlleles {
		return nil, fmt.Errorf("%w: %d alleles declared, at most %d are supported", ErrMalformedTable, k, MaxAlleles)
	}
	if len(cells) != TriangleSize(k) {
		return nil, fmt.Errorf("%w: %d alleles need %d counts, got %d", ErrMalformedTable, k, TriangleSize(k), len(cells))
	}

	t := &Table{
		nAlleles: k,
		cells:    make([]int, len(cells)),
	}
	for i, v := range cells {
		if v < 0 {
			return nil, fmt.Errorf("%w: negative count %d in cell %d", ErrMalformedTable, v, i)
		}
		t.cells[i] = v
	}

	return t, nil
}

// index maps an unordered allele pair onto its canonical (a >= b) cell.
func index(a, b int) int {
	if a < b {
		a, b = b, a
	}
	return a*(a+1)/2 + b
}

func (t *Table) NAlleles() int {
	return t.nAlleles
}

func (t *Table) Get(a, b int) int {
	return t.cells[index(a, b)]
}

func (t *Table) Set(a, b, v int) {
	t.cells[index(a, b)] = v
}

func (t *Table) add(a, b, delta int) {
	t.cells[index(a, b)] += delta
}

// Total is the number of genotyped individuals. It does not change under
// any switch.
func (t *Table) Total() int {
	n := 0
	for _, v := range t.cells {
		n += v
	}
	return n
}

// Heterozygotes sums the off-diagonal cells.
func (t *Table) Heterozygotes() int {
	h := 0
	for a := 0; a < t.nAlleles; a++ {
		for b := 0; b < a; b++ {
			h += t.Get(a, b)
		}
	}
	return h
}

// AlleleCounts returns n(i), the number of copies of each allele. These are
// the margins of the table.
func (t *Table) AlleleCounts() []int {
	n := make([]int, t.nAlleles)
	for a := 0; a < t.nAlleles; a++ {
		n[a] = 2 * t.Get(a, a)
		for b := 0; b < t.nAlleles; b++ {
			if b != a {
				n[a] += t.Get(a, b)
			}
		}
	}
	return n
}

// Cells returns a copy of the counts in row order.
func (t *Table) Cells() []int {
	out := make([]int, len(t.cells))
	copy(out, t.cells)
	return out
}

func (t *Table) Clone() *Table {
	return &Table{
		nAlleles: t.nAlleles,
		cells:    t.Cells(),
	}
}

func (t *Table) String() string {
	b := strings.Builder{}
	for a := 0; a < t.nAlleles; a++ {
		for c := 0; c <= a; c++ {
			if c > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%d", t.Get(a, c))
		}
		b.WriteString("\n")
	}
	return b.String()
}
