package freqfile

import (
	"fmt"

	"github.com/carbocation/popgen/hwemc"
)

// Marker holds the allele and genotype counts read for one marker.
type Marker struct {
	Name    string
	Alleles []string

	// AlleleCounts is indexed like Alleles.
	AlleleCounts []int

	// genotypes holds the genotype counts keyed by the ordered pair of
	// allele indices, as written in the genotype file.
	genotypes map[[2]int]int
}

func newMarker(name string) *Marker {
	return &Marker{
		Name:      name,
		genotypes: make(map[[2]int]int),
	}
}

func (m *Marker) alleleIndex(name string) int {
	for i, a := range m.Alleles {
		if a == name {
			return i
		}
	}
	return -1
}

func (m *Marker) addAllele(name string) int {
	m.Alleles = append(m.Alleles, name)
	m.AlleleCounts = append(m.AlleleCounts, 0)
	return len(m.Alleles) - 1
}

// GenotypeCount returns the count of the unordered genotype a1/a2, summing
// both orders in which it may have been written.
func (m *Marker) GenotypeCount(a1, a2 int) int {
	if a1 == a2 {
		return m.genotypes[[2]int{a1, a1}]
	}
	return m.genotypes[[2]int{a1, a2}] + m.genotypes[[2]int{a2, a1}]
}

// Observed returns the indices of the alleles with a non-zero count.
func (m *Marker) Observed() []int {
	out := make([]int, 0, len(m.Alleles))
	for i, n := range m.AlleleCounts {
		if n != 0 {
			out = append(out, i)
		}
	}
	return out
}

// Biallelic returns the genotype counts of a marker with at most two
// observed alleles. Alleles with a zero count are skipped and a missing second
// allele counts as zero.
func (m *Marker) Biallelic() (AA, Aa, aa int, err error) {
	observed := m.Observed()
	if len(observed) > 2 {
		return 0, 0, 0, fmt.Errorf("marker %s has %d observed alleles", m.Name, len(observed))
	}

	// Pad with an index that has no genotypes.
	observed = append(observed, len(m.Alleles), len(m.Alleles))

	return m.GenotypeCount(observed[0], observed[0]), m.GenotypeCount(observed[0], observed[1]), m.GenotypeCount(observed[1], observed[1]), nil
}

// Table builds the genotype table of the alleles that were observed. Alleles
// with a zero count are dropped.
func (m *Marker) Table() (*hwemc.Table, error) {
	observed := m.Observed()

	cells := make([]int, 0, hwemc.TriangleSize(len(observed)))
	for i, a := range observed {
		for _, b := range observed[:i+1] {
			cells = append(cells, m.GenotypeCount(a, b))
		}
	}

	t, err := hwemc.NewTable(len(observed), cells)
	if err != nil {
		return nil, fmt.Errorf("marker %s: %w", m.Name, err)
	}

	return t, nil
}
