package freqfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// MarkerSet is the collection of markers read from an allele count file, in
// file order.
type MarkerSet struct {
	Markers []*Marker
	byName  map[string]*Marker
}

// Get returns the named marker, or nil.
func (s *MarkerSet) Get(name string) *Marker {
	return s.byName[name]
}

type lineError struct {
	line int
	msg  string
}

func (e *lineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.line, e.msg)
}

func missing(line int, what string) error {
	return &lineError{line: line, msg: "missing " + what}
}

// scanRows calls fn with the fields of every non-blank line of r, along with
// its 1-based line number.
func scanRows(r io.Reader, fn func(line int, cols []string) error) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++

		cols := strings.Fields(scanner.Text())
		if len(cols) == 0 {
			continue
		}

		if err := fn(line, cols); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// keep reports whether the row passes f, and names the first missing column
// that prevented the decision.
func keep(f Filter, line int, cols []string) (bool, error) {
	if len(cols) <= Status {
		return false, missing(line, "affection status")
	}
	if !f.keepStatus(cols[Status]) {
		return false, nil
	}

	if len(cols) <= Population {
		return false, missing(line, "population identifier")
	}
	if !f.keepPopulation(cols[Population]) {
		return false, nil
	}

	return true, nil
}

func parseCount(line int, field string) (int, error) {
	n, err := strconv.Atoi(field)
	if err != nil || n < 0 {
		return 0, &lineError{line: line, msg: fmt.Sprintf("count %q is not a non-negative integer", field)}
	}
	return n, nil
}

// ReadAlleleCounts reads an allele count file. Every marker named in the file
// is returned, but only the alleles on rows that pass f are recorded.
func ReadAlleleCounts(r io.Reader, f Filter) (*MarkerSet, error) {
	set := &MarkerSet{byName: make(map[string]*Marker)}

	err := scanRows(r, func(line int, cols []string) error {
		m := set.byName[cols[MarkerName]]
		if m == nil {
			m = newMarker(cols[MarkerName])
			set.byName[m.Name] = m
			set.Markers = append(set.Markers, m)
		}

		ok, err := keep(f, line, cols)
		if err != nil || !ok {
			return err
		}

		if len(cols) <= FirstAllele {
			return missing(line, "marker allele")
		}
		if len(cols) <= FirstAllele+1 {
			return missing(line, "allele count")
		}

		n, err := parseCount(line, cols[FirstAllele+1])
		if err != nil {
			return err
		}

		i := m.alleleIndex(cols[FirstAllele])
		if i < 0 {
			i = m.addAllele(cols[FirstAllele])
		}
		m.AlleleCounts[i] = n

		return nil
	})
	if err != nil {
		return nil, err
	}

	return set, nil
}

// ReadGenotypeCounts reads a genotype count file into the markers of set.
// Every marker and allele it names must be known from the allele count file.
func ReadGenotypeCounts(r io.Reader, set *MarkerSet, f Filter) error {
	return scanRows(r, func(line int, cols []string) error {
		m := set.Get(cols[MarkerName])
		if m == nil {
			return &lineError{line: line, msg: fmt.Sprintf("marker %s not found in allele frequencies file", cols[MarkerName])}
		}

		ok, err := keep(f, line, cols)
		if err != nil || !ok {
			return err
		}

		var alleles [2]int
		for k := range alleles {
			col := FirstAllele + k
			if len(cols) <= col {
				return missing(line, "marker allele")
			}
			alleles[k] = m.alleleIndex(cols[col])
			if alleles[k] < 0 {
				return &lineError{line: line, msg: fmt.Sprintf("marker %s allele %s not found in allele frequencies file", m.Name, cols[col])}
			}
		}

		if len(cols) <= FirstAllele+2 {
			return missing(line, "genotype count")
		}
		n, err := parseCount(line, cols[FirstAllele+2])
		if err != nil {
			return err
		}
		m.genotypes[alleles] = n

		return nil
	})
}
