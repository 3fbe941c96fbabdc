package hwemc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

type tokenReader struct {
	scanner *bufio.Scanner
}

// next returns the next token. At the end of the input it returns false and a
// nil error; a failed read returns the scanner's error.
func (tr *tokenReader) next() (string, bool, error) {
	if !tr.scanner.Scan() {
		return "", false, tr.scanner.Err()
	}
	return tr.scanner.Text(), true, nil
}

// ReadInput parses the free-format input of the randomization test: the
// number of alleles, the lower triangle of the genotype table row by row,
// then the burn-in steps, the number of batches and the batch size.
//
// Problems with the table are reported as ErrMalformedTable and problems with
// the parameters as ErrMalformedParameters.
func ReadInput(r io.Reader) (*Table, Parameters, error) {
	params := Parameters{}

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	tr := &tokenReader{scanner: scanner}

	tok, ok, err := tr.next()
	if err != nil {
		return nil, params, err
	}
	if !ok {
		return nil, params, fmt.Errorf("%w: the number of alleles is missing", ErrMalformedTable)
	}
	k, err := strconv.Atoi(tok)
	if err != nil {
		return nil, params, fmt.Errorf("%w: number of alleles %q is not an integer", ErrMalformedTable, tok)
	}
	if k < 3 || k > MaxAlleles {
		// NewTable produces the message.
		_, err := NewTable(k, nil)
		return nil, params, err
	}

	cells := make([]int, 0, TriangleSize(k))
	for a := 0; a < k; a++ {
		for b := 0; b <= a; b++ {
			tok, ok, err := tr.next()
			if err != nil {
				return nil, params, err
			}
			if !ok {
				return nil, params, fmt.Errorf("%w: genotype count (%d,%d) is missing", ErrMalformedTable, a+1, b+1)
			}
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, params, fmt.Errorf("%w: genotype count (%d,%d) %q is not an integer", ErrMalformedTable, a+1, b+1, tok)
			}
			cells = append(cells, v)
		}
	}

	t, err := NewTable(k, cells)
	if err != nil {
		return nil, params, err
	}

	fields := []*int{&params.Steps, &params.Batches, &params.BatchSize}
	names := []string{"burn-in steps", "number of batches", "batch size"}
	for i, field := range fields {
		tok, ok, err := tr.next()
		if err != nil {
			return nil, params, err
		}
		if !ok {
			return nil, params, fmt.Errorf("%w: %s is missing", ErrMalformedParameters, names[i])
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, params, fmt.Errorf("%w: %s %q is not an integer", ErrMalformedParameters, names[i], tok)
		}
		*field = v
	}

	if err := scanner.Err(); err != nil {
		return nil, params, err
	}

	if err := params.Validate(); err != nil {
		return nil, params, err
	}

	return t, params, nil
}

// WriteInput writes t and params in the format read by ReadInput.
func WriteInput(w io.Writer, t *Table, params Parameters) error {
	if _, err := fmt.Fprintf(w, "%d\n%s%d %d %d\n", t.NAlleles(), t, params.Steps, params.Batches, params.BatchSize); err != nil {
		return err
	}
	return nil
}
