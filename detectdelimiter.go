package popgen

import (
	"bufio"
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. It reads no more than the
// first few lines and returns a reader that replays them.
func DetermineDelimiter(r io.Reader) (rune, io.Reader) {
	br := bufio.NewReaderSize(r, 64*1024)
	sample, _ := br.Peek(64 * 1024)

	d := detector.New()
	delimiters := d.DetectDelimiter(bytes.NewReader(sample), '"')

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0]), br
	}

	return ',', br
}
