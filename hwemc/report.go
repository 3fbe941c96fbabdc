package hwemc

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/montanaflynn/stats"
)

// WriteTableReport echoes the observed table as a boxed triangle, followed by
// its dimensions and the run parameters.
func WriteTableReport(w io.Writer, t *Table, params Parameters) error {
	b := strings.Builder{}

	b.WriteString("Observed genotype frequencies: \n\n")

	line := "-"
	for a := 0; a < t.NAlleles(); a++ {
		line += "-----"
		fmt.Fprintf(&b, "%s\n|", line)
		for c := 0; c <= a; c++ {
			fmt.Fprintf(&b, "%4d|", t.Get(a, c))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s\n\n", line)

	fmt.Fprintf(&b, "Total number of alleles: %2d\n", t.NAlleles())
	fmt.Fprintf(&b, "Total number of individuals: %d\n\n", t.Total())

	fmt.Fprintf(&b, "Number of initial steps: %d\n", params.Steps)
	fmt.Fprintf(&b, "Number of chunks: %d\n", params.Batches)
	fmt.Fprintf(&b, "Size of each chunk: %d\n\n", params.BatchSize)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteOutcomeReport writes the p-value, its standard error and the switch
// rates of a finished run.
func WriteOutcomeReport(w io.Writer, o Outcome) error {
	b := strings.Builder{}

	fmt.Fprintf(&b, "Randomization test P-value: %7.4g  (%7.4g) \n", o.PValue, o.StdErr)

	partial, full, all := o.SwitchPercentages()
	fmt.Fprintf(&b, "Percentage of partial switches: %6.2f \n", partial)
	fmt.Fprintf(&b, "Percentage of full switches: %6.2f \n", full)
	fmt.Fprintf(&b, "Percentage of all switches: %6.2f \n", all)

	partial, full, all = o.AcceptedPercentages()
	fmt.Fprintf(&b, "Percentage of partial switches accepted: %6.2f \n", partial)
	fmt.Fprintf(&b, "Percentage of full switches accepted: %6.2f \n", full)
	fmt.Fprintf(&b, "Percentage of all switches accepted: %6.2f \n", all)

	fmt.Fprintf(&b, "\nObserved ln P: %.6f\n", o.LnPObserved)
	fmt.Fprintf(&b, "Sampled ln P: mean %.6f, SD %.6f\n", o.LnPMean, o.LnPStdDev)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteBatchHistogram summarizes the spread of the batch p-values: their
// quartiles and a histogram with the given number of bins.
func WriteBatchHistogram(w io.Writer, o Outcome, bins int) error {
	if len(o.BatchPValues) == 0 {
		return fmt.Errorf("no batch p-values to summarize")
	}

	q, err := stats.Quartile(stats.Float64Data(o.BatchPValues))
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nBatch P-values: median %.4g, quartiles %.4g - %.4g\n", q.Q2, q.Q1, q.Q3); err != nil {
		return err
	}

	hist := histogram.Hist(bins, o.BatchPValues)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}

// WriteTimeStamp closes a report with the elapsed time and the current date.
func WriteTimeStamp(w io.Writer, elapsed time.Duration, now time.Time) error {
	_, err := fmt.Fprintf(w, "\nTotal elapsed time: %s\nDate and time: %s\n", elapsed.Round(time.Millisecond), now.Format(time.ANSIC))
	return err
}
